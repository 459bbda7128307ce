package quote

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/shivaniarts/enrollment-service/internal/models"
)

// MockService реализует интерфейс quote.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Quote(residency string, age, months int) (*models.Quote, error) {
	args := m.Called(residency, age, months)
	if res := args.Get(0); res != nil {
		return res.(*models.Quote), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestQuoteHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешный расчёт для местного ученика",
			body: `{"age":"10","residency":"IND","months":3}`,
			setupMock: func(m *MockService) {
				m.On("Quote", "IND", 10, 3).Return(&models.Quote{
					FeePerMonth:        16000,
					DisplayAmount:      48000,
					DisplayCurrency:    "INR",
					SettlementSubunits: 4800000,
					SettlementCurrency: "INR",
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"display_amount":48000`,
		},
		{
			name: "нечисловой возраст трактуется как нулевая стоимость",
			body: `{"age":"abc","residency":"IND","months":1}`,
			setupMock: func(m *MockService) {
				m.On("Quote", "IND", 0, 1).Return(&models.Quote{
					DisplayAmount:      0,
					DisplayCurrency:    "INR",
					SettlementCurrency: "INR",
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"display_amount":0`,
		},
		{
			name:           "некорректный JSON",
			body:           `not a json`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "ошибка валидации - неизвестное резидентство",
			body:           `{"age":"10","residency":"MARS","months":1}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Residency must be one of the allowed values`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/quote", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
