package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/shivaniarts/enrollment-service/internal/paymentprovider"
)

// MockService реализует интерфейс webhook.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) HandleWebhookEvent(ctx context.Context, payload *paymentprovider.WebhookPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

const webhookSecret = "whsec_test"

func sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(webhookSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestWebhookHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	capturedBody := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_hook","order_id":"order_abc","status":"captured","amount":4800000,"currency":"INR"}}}}`)

	tests := []struct {
		name           string
		body           []byte
		signature      string
		setupMock      func(*MockService)
		expectedStatus int
	}{
		{
			name:      "успешная обработка payment.captured",
			body:      capturedBody,
			signature: sign(capturedBody),
			setupMock: func(m *MockService) {
				m.On("HandleWebhookEvent", mock.Anything, mock.MatchedBy(func(p *paymentprovider.WebhookPayload) bool {
					return p.Payload.Payment.Entity.OrderID == "order_abc"
				})).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "отсутствует подпись",
			body:           capturedBody,
			signature:      "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "неверная подпись",
			body:           capturedBody,
			signature:      "deadbeef",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "некорректный JSON",
			body:           []byte(`not a json`),
			signature:      sign([]byte(`not a json`)),
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "чужое событие игнорируется",
			body:           []byte(`{"event":"payment.failed"}`),
			signature:      sign([]byte(`{"event":"payment.failed"}`)),
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusOK,
		},
		{
			name:      "ошибка обработки события",
			body:      capturedBody,
			signature: sign(capturedBody),
			setupMock: func(m *MockService) {
				m.On("HandleWebhookEvent", mock.Anything, mock.Anything).Return(errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService, webhookSecret)

			req := httptest.NewRequest(http.MethodPost, "/payments/webhook", bytes.NewReader(tt.body))
			if tt.signature != "" {
				req.Header.Set("X-Razorpay-Signature", tt.signature)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}
