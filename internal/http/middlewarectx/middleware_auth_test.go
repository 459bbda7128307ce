package middlewarectx_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/shivaniarts/enrollment-service/internal/http/middlewarectx"
	"github.com/shivaniarts/enrollment-service/internal/services/auth"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) ValidateToken(ctx context.Context, token string) (*auth.TokenInfo, error) {
	args := m.Called(ctx, token)
	info, _ := args.Get(0).(*auth.TokenInfo)
	return info, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestJWTMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		setupMocks     func(*AuthServiceMock)
		expectedStatus int
		expectNext     bool
	}{
		{
			name:       "valid token - context populated",
			authHeader: "Bearer goodtoken",
			setupMocks: func(m *AuthServiceMock) {
				m.On("ValidateToken", mock.Anything, "goodtoken").
					Return(&auth.TokenInfo{Valid: true, Username: "admin", Role: "admin"}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:           "missing header",
			authHeader:     "",
			setupMocks:     func(m *AuthServiceMock) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "not a bearer token",
			authHeader:     "Basic abc",
			setupMocks:     func(m *AuthServiceMock) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer badtoken",
			setupMocks: func(m *AuthServiceMock) {
				m.On("ValidateToken", mock.Anything, "badtoken").
					Return(nil, errors.New("token is malformed")).Once()
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			tt.setupMocks(authMock)

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				assert.Equal(t, "admin", r.Context().Value(middlewarectx.User))
				assert.Equal(t, "admin", r.Context().Value(middlewarectx.Role))
				w.WriteHeader(http.StatusOK)
			})

			handler := middlewarectx.JWTMiddleware(authMock, newNoopLogger())(next)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/enrollments", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectNext, nextCalled)
			authMock.AssertExpectations(t)
		})
	}
}
