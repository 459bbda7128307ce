package quote

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shivaniarts/enrollment-service/internal/models"
)

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	if args.Bool(0) {
		*result.(*models.Quote) = models.Quote{
			FeePerMonth:        16000,
			DisplayAmount:      48000,
			DisplayCurrency:    "INR",
			SettlementSubunits: 4800000,
			SettlementCurrency: "INR",
		}
	}
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestService_Quote(t *testing.T) {
	tests := []struct {
		name           string
		residency      string
		age            int
		months         int
		setupMocks     func(*MockCache)
		expectedAmount int
		expectedCur    string
	}{
		{
			name:      "cache miss - computed and stored",
			residency: "IND",
			age:       10,
			months:    3,
			setupMocks: func(c *MockCache) {
				c.On("Get", "quote:IND:10:3", mock.Anything).Return(false, nil).Once()
				c.On("Set", "quote:IND:10:3", mock.Anything, cacheTTL).Return(nil).Once()
			},
			expectedAmount: 48000,
			expectedCur:    "INR",
		},
		{
			name:      "cache hit",
			residency: "IND",
			age:       10,
			months:    3,
			setupMocks: func(c *MockCache) {
				c.On("Get", "quote:IND:10:3", mock.Anything).Return(true, nil).Once()
			},
			expectedAmount: 48000,
			expectedCur:    "INR",
		},
		{
			name:      "cache error falls back to computation",
			residency: "INTL",
			age:       20,
			months:    1,
			setupMocks: func(c *MockCache) {
				c.On("Get", "quote:INTL:20:1", mock.Anything).Return(false, errors.New("redis down")).Once()
				c.On("Set", "quote:INTL:20:1", mock.Anything, cacheTTL).Return(errors.New("redis down")).Once()
			},
			expectedAmount: 200,
			expectedCur:    "USD",
		},
		{
			name:      "zero fee for age below minimum",
			residency: "IND",
			age:       2,
			months:    1,
			setupMocks: func(c *MockCache) {
				c.On("Get", "quote:IND:2:1", mock.Anything).Return(false, nil).Once()
				c.On("Set", "quote:IND:2:1", mock.Anything, cacheTTL).Return(nil).Once()
			},
			expectedAmount: 0,
			expectedCur:    "INR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := new(MockCache)
			service := New(cache, 90, newNoopLogger())

			tt.setupMocks(cache)

			result, err := service.Quote(tt.residency, tt.age, tt.months)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedAmount, result.DisplayAmount)
			assert.Equal(t, tt.expectedCur, result.DisplayCurrency)

			cache.AssertExpectations(t)
		})
	}
}
