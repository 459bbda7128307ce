package forwarder

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/shivaniarts/enrollment-service/internal/lib/rabbitmq"
	"github.com/shivaniarts/enrollment-service/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListPendingIntake(ctx context.Context, limit int) ([]*models.IntakeEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.IntakeEntry), args.Error(1)
}

func (m *MockRepository) MarkIntakeSent(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) MarkIntakeFailed(ctx context.Context, id int64, lastError string) error {
	args := m.Called(ctx, id, lastError)
	return args.Error(0)
}

func (m *MockRepository) GetEnrollmentByUID(ctx context.Context, uid string) (*models.Enrollment, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Enrollment), args.Error(1)
}

func (m *MockRepository) UpdateEnrollmentStatus(ctx context.Context, uid, status string) error {
	args := m.Called(ctx, uid, status)
	return args.Error(0)
}

func (m *MockRepository) MarkAbandonedOlderThan(ctx context.Context, olderThan time.Duration) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

type MockIntake struct {
	mock.Mock
}

func (m *MockIntake) SendPayload(ctx context.Context, payload []byte) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(routingKey string, message any) error {
	args := m.Called(routingKey, message)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestForwarderService_runForwardPending(t *testing.T) {
	payload := []byte(`{"name":"Asha Verma","payment_id":"pay_retry"}`)
	recovered := &models.Enrollment{
		UID:             "uid123",
		Name:            "Asha Verma",
		Email:           "asha@example.com",
		DisplayAmount:   48000,
		DisplayCurrency: "INR",
		Months:          3,
	}

	tests := []struct {
		name       string
		setupMocks func(*MockRepository, *MockIntake, *MockPublisher)
	}{
		{
			name: "pending record forwarded, marked sent and confirmation published",
			setupMocks: func(r *MockRepository, i *MockIntake, p *MockPublisher) {
				r.On("ListPendingIntake", mock.Anything, 20).Return([]*models.IntakeEntry{
					{ID: 7, EnrollmentUID: "uid123", Payload: payload, Attempts: 1},
				}, nil).Once()
				i.On("SendPayload", mock.Anything, payload).Return(nil).Once()
				r.On("MarkIntakeSent", mock.Anything, int64(7)).Return(nil).Once()
				r.On("UpdateEnrollmentStatus", mock.Anything, "uid123", models.StatusRecorded).Return(nil).Once()
				r.On("GetEnrollmentByUID", mock.Anything, "uid123").Return(recovered, nil).Once()
				p.On("Publish", rabbitmq.RoutingKeyConfirmed, models.EnrollmentInfo{
					Name:            "Asha Verma",
					Email:           "asha@example.com",
					DisplayAmount:   48000,
					DisplayCurrency: "INR",
					Months:          3,
					PaymentID:       "pay_retry",
				}).Return(nil).Once()
			},
		},
		{
			name: "send fails - attempt recorded, nothing marked sent, no event",
			setupMocks: func(r *MockRepository, i *MockIntake, _ *MockPublisher) {
				r.On("ListPendingIntake", mock.Anything, 20).Return([]*models.IntakeEntry{
					{ID: 7, EnrollmentUID: "uid123", Payload: payload, Attempts: 2},
				}, nil).Once()
				i.On("SendPayload", mock.Anything, payload).Return(errors.New("intake status 502")).Once()
				r.On("MarkIntakeFailed", mock.Anything, int64(7), "intake status 502").Return(nil).Once()
			},
		},
		{
			name: "publish error does not fail the forward",
			setupMocks: func(r *MockRepository, i *MockIntake, p *MockPublisher) {
				r.On("ListPendingIntake", mock.Anything, 20).Return([]*models.IntakeEntry{
					{ID: 8, EnrollmentUID: "uid123", Payload: payload, Attempts: 1},
				}, nil).Once()
				i.On("SendPayload", mock.Anything, payload).Return(nil).Once()
				r.On("MarkIntakeSent", mock.Anything, int64(8)).Return(nil).Once()
				r.On("UpdateEnrollmentStatus", mock.Anything, "uid123", models.StatusRecorded).Return(nil).Once()
				r.On("GetEnrollmentByUID", mock.Anything, "uid123").Return(recovered, nil).Once()
				p.On("Publish", rabbitmq.RoutingKeyConfirmed, mock.Anything).
					Return(errors.New("channel closed")).Once()
			},
		},
		{
			name: "empty outbox - nothing sent",
			setupMocks: func(r *MockRepository, _ *MockIntake, _ *MockPublisher) {
				r.On("ListPendingIntake", mock.Anything, 20).Return([]*models.IntakeEntry{}, nil).Once()
			},
		},
		{
			name: "list error - cycle skipped",
			setupMocks: func(r *MockRepository, _ *MockIntake, _ *MockPublisher) {
				r.On("ListPendingIntake", mock.Anything, 20).Return(nil, errors.New("db error")).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			intake := new(MockIntake)
			publisher := new(MockPublisher)
			service := NewForwarderService(repo, intake, publisher, 20, 24*time.Hour, newNoopLogger())

			tt.setupMocks(repo, intake, publisher)

			service.runForwardPending(context.Background())

			repo.AssertExpectations(t)
			intake.AssertExpectations(t)
			publisher.AssertExpectations(t)
		})
	}
}

func TestForwarderService_runMarkAbandoned(t *testing.T) {
	repo := new(MockRepository)
	intake := new(MockIntake)
	publisher := new(MockPublisher)
	service := NewForwarderService(repo, intake, publisher, 20, 24*time.Hour, newNoopLogger())

	repo.On("MarkAbandonedOlderThan", mock.Anything, 24*time.Hour).Return(int64(2), nil).Once()

	service.runMarkAbandoned(context.Background())

	repo.AssertExpectations(t)
}
