// Package forwarder доотправляет intake-записи, которые не удалось
// передать синхронно, и помечает брошенные записи без оплаты.
package forwarder

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/shivaniarts/enrollment-service/internal/lib/rabbitmq"
	"github.com/shivaniarts/enrollment-service/internal/lib/sl"
	"github.com/shivaniarts/enrollment-service/internal/models"
)

// OutboxRepository описывает методы хранилища, используемые воркером.
type OutboxRepository interface {
	ListPendingIntake(ctx context.Context, limit int) ([]*models.IntakeEntry, error)
	MarkIntakeSent(ctx context.Context, id int64) error
	MarkIntakeFailed(ctx context.Context, id int64, lastError string) error
	GetEnrollmentByUID(ctx context.Context, uid string) (*models.Enrollment, error)
	UpdateEnrollmentStatus(ctx context.Context, uid, status string) error
	MarkAbandonedOlderThan(ctx context.Context, olderThan time.Duration) (int64, error)
}

// IntakeSender отправляет сериализованную запись на intake endpoint.
type IntakeSender interface {
	SendPayload(ctx context.Context, payload []byte) error
}

// Publisher публикует событие подтверждённой записи в очередь уведомлений.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// ForwarderService периодически перебирает outbox и отправляет записи.
type ForwarderService struct {
	repo         OutboxRepository
	intake       IntakeSender
	publisher    Publisher
	batchSize    int
	abandonAfter time.Duration
	log          *slog.Logger
}

// NewForwarderService создает новый экземпляр ForwarderService.
func NewForwarderService(repo OutboxRepository, intake IntakeSender, publisher Publisher,
	batchSize int, abandonAfter time.Duration, log *slog.Logger) *ForwarderService {
	return &ForwarderService{
		repo:         repo,
		intake:       intake,
		publisher:    publisher,
		batchSize:    batchSize,
		abandonAfter: abandonAfter,
		log:          log,
	}
}

// Run запускает цикл доотправки с указанным интервалом. Блокируется
// до отмены контекста.
func (s *ForwarderService) Run(ctx context.Context, interval time.Duration) {
	s.runForwardPending(ctx)
	s.runMarkAbandoned(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runForwardPending(ctx)
			s.runMarkAbandoned(ctx)
		}
	}
}

func (s *ForwarderService) runForwardPending(ctx context.Context) {
	s.log.Info("starting service to forward pending intake records")
	entries, err := s.repo.ListPendingIntake(ctx, s.batchSize)
	if err != nil {
		s.log.Error("failed to list pending records", sl.Err(err))
		return
	}
	if len(entries) == 0 {
		s.log.Info("no pending intake records found")
		return
	}
	s.log.Info("found pending intake records", "count", len(entries))
	for _, entry := range entries {
		if err := s.forwardOne(ctx, entry); err != nil {
			s.log.Error("failed to forward record", sl.Err(err),
				slog.Int64("outbox_id", entry.ID),
				slog.String("uid", entry.EnrollmentUID))
		}
	}
}

func (s *ForwarderService) forwardOne(ctx context.Context, entry *models.IntakeEntry) error {
	if err := s.intake.SendPayload(ctx, entry.Payload); err != nil {
		if markErr := s.repo.MarkIntakeFailed(ctx, entry.ID, err.Error()); markErr != nil {
			s.log.Error("failed to mark outbox entry", sl.Err(markErr))
		}
		return err
	}
	if err := s.repo.MarkIntakeSent(ctx, entry.ID); err != nil {
		return err
	}
	if err := s.repo.UpdateEnrollmentStatus(ctx, entry.EnrollmentUID, models.StatusRecorded); err != nil {
		return err
	}
	s.log.Info("record forwarded", slog.String("uid", entry.EnrollmentUID))
	s.publishConfirmed(ctx, entry)
	return nil
}

// publishConfirmed отправляет событие подтверждения для записи, доотправленной
// воркером, чтобы ученик получил то же письмо, что и при синхронной отправке.
func (s *ForwarderService) publishConfirmed(ctx context.Context, entry *models.IntakeEntry) {
	enrollment, err := s.repo.GetEnrollmentByUID(ctx, entry.EnrollmentUID)
	if err != nil {
		s.log.Warn("failed to load enrollment for confirmation event", sl.Err(err),
			slog.String("uid", entry.EnrollmentUID))
		return
	}
	var record models.PaymentRecord
	if err := json.Unmarshal(entry.Payload, &record); err != nil {
		s.log.Warn("failed to decode outbox payload", sl.Err(err),
			slog.Int64("outbox_id", entry.ID))
		return
	}
	if err := s.publisher.Publish(rabbitmq.RoutingKeyConfirmed, models.EnrollmentInfo{
		Name:            enrollment.Name,
		Email:           enrollment.Email,
		DisplayAmount:   enrollment.DisplayAmount,
		DisplayCurrency: enrollment.DisplayCurrency,
		Months:          enrollment.Months,
		PaymentID:       record.PaymentID,
	}); err != nil {
		s.log.Warn("failed to publish confirmation event", sl.Err(err))
	}
}

func (s *ForwarderService) runMarkAbandoned(ctx context.Context) {
	count, err := s.repo.MarkAbandonedOlderThan(ctx, s.abandonAfter)
	if err != nil {
		s.log.Error("failed to mark abandoned enrollments", sl.Err(err))
		return
	}
	if count > 0 {
		s.log.Info("marked abandoned enrollments", "count", count)
	}
}
