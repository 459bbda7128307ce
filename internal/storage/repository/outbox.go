package repository

import (
	"context"
	"fmt"

	"github.com/shivaniarts/enrollment-service/internal/models"
)

// EnqueueIntakeRecord сохраняет полезную нагрузку intake-записи в outbox.
// Строка остаётся в таблице до успешной отправки воркером или обработчиком.
func (s *Storage) EnqueueIntakeRecord(ctx context.Context, enrollmentUID string, payload []byte) (int64, error) {
	const op = "storage.EnqueueIntakeRecord"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO intake_outbox (enrollment_uid, payload)
			  VALUES ($1, $2) RETURNING id`
	var newID int64
	if err := s.DB.QueryRowContext(ctx, query, enrollmentUID, payload).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListPendingIntake возвращает неотправленные строки outbox, старые первыми.
func (s *Storage) ListPendingIntake(ctx context.Context, limit int) ([]*models.IntakeEntry, error) {
	const op = "storage.ListPendingIntake"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, enrollment_uid, payload, attempts, COALESCE(last_error, ''), sent_at, created_at
			  FROM intake_outbox
			  WHERE sent_at IS NULL
			  ORDER BY created_at ASC LIMIT $1`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.IntakeEntry
	for rows.Next() {
		var entry models.IntakeEntry
		if err := rows.Scan(&entry.ID, &entry.EnrollmentUID, &entry.Payload,
			&entry.Attempts, &entry.LastError, &entry.SentAt, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &entry)
	}
	return result, nil
}

// MarkIntakeSent помечает строку outbox отправленной.
func (s *Storage) MarkIntakeSent(ctx context.Context, id int64) error {
	const op = "storage.MarkIntakeSent"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	_, err := s.DB.ExecContext(ctx,
		`UPDATE intake_outbox SET sent_at = NOW(), last_error = NULL WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// MarkIntakeFailed увеличивает счётчик попыток и сохраняет текст ошибки.
func (s *Storage) MarkIntakeFailed(ctx context.Context, id int64, lastError string) error {
	const op = "storage.MarkIntakeFailed"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	_, err := s.DB.ExecContext(ctx,
		`UPDATE intake_outbox SET attempts = attempts + 1, last_error = $2 WHERE id = $1`,
		id, lastError)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
