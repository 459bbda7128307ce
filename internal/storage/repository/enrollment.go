package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shivaniarts/enrollment-service/internal/models"
)

// CreateEnrollment сохраняет новую запись ученика.
func (s *Storage) CreateEnrollment(ctx context.Context, e models.Enrollment) error {
	const op = "storage.CreateEnrollment"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO enrollments (uid, name, age, email, phone, residency, months,
				  display_amount, display_currency, settlement_subunits,
				  provider_order_id, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := s.DB.ExecContext(ctx, query,
		e.UID, e.Name, e.Age, e.Email, e.Phone, string(e.Residency), e.Months,
		e.DisplayAmount, e.DisplayCurrency, e.SettlementSubunits,
		e.ProviderOrderID, e.Status)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func scanEnrollment(row interface{ Scan(...any) error }) (*models.Enrollment, error) {
	var e models.Enrollment
	var residency string
	err := row.Scan(&e.UID, &e.Name, &e.Age, &e.Email, &e.Phone, &residency, &e.Months,
		&e.DisplayAmount, &e.DisplayCurrency, &e.SettlementSubunits,
		&e.ProviderOrderID, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.Residency = models.Residency(residency)
	return &e, nil
}

const enrollmentColumns = `uid, name, age, email, phone, residency, months,
	display_amount, display_currency, settlement_subunits,
	provider_order_id, status, created_at, updated_at`

// GetEnrollmentByUID возвращает запись по её UID.
func (s *Storage) GetEnrollmentByUID(ctx context.Context, uid string) (*models.Enrollment, error) {
	const op = "storage.GetEnrollmentByUID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE uid = $1`
	e, err := scanEnrollment(s.DB.QueryRowContext(ctx, query, uid))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrEnrollmentNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return e, nil
}

// GetEnrollmentByOrderID возвращает запись по ID заказа провайдера.
func (s *Storage) GetEnrollmentByOrderID(ctx context.Context, orderID string) (*models.Enrollment, error) {
	const op = "storage.GetEnrollmentByOrderID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE provider_order_id = $1`
	e, err := scanEnrollment(s.DB.QueryRowContext(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrEnrollmentNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return e, nil
}

// UpdateEnrollmentStatus переводит запись в новый статус.
func (s *Storage) UpdateEnrollmentStatus(ctx context.Context, uid, status string) error {
	const op = "storage.UpdateEnrollmentStatus"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	commandTag, err := s.DB.ExecContext(ctx,
		`UPDATE enrollments SET status = $1, updated_at = NOW() WHERE uid = $2`, status, uid)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rows, err := commandTag.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, ErrEnrollmentNotFound)
	}
	return nil
}

// ListEnrollments возвращает записи с пагинацией, новые первыми.
func (s *Storage) ListEnrollments(ctx context.Context, limit, offset int) ([]*models.Enrollment, error) {
	const op = "storage.ListEnrollments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + enrollmentColumns + `
			  FROM enrollments ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Enrollment
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, e)
	}
	return result, nil
}

// MarkAbandonedOlderThan переводит в статус abandoned записи,
// которые ждут оплаты дольше указанного срока. Возвращает число записей.
func (s *Storage) MarkAbandonedOlderThan(ctx context.Context, olderThan time.Duration) (int64, error) {
	const op = "storage.MarkAbandonedOlderThan"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	commandTag, err := s.DB.ExecContext(ctx,
		`UPDATE enrollments SET status = $1, updated_at = NOW()
		 WHERE status = $2 AND created_at < NOW() - make_interval(secs => $3)`,
		models.StatusAbandoned, models.StatusAwaitingPayment, olderThan.Seconds())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rows, err := commandTag.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rows, nil
}
