package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shivaniarts/enrollment-service/internal/models"
)

// SavePayment сохраняет информацию о подтверждённом платеже.
// Повторное сохранение того же provider_payment_id не создаёт дубликата.
func (s *Storage) SavePayment(ctx context.Context, p models.Payment) (int, error) {
	const op = "storage.SavePayment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payments (enrollment_uid, provider_payment_id, amount, currency, created_at)
			  VALUES ($1, $2, $3, $4, NOW())
			  ON CONFLICT (provider_payment_id) DO UPDATE SET amount = payments.amount
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		p.EnrollmentUID, p.ProviderPaymentID, p.Amount, p.Currency).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetPaymentByProviderID возвращает платёж по ID платежа провайдера.
func (s *Storage) GetPaymentByProviderID(ctx context.Context, providerPaymentID string) (*models.Payment, bool, error) {
	const op = "storage.GetPaymentByProviderID"
	select {
	case <-ctx.Done():
		return nil, false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, enrollment_uid, provider_payment_id, amount, currency, created_at
			  FROM payments WHERE provider_payment_id = $1`
	var p models.Payment
	err := s.DB.QueryRowContext(ctx, query, providerPaymentID).Scan(
		&p.ID, &p.EnrollmentUID, &p.ProviderPaymentID, &p.Amount, &p.Currency, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return &p, true, nil
}

// ListPayments возвращает список платежей с пагинацией, новые первыми.
func (s *Storage) ListPayments(ctx context.Context, limit, offset int) ([]*models.Payment, error) {
	const op = "storage.ListPayments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, enrollment_uid, provider_payment_id, amount, currency, created_at
			  FROM payments ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.EnrollmentUID, &p.ProviderPaymentID,
			&p.Amount, &p.Currency, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &p)
	}
	return result, nil
}
