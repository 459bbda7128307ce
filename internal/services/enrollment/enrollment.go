// Package enrollment содержит бизнес-логику записи учеников: расчёт
// стоимости, создание заказа у платёжного провайдера, подтверждение
// оплаты и передачу записи во внешнюю таблицу.
package enrollment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"github.com/shivaniarts/enrollment-service/internal/attachment"
	"github.com/shivaniarts/enrollment-service/internal/lib/rabbitmq"
	"github.com/shivaniarts/enrollment-service/internal/lib/sl"
	"github.com/shivaniarts/enrollment-service/internal/models"
	"github.com/shivaniarts/enrollment-service/internal/paymentprovider"
	"github.com/shivaniarts/enrollment-service/internal/pricing"
)

// businessName отображается в заголовке виджета оплаты.
const businessName = "Shivani's Art Classes"

// ErrZeroFee возвращается при нулевой стоимости: возраст вне диапазонов.
var ErrZeroFee = errors.New("please enter a valid age")

// ErrProviderUnavailable возвращается, когда провайдер не создал заказ.
var ErrProviderUnavailable = errors.New("payment provider unavailable")

// ErrInvalidSignature возвращается при неверной подписи подтверждения.
var ErrInvalidSignature = errors.New("invalid payment signature")

// ErrRecordNotSaved возвращается, когда оплата прошла, а запись
// не удалось передать в таблицу. Строка outbox остаётся для доотправки.
var ErrRecordNotSaved = errors.New("payment captured but record could not be saved")

// Repository определяет методы хранилища, используемые сервисом.
type Repository interface {
	CreateEnrollment(ctx context.Context, e models.Enrollment) error
	GetEnrollmentByUID(ctx context.Context, uid string) (*models.Enrollment, error)
	GetEnrollmentByOrderID(ctx context.Context, orderID string) (*models.Enrollment, error)
	UpdateEnrollmentStatus(ctx context.Context, uid, status string) error
	ListEnrollments(ctx context.Context, limit, offset int) ([]*models.Enrollment, error)
	SavePayment(ctx context.Context, p models.Payment) (int, error)
	ListPayments(ctx context.Context, limit, offset int) ([]*models.Payment, error)
	EnqueueIntakeRecord(ctx context.Context, enrollmentUID string, payload []byte) (int64, error)
	MarkIntakeSent(ctx context.Context, id int64) error
	MarkIntakeFailed(ctx context.Context, id int64, lastError string) error
}

// Provider описывает узкий интерфейс платёжного провайдера,
// чтобы бизнес-логика тестировалась без реального виджета.
type Provider interface {
	KeyID() string
	CreateOrder(ctx context.Context, req paymentprovider.CreateOrderRequest) (*paymentprovider.Order, error)
	VerifyPaymentSignature(orderID, paymentID, signature string) bool
}

// IntakeSender отправляет сериализованную запись на intake endpoint.
type IntakeSender interface {
	SendPayload(ctx context.Context, payload []byte) error
}

// Publisher публикует события о подтверждённых записях.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// Service реализует оркестрацию записи и оплаты.
type Service struct {
	repo         Repository
	provider     Provider
	intake       IntakeSender
	publisher    Publisher
	exchangeRate float64
	log          *slog.Logger
}

// New создает новый Service.
func New(repo Repository, provider Provider, intake IntakeSender, publisher Publisher, exchangeRate float64, log *slog.Logger) *Service {
	return &Service{
		repo:         repo,
		provider:     provider,
		intake:       intake,
		publisher:    publisher,
		exchangeRate: exchangeRate,
		log:          log,
	}
}

// Create проверяет данные формы, считает стоимость, создаёт заказ
// у провайдера и сохраняет запись в ожидании оплаты. Возвращает
// параметры для открытия виджета оплаты.
func (s *Service) Create(ctx context.Context, req models.DummyEnrollment) (*models.CheckoutSession, error) {
	residency := models.Residency(req.Residency)
	quote := pricing.QuoteFor(residency, req.Age, req.Months, s.exchangeRate)
	if quote.DisplayAmount == 0 {
		return nil, ErrZeroFee
	}

	uid := uuid.NewString()
	order, err := s.provider.CreateOrder(ctx, paymentprovider.CreateOrderRequest{
		Amount:   quote.SettlementSubunits,
		Currency: quote.SettlementCurrency,
		Receipt:  uid,
		Notes: map[string]string{
			"enrollment_uid": uid,
			"residency":      string(residency),
		},
	})
	if err != nil {
		s.log.Error("failed to create provider order", sl.Err(err))
		return nil, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}

	entry := models.Enrollment{
		UID:                uid,
		Name:               req.Name,
		Age:                req.Age,
		Email:              req.Email,
		Phone:              req.Phone,
		Residency:          residency,
		Months:             req.Months,
		DisplayAmount:      quote.DisplayAmount,
		DisplayCurrency:    quote.DisplayCurrency,
		SettlementSubunits: quote.SettlementSubunits,
		ProviderOrderID:    order.ID,
		Status:             models.StatusAwaitingPayment,
	}
	if err := s.repo.CreateEnrollment(ctx, entry); err != nil {
		return nil, err
	}

	s.log.Info("created new enrollment",
		slog.String("uid", uid),
		slog.String("order_id", order.ID),
		sl.Amount(quote.DisplayAmount, quote.DisplayCurrency))

	return &models.CheckoutSession{
		EnrollmentUID: uid,
		Checkout: models.CheckoutOptions{
			Key:         s.provider.KeyID(),
			Amount:      quote.SettlementSubunits,
			Currency:    quote.SettlementCurrency,
			Name:        businessName,
			Description: checkoutDescription(residency, quote),
			OrderID:     order.ID,
			Prefill: models.CheckoutPrefill{
				Name:    req.Name,
				Email:   req.Email,
				Contact: req.Phone,
			},
		},
	}, nil
}

// checkoutDescription повторяет строку описания из формы: для зарубежных
// учеников показывается сумма в долларах и её эквивалент в рупиях.
func checkoutDescription(residency models.Residency, quote models.Quote) string {
	if residency == models.ResidencyInternational {
		return fmt.Sprintf("International Fee ($%d ≈ ₹%d)", quote.DisplayAmount, quote.SettlementSubunits/100)
	}
	return "Enrollment Fee"
}

// Confirm обрабатывает результат виджета: проверяет подпись, сохраняет
// платёж и передаёт запись во внешнюю таблицу. Операция идемпотентна
// по записи: повторное подтверждение уже записанной оплаты ничего не делает.
func (s *Service) Confirm(ctx context.Context, req models.DummyConfirm, doc *attachment.Attachment) error {
	entry, err := s.repo.GetEnrollmentByUID(ctx, req.EnrollmentUID)
	if err != nil {
		return err
	}
	if entry.ProviderOrderID != req.ProviderOrderID {
		return ErrInvalidSignature
	}
	if entry.Status == models.StatusRecorded {
		return nil
	}

	if !s.provider.VerifyPaymentSignature(req.ProviderOrderID, req.ProviderPaymentID, req.Signature) {
		return ErrInvalidSignature
	}

	return s.submitRecord(ctx, entry, req.ProviderPaymentID, doc)
}

// HandleWebhookEvent подтверждает оплату по событию провайдера.
// Используется как резервный путь, когда браузер не дозвонился
// до подтверждения; документа в этом пути нет.
func (s *Service) HandleWebhookEvent(ctx context.Context, payload *paymentprovider.WebhookPayload) error {
	pay := payload.Payload.Payment.Entity
	entry, err := s.repo.GetEnrollmentByOrderID(ctx, pay.OrderID)
	if err != nil {
		return err
	}
	if entry.Status == models.StatusRecorded {
		return nil
	}
	return s.submitRecord(ctx, entry, pay.ID, nil)
}

// submitRecord сохраняет платёж, кладёт запись в outbox и отправляет её
// на intake endpoint. При сбое отправки строка outbox остаётся для
// воркера доотправки, а запись переводится в record_failed.
func (s *Service) submitRecord(ctx context.Context, entry *models.Enrollment, paymentID string, doc *attachment.Attachment) error {
	if _, err := s.repo.SavePayment(ctx, models.Payment{
		EnrollmentUID:     entry.UID,
		ProviderPaymentID: paymentID,
		Amount:            entry.DisplayAmount,
		Currency:          entry.DisplayCurrency,
	}); err != nil {
		return err
	}

	record := BuildRecord(entry, paymentID, doc)
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}

	outboxID, err := s.repo.EnqueueIntakeRecord(ctx, entry.UID, payload)
	if err != nil {
		return err
	}

	if err := s.intake.SendPayload(ctx, payload); err != nil {
		s.log.Error("failed to forward record to intake", sl.Err(err), slog.String("uid", entry.UID))
		if markErr := s.repo.MarkIntakeFailed(ctx, outboxID, err.Error()); markErr != nil {
			s.log.Error("failed to mark outbox entry", sl.Err(markErr))
		}
		if statusErr := s.repo.UpdateEnrollmentStatus(ctx, entry.UID, models.StatusRecordFailed); statusErr != nil {
			s.log.Error("failed to update enrollment status", sl.Err(statusErr))
		}
		return fmt.Errorf("%w: %w", ErrRecordNotSaved, err)
	}

	if err := s.repo.MarkIntakeSent(ctx, outboxID); err != nil {
		s.log.Error("failed to mark outbox entry sent", sl.Err(err))
	}
	if err := s.repo.UpdateEnrollmentStatus(ctx, entry.UID, models.StatusRecorded); err != nil {
		return err
	}

	s.log.Info("enrollment recorded",
		slog.String("uid", entry.UID),
		slog.String("payment_id", paymentID))

	if err := s.publisher.Publish(rabbitmq.RoutingKeyConfirmed, models.EnrollmentInfo{
		Name:            entry.Name,
		Email:           entry.Email,
		DisplayAmount:   entry.DisplayAmount,
		DisplayCurrency: entry.DisplayCurrency,
		Months:          entry.Months,
		PaymentID:       paymentID,
	}); err != nil {
		s.log.Warn("failed to publish confirmation event", sl.Err(err))
	}

	return nil
}

// BuildRecord собирает intake-запись. Сумма берётся в валюте отображения,
// отсутствующий документ заменяется значениями по умолчанию, как это
// делала исходная форма.
func BuildRecord(entry *models.Enrollment, paymentID string, doc *attachment.Attachment) models.PaymentRecord {
	record := models.PaymentRecord{
		Name:      entry.Name,
		Age:       strconv.Itoa(entry.Age),
		Email:     entry.Email,
		Phone:     entry.Phone,
		Residency: string(entry.Residency),
		Amount:    entry.DisplayAmount,
		Currency:  entry.DisplayCurrency,
		PaymentID: paymentID,
		FileName:  "unknown",
		FileMime:  "application/pdf",
	}
	if doc != nil {
		record.FileName = doc.Name
		record.FileMime = doc.Mime
		record.FileBase64 = doc.Base64
	}
	return record
}

// Read возвращает запись по UID.
func (s *Service) Read(ctx context.Context, uid string) (*models.Enrollment, error) {
	return s.repo.GetEnrollmentByUID(ctx, uid)
}

// List возвращает записи с пагинацией.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*models.Enrollment, error) {
	return s.repo.ListEnrollments(ctx, limit, offset)
}

// ListPayments возвращает платежи с пагинацией.
func (s *Service) ListPayments(ctx context.Context, limit, offset int) ([]*models.Payment, error) {
	return s.repo.ListPayments(ctx, limit, offset)
}
