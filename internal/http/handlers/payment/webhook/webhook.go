// Package webhook реализует HTTP-обработчик событий платёжного провайдера.
//
// Используется как резервный путь подтверждения: если браузер не дозвонился
// до ручки подтверждения, событие payment.captured всё равно переведёт
// запись в конечный статус. Подпись проверяется по заголовку
// X-Razorpay-Signature.
package webhook

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/shivaniarts/enrollment-service/internal/lib/sl"
	"github.com/shivaniarts/enrollment-service/internal/paymentprovider"
)

// paymentCaptured — единственное событие, которое обрабатывается.
const paymentCaptured = "payment.captured"

// Service описывает интерфейс бизнес-логики обработки событий провайдера.
type Service interface {
	HandleWebhookEvent(ctx context.Context, payload *paymentprovider.WebhookPayload) error
}

// Handler обрабатывает HTTP-запросы с событиями провайдера.
type Handler struct {
	log           *slog.Logger // Логгер для записи информации и ошибок
	service       Service
	webhookSecret string // Секрет для проверки подписи
}

// New создает новый Handler с переданными логгером, сервисом и секретом.
func New(log *slog.Logger, service Service, secret string) *Handler {
	return &Handler{
		log:           log,
		service:       service,
		webhookSecret: secret,
	}
}

// ServeHTTP godoc
// @Summary Принять событие платёжного провайдера
// @Description Проверяет подпись X-Razorpay-Signature и обрабатывает событие payment.captured. Остальные события игнорируются.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Success 200 "Событие обработано или проигнорировано"
// @Failure 400 "Некорректное тело события"
// @Failure 401 "Неверная подпись"
// @Failure 500 "Ошибка обработки события"
// @Router /payments/webhook [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.webhook"
	log := h.log.With(slog.String("op", op))

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("failed to read webhook body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	signature := r.Header.Get("X-Razorpay-Signature")
	if signature == "" || !paymentprovider.VerifyWebhookSignature(h.webhookSecret, body, signature) {
		log.Error("invalid or missing webhook signature")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var payload paymentprovider.WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Error("failed to unmarshal webhook payload", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if payload.Event != paymentCaptured {
		log.Info("ignored webhook event", slog.String("event", payload.Event))
		w.WriteHeader(http.StatusOK)
		return
	}

	if err := h.service.HandleWebhookEvent(r.Context(), &payload); err != nil {
		log.Error("failed to process webhook event", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	log.Info("webhook processed successfully",
		slog.String("event", payload.Event),
		slog.String("payment_id", payload.Payload.Payment.Entity.ID))
	w.WriteHeader(http.StatusOK)
}
