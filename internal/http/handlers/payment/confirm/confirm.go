// Package confirm реализует HTTP-обработчик подтверждения оплаты из виджета.
//
// Handler принимает multipart-форму с параметрами подтверждения оплаты
// и необязательным файлом документа, проверяет подпись через бизнес-логику
// и передаёт запись во внешнюю таблицу.
//
// Успешная оплата с неудачной передачей записи возвращает 502: платёж
// сохранён, запись будет доотправлена воркером.
package confirm

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/shivaniarts/enrollment-service/internal/attachment"
	"github.com/shivaniarts/enrollment-service/internal/http/response"
	"github.com/shivaniarts/enrollment-service/internal/lib/sl"
	"github.com/shivaniarts/enrollment-service/internal/models"
	"github.com/shivaniarts/enrollment-service/internal/services/enrollment"
	"github.com/shivaniarts/enrollment-service/internal/storage/repository"
)

// documentField — имя поля файла в multipart-форме.
const documentField = "document"

// Handler управляет HTTP-запросами подтверждения оплаты.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики подтверждения оплаты
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики подтверждения оплаты.
type Service interface {
	Confirm(ctx context.Context, req models.DummyConfirm, doc *attachment.Attachment) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Подтвердить оплату записи
// @Description Принимает параметры подтверждения из виджета оплаты и необязательный документ (до 5 МБ), проверяет подпись и передаёт запись во внешнюю таблицу.
// @Tags Payments
// @Accept  mpfd
// @Produce  json
// @Param enrollment_uid formData string true "UID записи"
// @Param razorpay_order_id formData string true "ID заказа провайдера"
// @Param razorpay_payment_id formData string true "ID платежа провайдера"
// @Param razorpay_signature formData string true "Подпись подтверждения"
// @Param document formData file false "Документ, удостоверяющий личность"
// @Success 200 {object} map[string]any "Оплата подтверждена и запись передана"
// @Failure 400 {object} response.ErrorResponse "Некорректная форма или подпись"
// @Failure 404 {object} response.ErrorResponse "Запись не найдена"
// @Failure 413 {object} response.ErrorResponse "Файл слишком большой"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 502 {object} response.ErrorResponse "Оплата принята, запись не передана"
// @Router /payments/confirm [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.confirm"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := r.ParseMultipartForm(attachment.MaxSize + 1<<20); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid multipart form"))
		return
	}

	req := models.DummyConfirm{
		EnrollmentUID:     r.FormValue("enrollment_uid"),
		ProviderOrderID:   r.FormValue("razorpay_order_id"),
		ProviderPaymentID: r.FormValue("razorpay_payment_id"),
		Signature:         r.FormValue("razorpay_signature"),
	}
	log.Info("confirm form decoded", slog.String("uid", req.EnrollmentUID))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	var doc *attachment.Attachment
	if files := r.MultipartForm.File[documentField]; len(files) > 0 {
		fh := files[0]
		var err error
		doc, err = attachment.FromMultipart(fh)
		if err != nil {
			if errors.Is(err, attachment.ErrTooLarge) {
				log.Error("document is too large", slog.Int64("size", fh.Size))
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				render.JSON(w, r, response.Error("file is too large, max 5MB"))
				return
			}
			log.Error("failed to read document", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("could not read document"))
			return
		}
	}

	if err := h.service.Confirm(r.Context(), req, doc); err != nil {
		switch {
		case errors.Is(err, repository.ErrEnrollmentNotFound):
			log.Error("enrollment not found", slog.String("uid", req.EnrollmentUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("enrollment not found"))
		case errors.Is(err, enrollment.ErrInvalidSignature):
			log.Error("invalid payment signature", slog.String("uid", req.EnrollmentUID))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid payment signature"))
		case errors.Is(err, enrollment.ErrRecordNotSaved):
			log.Error("record not forwarded", sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error("payment received, but we could not record your enrollment; we will retry shortly"))
		default:
			log.Error("failed to confirm payment", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not confirm payment"))
		}
		return
	}

	log.Info("payment confirmed", slog.String("uid", req.EnrollmentUID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"enrollment_uid": req.EnrollmentUID,
		"status":         models.StatusRecorded,
	}))
}
