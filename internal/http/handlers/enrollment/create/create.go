// Package create реализует HTTP-обработчик для создания новых записей на занятия.
//
// Handler принимает JSON-запрос с данными формы, валидирует их, вызывает
// бизнес-логику создания записи (включая заказ у платёжного провайдера)
// и возвращает параметры для открытия виджета оплаты.
//
// В случае ошибок формируются соответствующие HTTP-ответы с описанием проблемы.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/shivaniarts/enrollment-service/internal/http/response"
	"github.com/shivaniarts/enrollment-service/internal/lib/sl"
	"github.com/shivaniarts/enrollment-service/internal/models"
	"github.com/shivaniarts/enrollment-service/internal/services/enrollment"
)

// Handler управляет HTTP-запросами на создание новых записей.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики для создания записи
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания записи.
type Service interface {
	Create(ctx context.Context, req models.DummyEnrollment) (*models.CheckoutSession, error)
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
// @Summary Создать новую запись на занятия
// @Description Создает запись в статусе ожидания оплаты и возвращает параметры виджета оплаты.
// @Tags Enrollments
// @Accept  json
// @Produce  json
// @Param request body models.DummyEnrollment true "Данные формы записи"
// @Success 200 {object} map[string]any "Параметры виджета оплаты"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации или недопустимый возраст"
// @Failure 502 {object} response.ErrorResponse "Платёжный провайдер недоступен"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании записи"
// @Router /enrollments [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.enrollment.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyEnrollment
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	session, err := h.service.Create(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, enrollment.ErrZeroFee):
			log.Error("zero fee for enrollment", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("please enter a valid age"))
		case errors.Is(err, enrollment.ErrProviderUnavailable):
			log.Error("payment provider unavailable", sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error("payment provider unavailable, try again later"))
		default:
			log.Error("failed to create enrollment", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not create enrollment"))
		}
		return
	}

	log.Info("success to create enrollment", slog.String("uid", session.EnrollmentUID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"enrollment_uid": session.EnrollmentUID,
		"checkout":       session.Checkout,
	}))
}
