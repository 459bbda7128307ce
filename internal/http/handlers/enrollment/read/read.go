// Package read реализует HTTP-обработчик для получения конкретной записи по UID.
//
// Handler извлекает UID из URL-параметров, вызывает бизнес-логику для чтения записи
// и возвращает данные записи в JSON-формате.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/shivaniarts/enrollment-service/internal/http/response"
	"github.com/shivaniarts/enrollment-service/internal/lib/sl"
	"github.com/shivaniarts/enrollment-service/internal/models"
	"github.com/shivaniarts/enrollment-service/internal/storage/repository"
)

// Handler обрабатывает запросы на получение записи по уникальному идентификатору.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики для получения записи по UID
}

// Service описывает интерфейс бизнес-логики чтения записи.
type Service interface {
	Read(ctx context.Context, uid string) (*models.Enrollment, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить запись по UID
// @Description Возвращает запись на занятия по её уникальному идентификатору.
// @Tags Enrollments
// @Produce  json
// @Param uid path string true "UID записи"
// @Success 200 {object} map[string]any "Данные записи"
// @Failure 400 {object} response.ErrorResponse "Некорректный UID"
// @Failure 404 {object} response.ErrorResponse "Запись не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /enrollments/{uid} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.enrollment.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid := chi.URLParam(r, "uid")
	if _, err := uuid.Parse(uid); err != nil {
		log.Error("failed to decode uid from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode uid from url"))
		return
	}

	res, err := h.service.Read(r.Context(), uid)
	if err != nil {
		if errors.Is(err, repository.ErrEnrollmentNotFound) {
			log.Error("enrollment not found", slog.String("uid", uid))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("enrollment not found"))
			return
		}
		log.Error("failed to read enrollment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read enrollment"))
		return
	}

	log.Info("success to read enrollment", slog.String("uid", uid))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"enrollment": res,
	}))
}
