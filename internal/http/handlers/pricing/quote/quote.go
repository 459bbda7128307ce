// Package quote реализует HTTP-обработчик расчёта стоимости обучения.
//
// Handler принимает JSON с возрастом, резидентством и числом месяцев
// и возвращает стоимость в валюте отображения вместе с расчётной суммой
// в минимальных единицах валюты зачисления.
//
// Возраст принимается строкой, как его отправляет форма: нечисловое
// значение трактуется как нулевая стоимость, а не ошибка.
package quote

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/shivaniarts/enrollment-service/internal/http/response"
	"github.com/shivaniarts/enrollment-service/internal/lib/sl"
	"github.com/shivaniarts/enrollment-service/internal/models"
	"github.com/shivaniarts/enrollment-service/internal/pricing"
)

// Request — структура входных данных для расчёта стоимости.
type Request struct {
	Age       string `json:"age" validate:"required"`
	Residency string `json:"residency" validate:"required,oneof=IND INTL"`
	Months    int    `json:"months" validate:"required,min=1"`
}

// Handler обрабатывает HTTP-запросы расчёта стоимости.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис расчёта стоимости
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс сервиса расчёта стоимости.
type Service interface {
	Quote(residency string, age, months int) (*models.Quote, error)
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
// @Summary Рассчитать стоимость обучения
// @Description Возвращает стоимость обучения по возрасту, резидентству и числу месяцев. Нулевая стоимость означает недопустимый возраст.
// @Tags Pricing
// @Accept  json
// @Produce  json
// @Param request body Request true "Параметры формы"
// @Success 200 {object} map[string]any "Рассчитанная стоимость"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /quote [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.pricing.quote"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
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

	age := pricing.ParseAge(req.Age)
	result, err := h.service.Quote(req.Residency, age, req.Months)
	if err != nil {
		log.Error("failed to compute quote", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not compute quote"))
		return
	}

	log.Info("quote computed", sl.Amount(result.DisplayAmount, result.DisplayCurrency))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"quote": result,
	}))
}
