// Package enrollmentservice предоставляет маршруты для основного приложения.
package enrollmentservice

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/shivaniarts/enrollment-service/internal/http/handlers/auth/login"
	"github.com/shivaniarts/enrollment-service/internal/http/handlers/auth/register"
	enrollcreate "github.com/shivaniarts/enrollment-service/internal/http/handlers/enrollment/create"
	enrolllist "github.com/shivaniarts/enrollment-service/internal/http/handlers/enrollment/list"
	enrollread "github.com/shivaniarts/enrollment-service/internal/http/handlers/enrollment/read"
	"github.com/shivaniarts/enrollment-service/internal/http/handlers/health"
	"github.com/shivaniarts/enrollment-service/internal/http/handlers/payment/confirm"
	"github.com/shivaniarts/enrollment-service/internal/http/handlers/payment/paymentlist"
	"github.com/shivaniarts/enrollment-service/internal/http/handlers/payment/webhook"
	pricingquote "github.com/shivaniarts/enrollment-service/internal/http/handlers/pricing/quote"
	"github.com/shivaniarts/enrollment-service/internal/http/middlewarectx"
	authservice "github.com/shivaniarts/enrollment-service/internal/services/auth"
	enrollservice "github.com/shivaniarts/enrollment-service/internal/services/enrollment"
	quoteservice "github.com/shivaniarts/enrollment-service/internal/services/quote"
	"github.com/shivaniarts/enrollment-service/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, db *repository.Storage,
	enrollmentService *enrollservice.Service, quoteService *quoteservice.Service,
	authService *authservice.AuthService, webhookSecret string) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки формы
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/quote", pricingquote.New(logger, quoteService).ServeHTTP)
			r.Post("/enrollments", enrollcreate.New(logger, enrollmentService).ServeHTTP)
			r.Post("/payments/confirm", confirm.New(logger, enrollmentService).ServeHTTP)
		})

		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)

		// Webhook endpoint (без аутентификации, проверяется подписью)
		r.Post("/payments/webhook", webhook.New(logger, enrollmentService, webhookSecret).ServeHTTP)

		// Группа с JWT аутентификацией для админ-панели
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Get("/enrollments", enrolllist.New(logger, enrollmentService).ServeHTTP)
			r.Get("/enrollments/{uid}", enrollread.New(logger, enrollmentService).ServeHTTP)
			r.Get("/payments/list", paymentlist.New(logger, enrollmentService).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger, db).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
