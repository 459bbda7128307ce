// Package enrollmentservice собирает основное HTTP-приложение: хранилище,
// кэш, очередь, платёжного провайдера и intake-клиент.
package enrollmentservice

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/shivaniarts/enrollment-service/internal/cache"
	"github.com/shivaniarts/enrollment-service/internal/config"
	"github.com/shivaniarts/enrollment-service/internal/intake"
	"github.com/shivaniarts/enrollment-service/internal/lib/jwt"
	"github.com/shivaniarts/enrollment-service/internal/lib/rabbitmq"
	"github.com/shivaniarts/enrollment-service/internal/migrations"
	"github.com/shivaniarts/enrollment-service/internal/paymentprovider"
	authservice "github.com/shivaniarts/enrollment-service/internal/services/auth"
	enrollservice "github.com/shivaniarts/enrollment-service/internal/services/enrollment"
	quoteservice "github.com/shivaniarts/enrollment-service/internal/services/quote"
	"github.com/shivaniarts/enrollment-service/internal/storage/repository"
)

// App представляет основное приложение сервиса записи.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	conn   *amqp.Connection
	ch     *amqp.Channel
}

// rabbitPublisher адаптирует канал AMQP под интерфейс Publisher бизнес-логики.
type rabbitPublisher struct {
	ch *amqp.Channel
}

func (p *rabbitPublisher) Publish(routingKey string, message any) error {
	return rabbitmq.PublishMessage(p.ch, rabbitmq.ExchangeName, routingKey, message)
}

// New создает основное приложение со всеми зависимостями.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		conn.Close()
		return nil, err
	}

	providerClient := paymentprovider.NewClient(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret, cfg.Razorpay.APIURL)
	intakeClient := intake.NewClient(cfg.IntakeURL, cfg.IntakeTimeout)
	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker)
	quoteService := quoteservice.New(cacheRedis, cfg.ExchangeRate, logger)
	enrollmentService := enrollservice.New(db, providerClient, intakeClient,
		&rabbitPublisher{ch: ch}, cfg.ExchangeRate, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, db, enrollmentService, quoteService, authService, cfg.Razorpay.WebhookSecret)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		conn:   conn,
		ch:     ch,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.ch.Close(); closeErr != nil {
			a.logger.Error("failed to close channel", slog.Any("err", closeErr))
		}
		if closeErr := a.conn.Close(); closeErr != nil {
			a.logger.Error("failed to close connection", slog.Any("err", closeErr))
		}
		a.db.DB.Close()
		return err
	}
}
