// Package forwarder собирает воркер доотправки intake-записей.
package forwarder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/shivaniarts/enrollment-service/internal/config"
	"github.com/shivaniarts/enrollment-service/internal/intake"
	"github.com/shivaniarts/enrollment-service/internal/lib/rabbitmq"
	forwarderservice "github.com/shivaniarts/enrollment-service/internal/services/forwarder"
	"github.com/shivaniarts/enrollment-service/internal/storage/repository"
)

// App представляет приложение воркера доотправки.
type App struct {
	forwarderService *forwarderservice.ForwarderService
	interval         time.Duration
	db               *repository.Storage
	conn             *amqp.Connection
	ch               *amqp.Channel
	logger           *slog.Logger
}

// rabbitPublisher адаптирует канал AMQP под интерфейс Publisher воркера.
type rabbitPublisher struct {
	ch *amqp.Channel
}

func (p *rabbitPublisher) Publish(routingKey string, message any) error {
	return rabbitmq.PublishMessage(p.ch, rabbitmq.ExchangeName, routingKey, message)
}

func waitForDB(ctx context.Context, db *repository.Storage) error {
	for range 10 {
		if err := db.CheckDatabaseReady(ctx); err == nil {
			return nil
		}
		time.Sleep(3 * time.Second)
	}
	return fmt.Errorf("database not ready after retries")
}

// New создает новый экземпляр приложения воркера.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect storage: %w", err)
	}

	if err := waitForDB(ctx, db); err != nil {
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

	intakeClient := intake.NewClient(cfg.IntakeURL, cfg.IntakeTimeout)
	forwarderService := forwarderservice.NewForwarderService(
		db, intakeClient, &rabbitPublisher{ch: ch}, cfg.ForwardBatch, cfg.AbandonAfter, logger)

	return &App{
		forwarderService: forwarderService,
		interval:         cfg.ForwardInterval,
		db:               db,
		conn:             conn,
		ch:               ch,
		logger:           logger,
	}, nil
}

// Run запускает цикл доотправки и блокируется до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	a.forwarderService.Run(ctx, a.interval)

	a.logger.Info("shutting down forwarder service")
	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}
	return a.db.DB.Close()
}
