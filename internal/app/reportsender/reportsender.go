// Package reportsender собирает приложение-потребитель очереди заданий
// на отправку отчетов.
package reportsender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/oceanmeet/meeting-hub/internal/config"
	"github.com/oceanmeet/meeting-hub/internal/lib/rabbitmq"
	"github.com/oceanmeet/meeting-hub/internal/lib/smtp"
	"github.com/oceanmeet/meeting-hub/internal/reportclient"
	senderservice "github.com/oceanmeet/meeting-hub/internal/services/sender"
	"github.com/oceanmeet/meeting-hub/internal/storage/repository"
)

// App приложение-потребитель очереди заданий отчетов.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.SenderService
	logger        *slog.Logger
}

// New собирает приложение из конфигурации.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetReportQueues())
	if err != nil {
		conn.Close()
		return nil, err
	}

	reportGen := reportclient.NewClient(cfg.ReportServiceURL)
	newTransport := smtp.NewTransport(cfg.SMTPConnection, logger)
	senderService := senderservice.NewSenderService(db, reportGen, newTransport, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

// Run запускает потребителя очереди и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.ReportJobsQueue, func(body []byte) error {
		return a.senderService.SendReportJob(ctx, body)
	})
	if err != nil {
		a.logger.Error("failed to start report jobs consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("report sender shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}
