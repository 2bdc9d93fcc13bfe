// Package meetinghub собирает основное HTTP-приложение: хранилище, кеш,
// брокер, сервисы и маршруты.
package meetinghub

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/oceanmeet/meeting-hub/internal/cache"
	"github.com/oceanmeet/meeting-hub/internal/config"
	"github.com/oceanmeet/meeting-hub/internal/lib/jwt"
	"github.com/oceanmeet/meeting-hub/internal/lib/rabbitmq"
	"github.com/oceanmeet/meeting-hub/internal/migrations"
	"github.com/oceanmeet/meeting-hub/internal/oauth"
	"github.com/oceanmeet/meeting-hub/internal/reportclient"
	authservice "github.com/oceanmeet/meeting-hub/internal/services/auth"
	meetingservice "github.com/oceanmeet/meeting-hub/internal/services/meeting"
	"github.com/oceanmeet/meeting-hub/internal/services/plan"
	reportservice "github.com/oceanmeet/meeting-hub/internal/services/report"
	statsservice "github.com/oceanmeet/meeting-hub/internal/services/stats"
	transactionservice "github.com/oceanmeet/meeting-hub/internal/services/transaction"
	userservice "github.com/oceanmeet/meeting-hub/internal/services/user"
	"github.com/oceanmeet/meeting-hub/internal/storage/repository"
)

// App основное приложение: HTTP-сервер и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	conn   *amqp.Connection
	ch     *amqp.Channel
}

// New собирает приложение из конфигурации: подключает базу, применяет
// миграции, поднимает кеш и брокер, создает сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
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
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetReportQueues())
	if err != nil {
		conn.Close()
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	googleClient := oauth.NewGoogleClient(cfg.GoogleOAuth)
	reportGen := reportclient.NewClient(cfg.ReportServiceURL)

	catalog := plan.NewCatalog(plan.DefaultPlans())
	authService := authservice.NewAuthService(db, jwtMaker)
	transactionService := transactionservice.NewTransactionService(db, catalog, cacheRedis, logger)
	statsService := statsservice.NewStatsService(db, logger)
	userService := userservice.NewUserService(db, logger)
	meetingService := meetingservice.NewMeetingService(db, cacheRedis, ch, logger)
	reportService := reportservice.NewReportService(meetingService, reportGen, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &Services{
		Auth:         authService,
		Catalog:      catalog,
		Transactions: transactionService,
		Stats:        statsService,
		Users:        userService,
		Meetings:     meetingService,
		Reports:      reportService,
		Storage:      db,
		OAuth:        googleClient,
		FrontendURL:  cfg.FrontendURL,
		TokenTTL:     cfg.TokenTTL,
	})

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

// Run запускает HTTP-сервер и корректно останавливает его при отмене контекста.
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
