// Package meetinghub предоставляет маршруты для основного приложения.
package meetinghub

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	adminstats "github.com/oceanmeet/meeting-hub/internal/http/handlers/admin/stats"
	"github.com/oceanmeet/meeting-hub/internal/http/handlers/admin/transactionremove"
	admintransactions "github.com/oceanmeet/meeting-hub/internal/http/handlers/admin/transactions"
	"github.com/oceanmeet/meeting-hub/internal/http/handlers/admin/userrole"
	adminusers "github.com/oceanmeet/meeting-hub/internal/http/handlers/admin/users"
	"github.com/oceanmeet/meeting-hub/internal/http/handlers/auth/autoreport"
	"github.com/oceanmeet/meeting-hub/internal/http/handlers/auth/googlecallback"
	"github.com/oceanmeet/meeting-hub/internal/http/handlers/auth/googlelogin"
	"github.com/oceanmeet/meeting-hub/internal/http/handlers/auth/login"
	"github.com/oceanmeet/meeting-hub/internal/http/handlers/auth/logout"
	"github.com/oceanmeet/meeting-hub/internal/http/handlers/auth/me"
	"github.com/oceanmeet/meeting-hub/internal/http/handlers/auth/register"
	"github.com/oceanmeet/meeting-hub/internal/http/handlers/health"
	meetingcreate "github.com/oceanmeet/meeting-hub/internal/http/handlers/meeting/create"
	meetinglist "github.com/oceanmeet/meeting-hub/internal/http/handlers/meeting/list"
	plancancel "github.com/oceanmeet/meeting-hub/internal/http/handlers/plan/cancel"
	planlist "github.com/oceanmeet/meeting-hub/internal/http/handlers/plan/list"
	"github.com/oceanmeet/meeting-hub/internal/http/handlers/plan/myplans"
	"github.com/oceanmeet/meeting-hub/internal/http/handlers/plan/purchase"
	reportgenerate "github.com/oceanmeet/meeting-hub/internal/http/handlers/report/generate"
	"github.com/oceanmeet/meeting-hub/internal/http/middlewarectx"
	"github.com/oceanmeet/meeting-hub/internal/models"
	"github.com/oceanmeet/meeting-hub/internal/oauth"
	authservice "github.com/oceanmeet/meeting-hub/internal/services/auth"
	meetingservice "github.com/oceanmeet/meeting-hub/internal/services/meeting"
	"github.com/oceanmeet/meeting-hub/internal/services/plan"
	reportservice "github.com/oceanmeet/meeting-hub/internal/services/report"
	statsservice "github.com/oceanmeet/meeting-hub/internal/services/stats"
	transactionservice "github.com/oceanmeet/meeting-hub/internal/services/transaction"
	userservice "github.com/oceanmeet/meeting-hub/internal/services/user"
	"github.com/oceanmeet/meeting-hub/internal/storage/repository"
)

// Services зависимости маршрутов основного приложения.
type Services struct {
	Auth         *authservice.AuthService
	Catalog      *plan.Catalog
	Transactions *transactionservice.TransactionService
	Stats        *statsservice.StatsService
	Users        *userservice.UserService
	Meetings     *meetingservice.MeetingService
	Reports      *reportservice.ReportService
	Storage      *repository.Storage
	OAuth        *oauth.GoogleClient
	FrontendURL  string
	TokenTTL     time.Duration
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s *Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Get("/plans", planlist.New(logger, s.Catalog).ServeHTTP)
		r.Get("/health", health.New(logger, s.Storage).ServeHTTP)
		r.Get("/oauth/google", googlelogin.New(logger, s.OAuth).ServeHTTP)
		r.Get("/oauth/google/callback", googlecallback.New(logger, s.OAuth, s.Auth, s.FrontendURL, s.TokenTTL).ServeHTTP)
		r.Post("/auth/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/auth/login", login.New(logger, s.Auth, s.TokenTTL).ServeHTTP)
		r.Get("/auth/logout", logout.New(logger).ServeHTTP)

		// Группа с аутентификацией по cookie сессии
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.AuthMiddleware(s.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/auth/me", me.New(logger).ServeHTTP)
			r.Put("/auth/auto-report", autoreport.New(logger, s.Users).ServeHTTP)

			r.Post("/plans/purchase", purchase.New(logger, s.Transactions).ServeHTTP)
			r.Get("/plans/my-plans", myplans.New(logger, s.Transactions).ServeHTTP)
			r.Delete("/plans/cancel/{id}", plancancel.New(logger, s.Transactions).ServeHTTP)

			r.Get("/meetings", meetinglist.New(logger, s.Meetings).ServeHTTP)
			r.Post("/meetings", meetingcreate.New(logger, s.Meetings).ServeHTTP)
			r.Post("/reports", reportgenerate.New(logger, s.Reports).ServeHTTP)

			// Администрирование
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(logger, models.RoleAdmin))

				r.Get("/admin/transactions", admintransactions.New(logger, s.Transactions).ServeHTTP)
				r.Delete("/admin/transactions/{id}", transactionremove.New(logger, s.Transactions).ServeHTTP)
				r.Get("/admin/users", adminusers.New(logger, s.Users).ServeHTTP)
				r.Put("/admin/users/{id}/role", userrole.New(logger, s.Users).ServeHTTP)
				r.Get("/admin/stats", adminstats.New(logger, s.Stats).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
