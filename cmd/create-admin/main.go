// Утилита для назначения пользователю роли администратора по email.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/oceanmeet/meeting-hub/internal/config"
	"github.com/oceanmeet/meeting-hub/internal/models"
	"github.com/oceanmeet/meeting-hub/internal/storage/repository"
)

func main() {
	email := flag.String("email", "", "email of the user to promote")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *email == "" {
		logger.Error("email flag is required")
		os.Exit(1)
	}

	cfg := config.MustLoad()
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		logger.Error("failed to connect to storage", slog.Any("err", err))
		os.Exit(1)
	}
	defer db.DB.Close()

	ctx := context.Background()
	user, err := db.GetUserByEmail(ctx, *email)
	if err != nil {
		logger.Error("failed to find user", slog.String("email", *email), slog.Any("err", err))
		os.Exit(1)
	}

	if _, err := db.UpdateUserRole(ctx, user.UID, models.RoleAdmin); err != nil {
		logger.Error("failed to promote user", slog.String("email", *email), slog.Any("err", err))
		os.Exit(1)
	}

	logger.Info("user promoted to admin", slog.String("email", *email))
}
