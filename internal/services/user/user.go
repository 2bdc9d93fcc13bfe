// Package user содержит бизнес-логику управления пользователями: списки
// с покупками для администраторов, смена роли и настройка авто-отчётов.
package user

import (
	"context"
	"errors"
	"log/slog"

	"github.com/oceanmeet/meeting-hub/internal/models"
	"github.com/oceanmeet/meeting-hub/internal/storage/repository"
)

var (
	// ErrInvalidRole возвращается при попытке назначить неизвестную роль.
	ErrInvalidRole = errors.New("invalid role")
	// ErrNotFound возвращается, когда пользователь не найден.
	ErrNotFound = errors.New("user not found")
)

// UserRepository определяет методы для работы с пользователями и их покупками.
type UserRepository interface {
	// ListUsers возвращает всех пользователей, новые первыми.
	ListUsers(ctx context.Context) ([]*models.User, error)
	// UpdateUserRole меняет роль пользователя и возвращает обновлённую запись.
	UpdateUserRole(ctx context.Context, userUID, role string) (*models.User, error)
	// SetAutoReport включает или выключает авто-отчёты, возвращает число записей.
	SetAutoReport(ctx context.Context, userUID string, enabled bool) (int, error)
	// ListTransactionsByOwner возвращает покупки пользователя, новые первыми.
	ListTransactionsByOwner(ctx context.Context, userUID string) ([]*models.Transaction, error)
}

// UserService реализует операции администрирования пользователей.
type UserService struct {
	repo UserRepository
	log  *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo UserRepository, log *slog.Logger) *UserService {
	return &UserService{
		repo: repo,
		log:  log,
	}
}

// ListWithPlans возвращает всех пользователей вместе с их покупками.
// Последней покупкой считается самая свежая запись.
func (s *UserService) ListWithPlans(ctx context.Context) ([]*models.UserWithPlans, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*models.UserWithPlans, 0, len(users))
	for _, u := range users {
		txs, err := s.repo.ListTransactionsByOwner(ctx, u.UID)
		if err != nil {
			return nil, err
		}
		item := &models.UserWithPlans{
			User:  *u,
			Plans: txs,
		}
		if len(txs) > 0 {
			item.LatestPlan = txs[0]
		}
		result = append(result, item)
	}
	return result, nil
}

// UpdateRole меняет роль пользователя. Допустимы только роли "admin" и "user".
func (s *UserService) UpdateRole(ctx context.Context, userUID, role string) (*models.User, error) {
	if role != models.RoleAdmin && role != models.RoleUser {
		return nil, ErrInvalidRole
	}

	updated, err := s.repo.UpdateUserRole(ctx, userUID, role)
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.log.Info("updated user role",
		slog.String("uid", userUID),
		slog.String("role", role))
	return updated, nil
}

// SetAutoReport включает или выключает авто-отчёты для пользователя.
func (s *UserService) SetAutoReport(ctx context.Context, userUID string, enabled bool) error {
	count, err := s.repo.SetAutoReport(ctx, userUID, enabled)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}
