// Package stats содержит бизнес-логику агрегированной статистики для администраторов.
package stats

import (
	"context"
	"log/slog"

	"github.com/oceanmeet/meeting-hub/internal/models"
)

// StatsRepository определяет методы подсчёта агрегатов в хранилище.
type StatsRepository interface {
	// CountUsers возвращает общее число пользователей и число администраторов.
	CountUsers(ctx context.Context) (total int, admins int, err error)
	// CountTransactions возвращает число покупок и сумму их цен.
	CountTransactions(ctx context.Context) (total int, revenue float64, err error)
	// PlanStats возвращает покупки, сгруппированные по планам.
	PlanStats(ctx context.Context) ([]models.PlanStat, error)
}

// StatsService считает сводную статистику по пользователям и покупкам.
// Статистика всегда пересчитывается из хранилища, без кеширования.
type StatsService struct {
	repo StatsRepository
	log  *slog.Logger
}

// NewStatsService создает новый экземпляр StatsService.
func NewStatsService(repo StatsRepository, log *slog.Logger) *StatsService {
	return &StatsService{
		repo: repo,
		log:  log,
	}
}

// Compute возвращает сводную статистику: число пользователей и администраторов,
// число покупок, суммарную выручку и разбивку по планам.
func (s *StatsService) Compute(ctx context.Context) (*models.Stats, error) {
	totalUsers, totalAdmins, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	totalTransactions, totalRevenue, err := s.repo.CountTransactions(ctx)
	if err != nil {
		return nil, err
	}
	planStats, err := s.repo.PlanStats(ctx)
	if err != nil {
		return nil, err
	}

	return &models.Stats{
		TotalUsers:        totalUsers,
		TotalAdmins:       totalAdmins,
		RegularUsers:      totalUsers - totalAdmins,
		TotalTransactions: totalTransactions,
		TotalRevenue:      totalRevenue,
		PlanStats:         planStats,
	}, nil
}
