// Package transaction содержит бизнес-логику покупки и отмены тарифных планов,
// включая кеширование списка покупок пользователя.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/oceanmeet/meeting-hub/internal/models"
	"github.com/oceanmeet/meeting-hub/internal/services/plan"
	"github.com/oceanmeet/meeting-hub/internal/storage/repository"
)

var (
	// ErrAdminPurchase возвращается при попытке администратора купить план.
	ErrAdminPurchase = errors.New("admin cannot purchase plans")
	// ErrForbidden возвращается при попытке отменить чужую покупку без прав администратора.
	ErrForbidden = errors.New("not allowed to cancel this transaction")
	// ErrNotFound возвращается, когда покупка не найдена (в том числе при повторной отмене).
	ErrNotFound = errors.New("transaction not found")
)

// TransactionRepository определяет методы для работы с покупками в хранилище.
type TransactionRepository interface {
	// CreateTransaction сохраняет новую покупку и возвращает её.
	CreateTransaction(ctx context.Context, userUID, planName string, price float64) (*models.Transaction, error)
	// GetTransaction возвращает покупку по ID.
	GetTransaction(ctx context.Context, id string) (*models.Transaction, error)
	// RemoveTransaction удаляет покупку по ID и возвращает количество удалённых записей.
	RemoveTransaction(ctx context.Context, id string) (int, error)
	// ListTransactionsByOwner возвращает покупки пользователя, новые первыми.
	ListTransactionsByOwner(ctx context.Context, userUID string) ([]*models.Transaction, error)
	// ListAllTransactions возвращает все покупки с данными владельцев.
	ListAllTransactions(ctx context.Context) ([]*models.TransactionWithOwner, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// TransactionService реализует бизнес-логику покупок тарифных планов.
type TransactionService struct {
	repo    TransactionRepository
	catalog *plan.Catalog
	cache   Cache
	log     *slog.Logger
}

// NewTransactionService создает новый экземпляр TransactionService.
func NewTransactionService(repo TransactionRepository, catalog *plan.Catalog, cache Cache, log *slog.Logger) *TransactionService {
	return &TransactionService{
		repo:    repo,
		catalog: catalog,
		cache:   cache,
		log:     log,
	}
}

func ownerCacheKey(userUID string) string {
	return fmt.Sprintf("transactions:owner:%s", userUID)
}

// Purchase записывает покупку плана пользователем. Администраторам покупка
// запрещена. Имя и цена плана сверяются с каталогом; в записи фиксируется
// цена из каталога на момент покупки. Повторная покупка того же плана
// добавляет новую запись.
func (s *TransactionService) Purchase(ctx context.Context, user *models.User, req models.PurchaseRequest) (*models.Transaction, error) {
	if user.Role == models.RoleAdmin {
		return nil, ErrAdminPurchase
	}
	p, err := s.catalog.Validate(req.PlanName, req.Price)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.CreateTransaction(ctx, user.UID, p.Name, p.Price)
	if err != nil {
		return nil, err
	}

	s.log.Info("created new transaction",
		slog.String("id", created.ID),
		slog.String("plan", created.PlanName))

	cacheKey := ownerCacheKey(user.UID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return created, nil
}

// ListOwn возвращает покупки пользователя, новые первыми, используя кеш или репозиторий.
func (s *TransactionService) ListOwn(ctx context.Context, userUID string) ([]*models.Transaction, error) {
	var result []*models.Transaction
	cacheKey := ownerCacheKey(userUID)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}
	result, err = s.repo.ListTransactionsByOwner(ctx, userUID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// ListAll возвращает все покупки с данными владельцев. Только для администраторов,
// проверка роли выполняется на уровне маршрутизатора.
func (s *TransactionService) ListAll(ctx context.Context) ([]*models.TransactionWithOwner, error) {
	return s.repo.ListAllTransactions(ctx)
}

// Cancel удаляет покупку. Разрешено владельцу покупки или администратору.
// Повторная отмена уже удалённой покупки возвращает ErrNotFound.
func (s *TransactionService) Cancel(ctx context.Context, user *models.User, id string) error {
	tx, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		if repository.IsNoRows(err) {
			return ErrNotFound
		}
		return err
	}
	if tx.UserUID != user.UID && user.Role != models.RoleAdmin {
		return ErrForbidden
	}

	count, err := s.repo.RemoveTransaction(ctx, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}

	cacheKey := ownerCacheKey(tx.UserUID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	s.log.Info("cancelled transaction", slog.String("id", id))
	return nil
}
