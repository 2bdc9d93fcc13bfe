package repository

import (
	"context"
	"fmt"

	"github.com/oceanmeet/meeting-hub/internal/models"
)

// CreateTransaction вставляет новую запись покупки и возвращает её вместе с
// присвоенным идентификатором и временем создания.
func (s *Storage) CreateTransaction(ctx context.Context, userUID, planName string, price float64) (*models.Transaction, error) {
	const op = "storage.CreateTransaction"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO transactions (user_uid, plan_name, price)
			  VALUES ($1, $2, $3)
			  RETURNING id, user_uid, plan_name, price, created_at`
	var tx models.Transaction
	row := s.DB.QueryRowContext(ctx, query, userUID, planName, price)
	if err := row.Scan(&tx.ID, &tx.UserUID, &tx.PlanName, &tx.Price, &tx.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &tx, nil
}

// GetTransaction возвращает запись покупки по её ID.
func (s *Storage) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	const op = "storage.GetTransaction"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, plan_name, price, created_at
			  FROM transactions
			  WHERE id = $1`
	var tx models.Transaction
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&tx.ID, &tx.UserUID, &tx.PlanName, &tx.Price, &tx.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &tx, nil
}

// RemoveTransaction удаляет запись покупки по ID и возвращает количество удалённых строк.
func (s *Storage) RemoveTransaction(ctx context.Context, id string) (int, error) {
	const op = "storage.RemoveTransaction"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM transactions WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListTransactionsByOwner возвращает покупки пользователя, новые первыми.
func (s *Storage) ListTransactionsByOwner(ctx context.Context, userUID string) ([]*models.Transaction, error) {
	const op = "storage.ListTransactionsByOwner"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, plan_name, price, created_at
			  FROM transactions
			  WHERE user_uid = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err = rows.Scan(&tx.ID, &tx.UserUID, &tx.PlanName, &tx.Price, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &tx)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListAllTransactions возвращает все покупки с минимальной проекцией владельца,
// новые первыми.
func (s *Storage) ListAllTransactions(ctx context.Context) ([]*models.TransactionWithOwner, error) {
	const op = "storage.ListAllTransactions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT t.id, t.user_uid, t.plan_name, t.price, t.created_at,
			      u.name, u.email, u.role
			  FROM transactions t
			  JOIN users u ON t.user_uid = u.uid
			  ORDER BY t.created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.TransactionWithOwner
	for rows.Next() {
		var tx models.TransactionWithOwner
		if err = rows.Scan(&tx.ID, &tx.UserUID, &tx.PlanName, &tx.Price, &tx.CreatedAt,
			&tx.OwnerName, &tx.OwnerEmail, &tx.OwnerRole); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &tx)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountTransactions возвращает число покупок и сумму их цен.
func (s *Storage) CountTransactions(ctx context.Context) (total int, revenue float64, err error) {
	const op = "storage.CountTransactions"
	select {
	case <-ctx.Done():
		return 0, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*), COALESCE(SUM(price), 0) FROM transactions`
	if err = s.DB.QueryRowContext(ctx, query).Scan(&total, &revenue); err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, revenue, nil
}

// PlanStats агрегирует покупки по планам, сортируя по числу покупок по убыванию.
func (s *Storage) PlanStats(ctx context.Context) ([]models.PlanStat, error) {
	const op = "storage.PlanStats"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT plan_name, COUNT(*), COALESCE(SUM(price), 0)
			  FROM transactions
			  GROUP BY plan_name
			  ORDER BY COUNT(*) DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.PlanStat
	for rows.Next() {
		var st models.PlanStat
		if err = rows.Scan(&st.PlanName, &st.Count, &st.Revenue); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, st)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
