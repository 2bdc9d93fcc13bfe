package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/oceanmeet/meeting-hub/internal/models"
)

// CreateUser сохраняет нового пользователя в базу данных и возвращает его UID.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (email, name, password_hash, role, auto_report_enabled)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.Name, user.PasswordHash, user.Role,
		user.AutoReportEnabled).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// UpsertUserByEmail создает пользователя при первом входе через Google
// либо возвращает уже существующую запись по email.
func (s *Storage) UpsertUserByEmail(ctx context.Context, email, name string) (*models.User, error) {
	const op = "storage.UpsertUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (email, name, role)
			  VALUES ($1, $2, 'user')
			  ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
			  RETURNING uid, email, name, password_hash, role, auto_report_enabled, created_at`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, email, name)
	if err := row.Scan(&u.UID, &u.Email, &u.Name, &u.PasswordHash,
		&u.Role, &u.AutoReportEnabled, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUserByEmail возвращает пользователя по email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, name, password_hash, role, auto_report_enabled, created_at
			  FROM users
			  WHERE email = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, email)
	if err := row.Scan(&u.UID, &u.Email, &u.Name, &u.PasswordHash,
		&u.Role, &u.AutoReportEnabled, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, name, password_hash, role, auto_report_enabled, created_at
			  FROM users
			  WHERE uid = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, userUID)
	if err := row.Scan(&u.UID, &u.Email, &u.Name, &u.PasswordHash,
		&u.Role, &u.AutoReportEnabled, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// ListUsers возвращает всех пользователей, новые первыми.
func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, name, password_hash, role, auto_report_enabled, created_at
			  FROM users
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		var u models.User
		if err = rows.Scan(&u.UID, &u.Email, &u.Name, &u.PasswordHash,
			&u.Role, &u.AutoReportEnabled, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateUserRole меняет роль пользователя и возвращает обновленную запись.
func (s *Storage) UpdateUserRole(ctx context.Context, userUID, role string) (*models.User, error) {
	const op = "storage.UpdateUserRole"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET role = $1
			  WHERE uid = $2
			  RETURNING uid, email, name, password_hash, role, auto_report_enabled, created_at`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, role, userUID)
	if err := row.Scan(&u.UID, &u.Email, &u.Name, &u.PasswordHash,
		&u.Role, &u.AutoReportEnabled, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// SetAutoReport включает или выключает автоматические отчеты пользователя.
func (s *Storage) SetAutoReport(ctx context.Context, userUID string, enabled bool) (int, error) {
	const op = "storage.SetAutoReport"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET auto_report_enabled = $1
			  WHERE uid = $2`
	res, err := s.DB.ExecContext(ctx, query, enabled, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// CountUsers возвращает общее число пользователей и число администраторов.
func (s *Storage) CountUsers(ctx context.Context) (total int, admins int, err error) {
	const op = "storage.CountUsers"
	select {
	case <-ctx.Done():
		return 0, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*), COUNT(*) FILTER (WHERE role = 'admin') FROM users`
	if err = s.DB.QueryRowContext(ctx, query).Scan(&total, &admins); err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, admins, nil
}

// IsNoRows сообщает, является ли ошибка отсутствием записи.
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
