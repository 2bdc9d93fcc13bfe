// Package auth содержит бизнес-логику аутентификации: выпуск токена сессии
// после входа через Google или по паролю и разрешение токена в пользователя.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/oceanmeet/meeting-hub/internal/lib/jwt"
	"github.com/oceanmeet/meeting-hub/internal/lib/password"
	"github.com/oceanmeet/meeting-hub/internal/models"
	"github.com/oceanmeet/meeting-hub/internal/storage/repository"
)

var (
	// ErrInvalidCredentials возвращается при неверной паре email/пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnknownPrincipal возвращается, когда токен валиден, но пользователь
	// с заявленным email не найден.
	ErrUnknownPrincipal = errors.New("unknown principal")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его UID.
	CreateUser(ctx context.Context, user models.User) (string, error)

	// UpsertUserByEmail создает либо возвращает пользователя по email.
	UpsertUserByEmail(ctx context.Context, email, name string) (*models.User, error)

	// GetUserByEmail возвращает пользователя по email или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthService отвечает за регистрацию, вход и разрешение токена сессии.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля и дефолтной ролью "user".
func (s *AuthService) Register(ctx context.Context, name, email, rawPassword string) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	user := models.User{
		Email:        email,
		Name:         name,
		PasswordHash: hashed,
		Role:         models.RoleUser,
	}
	return s.users.CreateUser(ctx, user)
}

// Login проверяет пароль пользователя и выпускает токен сессии.
// Для аккаунтов, созданных только через Google, парольный вход невозможен.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, *models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if repository.IsNoRows(err) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if user.PasswordHash == "" {
		return "", nil, ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.Email, user.Name)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// LoginWithGoogle создает пользователя при первом входе через Google
// (upsert по email) и выпускает токен сессии.
func (s *AuthService) LoginWithGoogle(ctx context.Context, email, name string) (string, *models.User, error) {
	user, err := s.users.UpsertUserByEmail(ctx, email, name)
	if err != nil {
		return "", nil, err
	}
	token, err := s.jwtMaker.GenerateToken(user.Email, user.Name)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Authenticate разрешает токен сессии в пользователя.
// Токен только удостоверяет email: роль и остальные атрибуты всегда читаются
// из хранилища, чтобы смена роли действовала немедленно.
func (s *AuthService) Authenticate(ctx context.Context, tokenStr string) (*models.User, error) {
	const op = "auth.Authenticate"
	claims, err := s.jwtMaker.ParseToken(tokenStr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user, err := s.users.GetUserByEmail(ctx, claims.Email)
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, ErrUnknownPrincipal
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}
