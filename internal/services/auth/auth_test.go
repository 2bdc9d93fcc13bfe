package auth

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/oceanmeet/meeting-hub/internal/lib/jwt"
	"github.com/oceanmeet/meeting-hub/internal/lib/password"
	"github.com/oceanmeet/meeting-hub/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}
func (m *RepoMock) UpsertUserByEmail(ctx context.Context, email, name string) (*models.User, error) {
	args := m.Called(ctx, email, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *RepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newMaker() jwt.Maker {
	return jwt.NewJWTMaker("test-secret-key", 5*24*time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	repo := new(RepoMock)
	svc := NewAuthService(repo, newMaker())

	repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Email == "new@example.com" &&
			u.Role == models.RoleUser &&
			password.CompareHash(u.PasswordHash, "secretpass") == nil
	})).Return("uid-1", nil).Once()

	uid, err := svc.Register(context.Background(), "New User", "new@example.com", "secretpass")
	assert.NoError(t, err)
	assert.Equal(t, "uid-1", uid)

	repo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	hash, err := password.GetHash("secretpass")
	assert.NoError(t, err)
	stored := &models.User{
		UID:          "uid-1",
		Email:        "user@example.com",
		Name:         "User",
		PasswordHash: hash,
		Role:         models.RoleUser,
	}

	tests := []struct {
		name       string
		email      string
		pass       string
		setupMocks func(r *RepoMock)
		wantErr    error
	}{
		{
			name:  "success login",
			email: "user@example.com",
			pass:  "secretpass",
			setupMocks: func(r *RepoMock) {
				r.On("GetUserByEmail", mock.Anything, "user@example.com").Return(stored, nil).Once()
			},
		},
		{
			name:  "wrong password",
			email: "user@example.com",
			pass:  "wrongpass",
			setupMocks: func(r *RepoMock) {
				r.On("GetUserByEmail", mock.Anything, "user@example.com").Return(stored, nil).Once()
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:  "unknown email",
			email: "ghost@example.com",
			pass:  "secretpass",
			setupMocks: func(r *RepoMock) {
				r.On("GetUserByEmail", mock.Anything, "ghost@example.com").
					Return(nil, fmt.Errorf("storage.GetUserByEmail: %w", sql.ErrNoRows)).Once()
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:  "google-only account has no password",
			email: "google@example.com",
			pass:  "secretpass",
			setupMocks: func(r *RepoMock) {
				r.On("GetUserByEmail", mock.Anything, "google@example.com").
					Return(&models.User{UID: "uid-2", Email: "google@example.com", Role: models.RoleUser}, nil).Once()
			},
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			svc := NewAuthService(repo, newMaker())

			tt.setupMocks(repo)

			token, user, err := svc.Login(context.Background(), tt.email, tt.pass)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.Equal(t, stored, user)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_LoginWithGoogle(t *testing.T) {
	repo := new(RepoMock)
	svc := NewAuthService(repo, newMaker())
	stored := &models.User{UID: "uid-1", Email: "user@example.com", Name: "User", Role: models.RoleUser}

	repo.On("UpsertUserByEmail", mock.Anything, "user@example.com", "User").Return(stored, nil).Once()

	token, user, err := svc.LoginWithGoogle(context.Background(), "user@example.com", "User")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, stored, user)

	repo.AssertExpectations(t)
}

func TestAuthService_Authenticate(t *testing.T) {
	maker := newMaker()
	stored := &models.User{UID: "uid-1", Email: "user@example.com", Name: "User", Role: models.RoleAdmin}

	t.Run("resolves token to stored user", func(t *testing.T) {
		repo := new(RepoMock)
		svc := NewAuthService(repo, maker)

		token, err := maker.GenerateToken("user@example.com", "User")
		assert.NoError(t, err)

		repo.On("GetUserByEmail", mock.Anything, "user@example.com").Return(stored, nil).Once()

		got, err := svc.Authenticate(context.Background(), token)
		assert.NoError(t, err)
		// роль берётся из хранилища, а не из токена
		assert.Equal(t, models.RoleAdmin, got.Role)

		repo.AssertExpectations(t)
	})

	t.Run("garbage token", func(t *testing.T) {
		repo := new(RepoMock)
		svc := NewAuthService(repo, maker)

		got, err := svc.Authenticate(context.Background(), "not-a-token")
		assert.Error(t, err)
		assert.Nil(t, got)
	})

	t.Run("valid token for deleted user", func(t *testing.T) {
		repo := new(RepoMock)
		svc := NewAuthService(repo, maker)

		token, err := maker.GenerateToken("gone@example.com", "Gone")
		assert.NoError(t, err)

		repo.On("GetUserByEmail", mock.Anything, "gone@example.com").
			Return(nil, fmt.Errorf("storage.GetUserByEmail: %w", sql.ErrNoRows)).Once()

		got, err := svc.Authenticate(context.Background(), token)
		assert.ErrorIs(t, err, ErrUnknownPrincipal)
		assert.Nil(t, got)

		repo.AssertExpectations(t)
	})
}
