package middlewarectx

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/oceanmeet/meeting-hub/internal/models"
)

// MockService реализует интерфейс middlewarectx.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestAuthMiddleware(t *testing.T) {
	stored := &models.User{UID: "uid-1", Email: "user@example.com", Role: models.RoleUser}

	tests := []struct {
		name           string
		cookie         *http.Cookie
		setupMock      func(*MockService)
		expectedStatus int
		wantNext       bool
	}{
		{
			name:   "valid cookie passes user to context",
			cookie: &http.Cookie{Name: TokenCookie, Value: "good-token"},
			setupMock: func(m *MockService) {
				m.On("Authenticate", mock.Anything, "good-token").Return(stored, nil)
			},
			expectedStatus: http.StatusOK,
			wantNext:       true,
		},
		{
			name:           "missing cookie",
			cookie:         nil,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "invalid token",
			cookie: &http.Cookie{Name: TokenCookie, Value: "bad-token"},
			setupMock: func(m *MockService) {
				m.On("Authenticate", mock.Anything, "bad-token").Return(nil, errors.New("token is invalid"))
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				got, ok := UserFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, stored, got)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			w := httptest.NewRecorder()

			AuthMiddleware(mockService, newNoopLogger())(next).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.wantNext, nextCalled)

			mockService.AssertExpectations(t)
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name           string
		user           *models.User
		allowed        []string
		expectedStatus int
		wantNext       bool
	}{
		{
			name:           "admin passes admin gate",
			user:           &models.User{UID: "uid-1", Role: models.RoleAdmin},
			allowed:        []string{models.RoleAdmin},
			expectedStatus: http.StatusOK,
			wantNext:       true,
		},
		{
			name:           "user rejected on admin gate",
			user:           &models.User{UID: "uid-2", Role: models.RoleUser},
			allowed:        []string{models.RoleAdmin},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "missing user rejected",
			user:           nil,
			allowed:        []string{models.RoleAdmin},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats", nil)
			if tt.user != nil {
				req = req.WithContext(context.WithValue(req.Context(), User, tt.user))
			}
			w := httptest.NewRecorder()

			RequireRole(newNoopLogger(), tt.allowed...)(next).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.wantNext, nextCalled)
		})
	}
}
