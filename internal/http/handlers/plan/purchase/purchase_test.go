package purchase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/oceanmeet/meeting-hub/internal/http/middlewarectx"
	"github.com/oceanmeet/meeting-hub/internal/models"
	"github.com/oceanmeet/meeting-hub/internal/services/plan"
	"github.com/oceanmeet/meeting-hub/internal/services/transaction"
)

// MockService реализует интерфейс purchase.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Purchase(ctx context.Context, user *models.User, req models.PurchaseRequest) (*models.Transaction, error) {
	args := m.Called(ctx, user, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func TestPurchaseHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	regular := &models.User{UID: "uid-1", Email: "user@example.com", Role: models.RoleUser}
	admin := &models.User{UID: "uid-2", Email: "admin@example.com", Role: models.RoleAdmin}

	tests := []struct {
		name           string
		body           string
		user           *models.User
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная покупка",
			body: `{"plan_name":"Pro","price":19}`,
			user: regular,
			setupMock: func(m *MockService) {
				m.On("Purchase", mock.Anything, regular, models.PurchaseRequest{PlanName: "Pro", Price: 19}).
					Return(&models.Transaction{ID: "tx-1", UserUID: "uid-1", PlanName: "Pro", Price: 19}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"plan_name":"Pro"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"plan_name":`,
			user:           regular,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"invalid request body"`,
		},
		{
			name:           "отсутствует имя плана",
			body:           `{"price":19}`,
			user:           regular,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field PlanName is a required field`,
		},
		{
			name: "администратору покупка запрещена",
			body: `{"plan_name":"Pro","price":19}`,
			user: admin,
			setupMock: func(m *MockService) {
				m.On("Purchase", mock.Anything, admin, models.PurchaseRequest{PlanName: "Pro", Price: 19}).
					Return(nil, transaction.ErrAdminPurchase)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `"admin cannot purchase plans"`,
		},
		{
			name: "неизвестный план",
			body: `{"plan_name":"Enterprise","price":99}`,
			user: regular,
			setupMock: func(m *MockService) {
				m.On("Purchase", mock.Anything, regular, models.PurchaseRequest{PlanName: "Enterprise", Price: 99}).
					Return(nil, plan.ErrInvalidPlan)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"invalid plan"`,
		},
		{
			name: "подменённая цена",
			body: `{"plan_name":"Business","price":1}`,
			user: regular,
			setupMock: func(m *MockService) {
				m.On("Purchase", mock.Anything, regular, models.PurchaseRequest{PlanName: "Business", Price: 1}).
					Return(nil, plan.ErrInvalidPlan)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"invalid plan"`,
		},
		{
			name: "ошибка сервиса",
			body: `{"plan_name":"Pro","price":19}`,
			user: regular,
			setupMock: func(m *MockService) {
				m.On("Purchase", mock.Anything, regular, models.PurchaseRequest{PlanName: "Pro", Price: 19}).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"could not purchase plan"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/plans/purchase", strings.NewReader(tt.body))
			req = req.WithContext(context.WithValue(req.Context(), middlewarectx.User, tt.user))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
