package stats

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

	"github.com/oceanmeet/meeting-hub/internal/models"
)

// MockService реализует интерфейс stats.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Compute(ctx context.Context) (*models.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Stats), args.Error(1)
}

func TestStatsHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешный подсчет",
			setupMock: func(m *MockService) {
				m.On("Compute", mock.Anything).Return(&models.Stats{
					TotalUsers:        10,
					TotalAdmins:       2,
					RegularUsers:      8,
					TotalTransactions: 6,
					TotalRevenue:      106.5,
					PlanStats: []models.PlanStat{
						{PlanName: "Pro", Count: 3, Revenue: 57},
					},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"total_revenue":106.5`,
		},
		{
			name: "ошибка сервиса",
			setupMock: func(m *MockService) {
				m.On("Compute", mock.Anything).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"could not compute stats"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
