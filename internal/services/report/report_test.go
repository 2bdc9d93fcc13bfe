package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/oceanmeet/meeting-hub/internal/models"
	"github.com/oceanmeet/meeting-hub/internal/reportclient"
	"github.com/oceanmeet/meeting-hub/internal/services/meeting"
)

type MeetingsMock struct{ mock.Mock }

func (m *MeetingsMock) Get(ctx context.Context, user *models.User, id string) (*models.Meeting, error) {
	args := m.Called(ctx, user, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Meeting), args.Error(1)
}

type GeneratorMock struct{ mock.Mock }

func (m *GeneratorMock) GenerateReport(ctx context.Context, req reportclient.GenerateReportRequest) (*reportclient.Report, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reportclient.Report), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestReportService_Generate(t *testing.T) {
	user := &models.User{UID: "uid-1", Email: "user@example.com", Role: models.RoleUser}
	stored := &models.Meeting{ID: "m-1", OwnerEmail: "user@example.com", Title: "Weekly sync"}
	req := models.ReportRequest{MeetingID: "m-1", ReportFormat: "pdf", ReportType: "detailed"}
	doc := &reportclient.Report{Content: []byte("%PDF-1.4"), ContentType: "application/pdf"}

	t.Run("success generate", func(t *testing.T) {
		meetings := new(MeetingsMock)
		generator := new(GeneratorMock)
		svc := NewReportService(meetings, generator, newNoopLogger())

		meetings.On("Get", mock.Anything, user, "m-1").Return(stored, nil).Once()
		generator.On("GenerateReport", mock.Anything, mock.MatchedBy(func(r reportclient.GenerateReportRequest) bool {
			return r.MeetingData == stored && r.ReportFormat == "pdf" && r.ReportType == "detailed"
		})).Return(doc, nil).Once()

		got, err := svc.Generate(context.Background(), user, req)
		assert.NoError(t, err)
		assert.Equal(t, doc, got)

		meetings.AssertExpectations(t)
		generator.AssertExpectations(t)
	})

	t.Run("meeting access errors pass through", func(t *testing.T) {
		meetings := new(MeetingsMock)
		generator := new(GeneratorMock)
		svc := NewReportService(meetings, generator, newNoopLogger())

		meetings.On("Get", mock.Anything, user, "m-1").Return(nil, meeting.ErrForbidden).Once()

		got, err := svc.Generate(context.Background(), user, req)
		assert.ErrorIs(t, err, meeting.ErrForbidden)
		assert.Nil(t, got)

		meetings.AssertExpectations(t)
	})

	t.Run("upstream failure not retried", func(t *testing.T) {
		meetings := new(MeetingsMock)
		generator := new(GeneratorMock)
		svc := NewReportService(meetings, generator, newNoopLogger())

		upstreamErr := fmt.Errorf("%w: %s", reportclient.ErrUpstream, "502 Bad Gateway")
		meetings.On("Get", mock.Anything, user, "m-1").Return(stored, nil).Once()
		generator.On("GenerateReport", mock.Anything, mock.Anything).Return(nil, upstreamErr).Once()

		got, err := svc.Generate(context.Background(), user, req)
		assert.ErrorIs(t, err, reportclient.ErrUpstream)
		assert.Contains(t, err.Error(), "502 Bad Gateway")
		assert.Nil(t, got)

		meetings.AssertExpectations(t)
		generator.AssertExpectations(t)
	})

	t.Run("generic generator error", func(t *testing.T) {
		meetings := new(MeetingsMock)
		generator := new(GeneratorMock)
		svc := NewReportService(meetings, generator, newNoopLogger())

		meetings.On("Get", mock.Anything, user, "m-1").Return(stored, nil).Once()
		generator.On("GenerateReport", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused")).Once()

		got, err := svc.Generate(context.Background(), user, req)
		assert.Error(t, err)
		assert.Nil(t, got)

		meetings.AssertExpectations(t)
		generator.AssertExpectations(t)
	})
}
