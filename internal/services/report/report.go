// Package report содержит бизнес-логику генерации отчетов по встречам через
// внешний сервис отчетов.
package report

import (
	"context"
	"errors"
	"log/slog"

	"github.com/oceanmeet/meeting-hub/internal/models"
	"github.com/oceanmeet/meeting-hub/internal/reportclient"
)

// ErrNotFound возвращается, когда встреча для отчета не найдена.
var ErrNotFound = errors.New("meeting not found")

// MeetingProvider отдает встречу с проверкой прав доступа пользователя.
type MeetingProvider interface {
	Get(ctx context.Context, user *models.User, id string) (*models.Meeting, error)
}

// ReportGenerator описывает клиент внешнего сервиса отчетов.
type ReportGenerator interface {
	GenerateReport(ctx context.Context, req reportclient.GenerateReportRequest) (*reportclient.Report, error)
}

// ReportService собирает данные встречи и запрашивает отчет у внешнего сервиса.
type ReportService struct {
	meetings  MeetingProvider
	generator ReportGenerator
	log       *slog.Logger
}

// NewReportService создает новый экземпляр ReportService.
func NewReportService(meetings MeetingProvider, generator ReportGenerator, log *slog.Logger) *ReportService {
	return &ReportService{
		meetings:  meetings,
		generator: generator,
		log:       log,
	}
}

// Generate запрашивает отчет по встрече. Доступ к встрече проверяется
// через MeetingProvider; ошибки внешнего сервиса не повторяются.
func (s *ReportService) Generate(ctx context.Context, user *models.User, req models.ReportRequest) (*reportclient.Report, error) {
	m, err := s.meetings.Get(ctx, user, req.MeetingID)
	if err != nil {
		return nil, err
	}

	report, err := s.generator.GenerateReport(ctx, reportclient.GenerateReportRequest{
		MeetingData:    m,
		ReportFormat:   req.ReportFormat,
		ReportType:     req.ReportType,
		ReportInterval: req.ReportInterval,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("generated report",
		slog.String("meeting_id", req.MeetingID),
		slog.String("format", req.ReportFormat))
	return report, nil
}
