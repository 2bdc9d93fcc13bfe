// Package sender содержит бизнес-логику отправки отчетов по почте: обработку
// заданий из очереди, генерацию отчета и письмо с вложением.
package sender

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/oceanmeet/meeting-hub/internal/lib/sl"
	"github.com/oceanmeet/meeting-hub/internal/lib/smtp"
	"github.com/oceanmeet/meeting-hub/internal/models"
	"github.com/oceanmeet/meeting-hub/internal/reportclient"
)

// MeetingRepository отдает встречу по ID для генерации отчета.
type MeetingRepository interface {
	GetMeeting(ctx context.Context, id string) (*models.Meeting, error)
}

// ReportGenerator описывает клиент внешнего сервиса отчетов.
type ReportGenerator interface {
	GenerateReport(ctx context.Context, req reportclient.GenerateReportRequest) (*reportclient.Report, error)
}

// SenderService обрабатывает задания на отправку отчетов.
type SenderService struct {
	repo      MeetingRepository
	generator ReportGenerator
	transport smtp.TransportInterface
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(repo MeetingRepository, generator ReportGenerator, transport smtp.TransportInterface, log *slog.Logger) *SenderService {
	return &SenderService{
		repo:      repo,
		generator: generator,
		transport: transport,
		log:       log,
	}
}

// SendReportJob обрабатывает одно задание из очереди: загружает встречу,
// генерирует отчет и отправляет его владельцу письмом с вложением.
func (s *SenderService) SendReportJob(ctx context.Context, body []byte) error {
	var job models.ReportJob
	if err := json.Unmarshal(body, &job); err != nil {
		s.log.Error("Failed to unmarshal message body", "error", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	m, err := s.repo.GetMeeting(ctx, job.MeetingID)
	if err != nil {
		s.log.Error("Failed to load meeting", "meeting_id", job.MeetingID, "error", sl.Err(err))
		return err
	}

	report, err := s.generator.GenerateReport(ctx, reportclient.GenerateReportRequest{
		MeetingData:  m,
		ReportFormat: job.ReportFormat,
		ReportType:   job.ReportType,
	})
	if err != nil {
		s.log.Error("Failed to generate report", "meeting_id", job.MeetingID, "error", sl.Err(err))
		return err
	}

	to := []string{job.Email}
	subject := fmt.Sprintf("Отчет по встрече: %s", m.Title)
	bodyText := fmt.Sprintf("Здравствуйте, %s!\n\nОтчет по встрече %q во вложении.",
		job.Name, m.Title)
	filename := fmt.Sprintf("report-%s.%s", job.MeetingID, job.ReportFormat)

	return s.sendEmail(to, subject, bodyText, filename, report)
}

func (s *SenderService) sendEmail(to []string, subject, bodyText, filename string, report *reportclient.Report) error {
	boundary := "report-boundary"
	encoded := base64.StdEncoding.EncodeToString(report.Content)

	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: multipart/mixed; boundary=\"" + boundary + "\"",
		"",
		"--" + boundary,
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
		"",
		"--" + boundary,
		"Content-Type: " + report.ContentType,
		"Content-Transfer-Encoding: base64",
		"Content-Disposition: attachment; filename=\"" + filename + "\"",
		"",
		encoded,
		"",
		"--" + boundary + "--",
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("Failed to connect to SMTP server", "error", sl.Err(err))
		return err
	}
	defer client.Close()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("Failed to set MAIL FROM", "from", s.transport.GetSMTPUser(), "error", sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("Failed to set RCPT TO", "recipient", addr, "error", sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("Failed to get Data writer", "error", sl.Err(err))
		return err
	}

	_, err = wc.Write([]byte(msg))
	if err != nil {
		s.log.Error("Failed to write email body", "error", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("Failed to close Data writer", "error", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("Failed to quit SMTP client", "error", sl.Err(err))
		return err
	}

	s.log.Info("report email sent successfully", "to", to)
	return nil
}
