package reportclient

import "github.com/oceanmeet/meeting-hub/internal/models"

// GenerateReportRequest тело запроса к сервису генерации отчетов.
type GenerateReportRequest struct {
	MeetingData    *models.Meeting `json:"meeting_data"`
	ReportFormat   string          `json:"report_format"`
	ReportType     string          `json:"report_type"`
	ReportInterval int             `json:"report_interval,omitempty"`
}

// Report сгенерированный отчет: содержимое и тип для передачи клиенту как есть.
type Report struct {
	Content     []byte
	ContentType string
}
