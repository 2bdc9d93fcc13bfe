package models

import "time"

// TranscriptItem одна реплика стенограммы или сообщение чата.
type TranscriptItem struct {
	Name      string    `json:"name" validate:"required"`
	TimeStamp time.Time `json:"time_stamp" validate:"required"`
	Type      string    `json:"type" validate:"required,oneof=transcript chat"`
	Duration  float64   `json:"duration"`
	Content   string    `json:"content" validate:"required"`
}

// Screenshot скриншот, снятый во время встречи.
type Screenshot struct {
	Filename  string    `json:"filename" validate:"required"`
	Timestamp time.Time `json:"timestamp"`
	TakenBy   string    `json:"taken_by" validate:"required"`
}

// Meeting метаданные захваченной встречи. Записывается внешним клиентом
// захвата от имени аутентифицированного пользователя.
type Meeting struct {
	ID              string             `json:"id"`
	Convenor        string             `json:"convenor"`
	OwnerEmail      string             `json:"owner_email"`
	OwnerName       string             `json:"owner_name"`
	Title           string             `json:"title"`
	StartedAt       time.Time          `json:"started_at"`
	EndedAt         time.Time          `json:"ended_at"`
	Speakers        []string           `json:"speakers"`
	Attendees       []string           `json:"attendees"`
	Transcript      []TranscriptItem   `json:"transcript"`
	SpeakerDuration map[string]float64 `json:"speaker_duration"`
	Screenshots     []Screenshot       `json:"screenshots"`
}

// IngestMeetingRequest используется для приёма данных встречи от клиента захвата.
type IngestMeetingRequest struct {
	Convenor        string             `json:"convenor" validate:"required"`
	Title           string             `json:"meeting_title" validate:"required"`
	StartedAt       time.Time          `json:"meeting_start_timestamp" validate:"required"`
	EndedAt         time.Time          `json:"meeting_end_timestamp" validate:"required"`
	Speakers        []string           `json:"speakers"`
	Attendees       []string           `json:"attendees"`
	Transcript      []TranscriptItem   `json:"transcript_data"`
	SpeakerDuration map[string]float64 `json:"speaker_duration"`
	Screenshots     []Screenshot       `json:"screenshots"`
}

// ReportRequest используется для запроса генерации отчета по встрече.
type ReportRequest struct {
	MeetingID      string `json:"meeting_id" validate:"required,uuid"`
	ReportFormat   string `json:"report_format" validate:"required,oneof=pdf docx txt"`
	ReportType     string `json:"report_type" validate:"required"`
	ReportInterval int    `json:"report_interval,omitempty"`
}

// ReportJob задание на автоматическую отправку отчета, публикуемое в очередь
// при приёме встречи, если у владельца включены автоматические отчеты.
type ReportJob struct {
	MeetingID    string `json:"meeting_id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	ReportFormat string `json:"report_format"`
	ReportType   string `json:"report_type"`
}
