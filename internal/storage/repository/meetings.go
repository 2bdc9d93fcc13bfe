package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/oceanmeet/meeting-hub/internal/models"
)

// CreateMeeting сохраняет метаданные встречи и возвращает присвоенный ID.
// Списки и стенограмма хранятся как JSONB.
func (s *Storage) CreateMeeting(ctx context.Context, m models.Meeting) (string, error) {
	const op = "storage.CreateMeeting"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	speakers, err := json.Marshal(m.Speakers)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	attendees, err := json.Marshal(m.Attendees)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	transcript, err := json.Marshal(m.Transcript)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	speakerDuration, err := json.Marshal(m.SpeakerDuration)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	screenshots, err := json.Marshal(m.Screenshots)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO meetings (convenor, owner_email, owner_name, title,
			      started_at, ended_at, speakers, attendees, transcript,
			      speaker_duration, screenshots)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			  RETURNING id`
	var newID string
	if err := s.DB.QueryRowContext(ctx, query,
		m.Convenor, m.OwnerEmail, m.OwnerName, m.Title, m.StartedAt, m.EndedAt,
		speakers, attendees, transcript, speakerDuration, screenshots).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetMeeting возвращает встречу по её ID.
func (s *Storage) GetMeeting(ctx context.Context, id string) (*models.Meeting, error) {
	const op = "storage.GetMeeting"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, convenor, owner_email, owner_name, title, started_at, ended_at,
			      speakers, attendees, transcript, speaker_duration, screenshots
			  FROM meetings
			  WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)
	m, err := scanMeeting(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

// ListMeetingsByEmail возвращает встречи, в которых пользователь является
// владельцем захвата или созывающим, новые первыми.
func (s *Storage) ListMeetingsByEmail(ctx context.Context, email string) ([]*models.Meeting, error) {
	const op = "storage.ListMeetingsByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, convenor, owner_email, owner_name, title, started_at, ended_at,
			      speakers, attendees, transcript, speaker_duration, screenshots
			  FROM meetings
			  WHERE owner_email = $1 OR convenor = $1
			  ORDER BY started_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Meeting
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMeeting(row rowScanner) (*models.Meeting, error) {
	var m models.Meeting
	var speakers, attendees, transcript, speakerDuration, screenshots []byte
	if err := row.Scan(&m.ID, &m.Convenor, &m.OwnerEmail, &m.OwnerName, &m.Title,
		&m.StartedAt, &m.EndedAt, &speakers, &attendees, &transcript,
		&speakerDuration, &screenshots); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(speakers, &m.Speakers); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(attendees, &m.Attendees); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(transcript, &m.Transcript); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(speakerDuration, &m.SpeakerDuration); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(screenshots, &m.Screenshots); err != nil {
		return nil, err
	}
	return &m, nil
}
