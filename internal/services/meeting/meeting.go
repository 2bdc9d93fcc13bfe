// Package meeting содержит бизнес-логику приёма и чтения встреч. При приёме
// встречи пользователю с включёнными авто-отчётами публикуется задание
// в очередь на отправку отчета.
package meeting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/oceanmeet/meeting-hub/internal/lib/rabbitmq"
	"github.com/oceanmeet/meeting-hub/internal/models"
	"github.com/oceanmeet/meeting-hub/internal/storage/repository"
)

var (
	// ErrNotFound возвращается, когда встреча не найдена.
	ErrNotFound = errors.New("meeting not found")
	// ErrForbidden возвращается при попытке читать чужую встречу.
	ErrForbidden = errors.New("not allowed to read this meeting")
)

// MeetingRepository определяет методы для работы со встречами в хранилище.
type MeetingRepository interface {
	// CreateMeeting сохраняет встречу и возвращает её ID.
	CreateMeeting(ctx context.Context, m models.Meeting) (string, error)
	// GetMeeting возвращает встречу по ID.
	GetMeeting(ctx context.Context, id string) (*models.Meeting, error)
	// ListMeetingsByEmail возвращает встречи пользователя, свежие первыми.
	ListMeetingsByEmail(ctx context.Context, email string) ([]*models.Meeting, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// MeetingService реализует приём и чтение встреч.
type MeetingService struct {
	repo    MeetingRepository
	cache   Cache
	channel *amqp.Channel
	log     *slog.Logger
}

// NewMeetingService создает новый экземпляр MeetingService.
func NewMeetingService(repo MeetingRepository, cache Cache, channel *amqp.Channel, log *slog.Logger) *MeetingService {
	return &MeetingService{
		repo:    repo,
		cache:   cache,
		channel: channel,
		log:     log,
	}
}

func meetingCacheKey(id string) string {
	return fmt.Sprintf("meeting:%s", id)
}

// Ingest сохраняет встречу от имени пользователя. Если у пользователя включены
// авто-отчёты, в очередь публикуется задание на отправку отчета; сбой публикации
// не откатывает сохранение встречи.
func (s *MeetingService) Ingest(ctx context.Context, user *models.User, req models.IngestMeetingRequest) (string, error) {
	m := models.Meeting{
		Convenor:        req.Convenor,
		OwnerEmail:      user.Email,
		OwnerName:       user.Name,
		Title:           req.Title,
		StartedAt:       req.StartedAt,
		EndedAt:         req.EndedAt,
		Speakers:        req.Speakers,
		Attendees:       req.Attendees,
		Transcript:      req.Transcript,
		SpeakerDuration: req.SpeakerDuration,
		Screenshots:     req.Screenshots,
	}
	id, err := s.repo.CreateMeeting(ctx, m)
	if err != nil {
		return "", err
	}

	s.log.Info("created new meeting",
		slog.String("id", id),
		slog.String("owner", user.Email))

	if user.AutoReportEnabled && s.channel != nil {
		job := models.ReportJob{
			MeetingID:    id,
			Email:        user.Email,
			Name:         user.Name,
			ReportFormat: "pdf",
			ReportType:   "detailed",
		}
		if err := rabbitmq.PublishMessage(s.channel, "", rabbitmq.ReportJobsQueue, job); err != nil {
			s.log.Error("failed to publish report job",
				slog.String("meeting_id", id), slog.Any("err", err))
		} else {
			s.log.Info("published report job", slog.String("meeting_id", id))
		}
	}

	return id, nil
}

// List возвращает встречи пользователя, свежие первыми.
func (s *MeetingService) List(ctx context.Context, email string) ([]*models.Meeting, error) {
	return s.repo.ListMeetingsByEmail(ctx, email)
}

// Get возвращает встречу по ID, используя кеш или репозиторий. Читать встречу
// может её владелец, созыватель или администратор.
func (s *MeetingService) Get(ctx context.Context, user *models.User, id string) (*models.Meeting, error) {
	var result *models.Meeting
	cacheKey := meetingCacheKey(id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		return nil, err
	}
	if !found {
		result, err = s.repo.GetMeeting(ctx, id)
		if err != nil {
			if repository.IsNoRows(err) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
			s.log.Warn("failed to add to cache", slog.String("key", cacheKey), slog.Any("err", err))
		}
	}

	if result.OwnerEmail != user.Email && result.Convenor != user.Email && user.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}
	return result, nil
}
