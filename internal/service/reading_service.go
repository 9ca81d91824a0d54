package service

import (
	"context"
	"fmt"
	"time"

	"bptrack/internal/cache"
	"bptrack/internal/model"
	"bptrack/internal/repository"
)

const (
	statsCacheTTL = 5 * time.Minute
	recentLimit   = 5
)

// ReadingInput carries the caller-supplied fields of a reading.
type ReadingInput struct {
	Systolic    int
	Diastolic   int
	ReadingTime time.Time
	Note        *string
}

// Statistics summarizes a user's readings.
type Statistics struct {
	repository.ReadingStats
	Recent []model.Reading `json:"recent_readings"`
}

// ReadingService exposes reading operations scoped to the acting user.
// Every operation takes the authenticated user id; a reading belonging to
// anyone else behaves exactly like a missing one.
type ReadingService interface {
	Add(ctx context.Context, userID uint, input ReadingInput) (*model.Reading, error)
	List(ctx context.Context, userID uint) ([]model.Reading, error)
	Get(ctx context.Context, userID, id uint) (*model.Reading, error)
	Update(ctx context.Context, userID, id uint, input ReadingInput) (*model.Reading, error)
	Delete(ctx context.Context, userID, id uint) error
	Statistics(ctx context.Context, userID uint) (*Statistics, error)
}

type readingService struct {
	readings repository.ReadingRepository
	cache    *cache.Client
}

// NewReadingService builds a ReadingService with repository and cache.
func NewReadingService(readings repository.ReadingRepository, cache *cache.Client) ReadingService {
	return &readingService{readings: readings, cache: cache}
}

func (s *readingService) statsKey(userID uint) string {
	return fmt.Sprintf("bp:stats:%d", userID)
}

func (s *readingService) Add(ctx context.Context, userID uint, input ReadingInput) (*model.Reading, error) {
	reading := &model.Reading{
		UserID:      userID,
		Systolic:    input.Systolic,
		Diastolic:   input.Diastolic,
		ReadingTime: input.ReadingTime,
		Note:        input.Note,
	}
	if err := s.readings.Create(ctx, reading); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, s.statsKey(userID))
	return reading, nil
}

func (s *readingService) List(ctx context.Context, userID uint) ([]model.Reading, error) {
	return s.readings.ListByUser(ctx, userID)
}

func (s *readingService) Get(ctx context.Context, userID, id uint) (*model.Reading, error) {
	return s.readings.FindOwned(ctx, id, userID)
}

func (s *readingService) Update(ctx context.Context, userID, id uint, input ReadingInput) (*model.Reading, error) {
	reading, err := s.readings.FindOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	reading.Systolic = input.Systolic
	reading.Diastolic = input.Diastolic
	reading.ReadingTime = input.ReadingTime
	reading.Note = input.Note

	if err := s.readings.Update(ctx, reading); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, s.statsKey(userID))
	return reading, nil
}

func (s *readingService) Delete(ctx context.Context, userID, id uint) error {
	if err := s.readings.DeleteOwned(ctx, id, userID); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, s.statsKey(userID))
	return nil
}

func (s *readingService) Statistics(ctx context.Context, userID uint) (*Statistics, error) {
	var cached Statistics
	if s.cache.GetJSON(ctx, s.statsKey(userID), &cached) {
		return &cached, nil
	}

	stats, err := s.readings.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}
	recent, err := s.readings.Recent(ctx, userID, recentLimit)
	if err != nil {
		return nil, err
	}

	result := &Statistics{ReadingStats: *stats, Recent: recent}
	s.cache.SetJSON(ctx, s.statsKey(userID), result, statsCacheTTL)
	return result, nil
}
