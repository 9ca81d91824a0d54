package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "bptrack/internal/errors"
	"bptrack/internal/model"
)

// ReadingStats aggregates a user's readings.
type ReadingStats struct {
	TotalReadings   int64      `json:"total_readings"`
	AvgSystolic     float64    `json:"avg_systolic"`
	AvgDiastolic    float64    `json:"avg_diastolic"`
	LastReadingTime *time.Time `json:"last_reading_time"`
}

// ReadingRepository defines persistence for blood pressure readings. Every
// single-reading lookup filters by id AND owner in one query, so a reading
// owned by someone else is indistinguishable from one that does not exist.
type ReadingRepository interface {
	Create(ctx context.Context, reading *model.Reading) error
	FindOwned(ctx context.Context, id, userID uint) (*model.Reading, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Reading, error)
	Update(ctx context.Context, reading *model.Reading) error
	DeleteOwned(ctx context.Context, id, userID uint) error
	Stats(ctx context.Context, userID uint) (*ReadingStats, error)
	Recent(ctx context.Context, userID uint, limit int) ([]model.Reading, error)
}

type readingRepository struct {
	db *gorm.DB
}

// NewReadingRepository creates a new reading repository.
func NewReadingRepository(db *gorm.DB) ReadingRepository {
	return &readingRepository{db: db}
}

func (r *readingRepository) Create(ctx context.Context, reading *model.Reading) error {
	if err := r.db.WithContext(ctx).Create(reading).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

// FindOwned fetches a reading by id scoped to its owner.
func (r *readingRepository) FindOwned(ctx context.Context, id, userID uint) (*model.Reading, error) {
	var reading model.Reading
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&reading).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrReadingNotFound
		}
		return nil, storeErr(err)
	}
	return &reading, nil
}

func (r *readingRepository) ListByUser(ctx context.Context, userID uint) ([]model.Reading, error) {
	var readings []model.Reading
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("reading_time DESC").
		Find(&readings).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return readings, nil
}

// Update writes the mutable fields of a reading. The owner filter is
// repeated in the write statement even though callers load through
// FindOwned first.
func (r *readingRepository) Update(ctx context.Context, reading *model.Reading) error {
	res := r.db.WithContext(ctx).Model(&model.Reading{}).
		Where("id = ? AND user_id = ?", reading.ID, reading.UserID).
		Updates(map[string]interface{}{
			"systolic":     reading.Systolic,
			"diastolic":    reading.Diastolic,
			"reading_time": reading.ReadingTime,
			"note":         reading.Note,
		})
	if res.Error != nil {
		return storeErr(res.Error)
	}
	return nil
}

func (r *readingRepository) DeleteOwned(ctx context.Context, id, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Reading{})
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrReadingNotFound
	}
	return nil
}

func (r *readingRepository) Stats(ctx context.Context, userID uint) (*ReadingStats, error) {
	var stats ReadingStats
	err := r.db.WithContext(ctx).Model(&model.Reading{}).
		Select("COUNT(*) AS total_readings, IFNULL(AVG(systolic), 0) AS avg_systolic, IFNULL(AVG(diastolic), 0) AS avg_diastolic, MAX(reading_time) AS last_reading_time").
		Where("user_id = ?", userID).
		Scan(&stats).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return &stats, nil
}

func (r *readingRepository) Recent(ctx context.Context, userID uint, limit int) ([]model.Reading, error) {
	var readings []model.Reading
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("reading_time DESC").
		Limit(limit).
		Find(&readings).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return readings, nil
}
