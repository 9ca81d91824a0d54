package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "bptrack/internal/errors"
	"bptrack/internal/model"
	"bptrack/internal/repository"
)

// MockReadingRepository is a mock implementation of ReadingRepository.
type MockReadingRepository struct {
	mock.Mock
}

func (m *MockReadingRepository) Create(ctx context.Context, reading *model.Reading) error {
	args := m.Called(ctx, reading)
	return args.Error(0)
}

func (m *MockReadingRepository) FindOwned(ctx context.Context, id, userID uint) (*model.Reading, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reading), args.Error(1)
}

func (m *MockReadingRepository) ListByUser(ctx context.Context, userID uint) ([]model.Reading, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Reading), args.Error(1)
}

func (m *MockReadingRepository) Update(ctx context.Context, reading *model.Reading) error {
	args := m.Called(ctx, reading)
	return args.Error(0)
}

func (m *MockReadingRepository) DeleteOwned(ctx context.Context, id, userID uint) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockReadingRepository) Stats(ctx context.Context, userID uint) (*repository.ReadingStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ReadingStats), args.Error(1)
}

func (m *MockReadingRepository) Recent(ctx context.Context, userID uint, limit int) ([]model.Reading, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Reading), args.Error(1)
}

func sampleInput() ReadingInput {
	return ReadingInput{
		Systolic:    120,
		Diastolic:   80,
		ReadingTime: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestReadingService_Add(t *testing.T) {
	mockRepo := new(MockReadingRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Reading")).
		Run(func(args mock.Arguments) {
			reading := args.Get(1).(*model.Reading)
			reading.ID = 10
			assert.Equal(t, uint(1), reading.UserID)
			assert.Equal(t, 120, reading.Systolic)
			assert.Equal(t, 80, reading.Diastolic)
		}).
		Return(nil)

	svc := NewReadingService(mockRepo, nil)
	reading, err := svc.Add(context.Background(), 1, sampleInput())

	assert.NoError(t, err)
	assert.Equal(t, uint(10), reading.ID)
	assert.Equal(t, uint(1), reading.UserID)
	mockRepo.AssertExpectations(t)
}

func TestReadingService_Get_OwnershipScoped(t *testing.T) {
	mockRepo := new(MockReadingRepository)
	owned := &model.Reading{ID: 10, UserID: 1, Systolic: 120, Diastolic: 80}

	// owner sees the reading
	mockRepo.On("FindOwned", mock.Anything, uint(10), uint(1)).Return(owned, nil)
	// any other identity gets the same not-found as a missing row
	mockRepo.On("FindOwned", mock.Anything, uint(10), uint(2)).Return(nil, apperrors.ErrReadingNotFound)
	mockRepo.On("FindOwned", mock.Anything, uint(999), uint(1)).Return(nil, apperrors.ErrReadingNotFound)

	svc := NewReadingService(mockRepo, nil)

	reading, err := svc.Get(context.Background(), 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, 120, reading.Systolic)

	_, errOtherOwner := svc.Get(context.Background(), 2, 10)
	_, errMissing := svc.Get(context.Background(), 1, 999)
	assert.ErrorIs(t, errOtherOwner, apperrors.ErrReadingNotFound)
	assert.ErrorIs(t, errMissing, apperrors.ErrReadingNotFound)
	assert.Equal(t, errOtherOwner, errMissing)
}

func TestReadingService_Update(t *testing.T) {
	tests := []struct {
		name          string
		userID        uint
		setupMock     func(*MockReadingRepository)
		expectedError error
	}{
		{
			name:   "owner updates",
			userID: 1,
			setupMock: func(m *MockReadingRepository) {
				m.On("FindOwned", mock.Anything, uint(10), uint(1)).
					Return(&model.Reading{ID: 10, UserID: 1, Systolic: 130, Diastolic: 90}, nil)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.Reading")).
					Run(func(args mock.Arguments) {
						reading := args.Get(1).(*model.Reading)
						assert.Equal(t, 120, reading.Systolic)
						assert.Equal(t, 80, reading.Diastolic)
					}).
					Return(nil)
			},
			expectedError: nil,
		},
		{
			name:   "non-owner blocked before any write",
			userID: 2,
			setupMock: func(m *MockReadingRepository) {
				m.On("FindOwned", mock.Anything, uint(10), uint(2)).
					Return(nil, apperrors.ErrReadingNotFound)
			},
			expectedError: apperrors.ErrReadingNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockReadingRepository)
			tt.setupMock(mockRepo)

			svc := NewReadingService(mockRepo, nil)
			reading, err := svc.Update(context.Background(), tt.userID, 10, sampleInput())

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, reading)
				mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 120, reading.Systolic)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestReadingService_Delete(t *testing.T) {
	mockRepo := new(MockReadingRepository)
	mockRepo.On("DeleteOwned", mock.Anything, uint(10), uint(1)).Return(nil)
	mockRepo.On("DeleteOwned", mock.Anything, uint(10), uint(2)).Return(apperrors.ErrReadingNotFound)

	svc := NewReadingService(mockRepo, nil)

	assert.NoError(t, svc.Delete(context.Background(), 1, 10))
	assert.ErrorIs(t, svc.Delete(context.Background(), 2, 10), apperrors.ErrReadingNotFound)
	mockRepo.AssertExpectations(t)
}

func TestReadingService_Statistics(t *testing.T) {
	last := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	mockRepo := new(MockReadingRepository)
	mockRepo.On("Stats", mock.Anything, uint(1)).Return(&repository.ReadingStats{
		TotalReadings:   3,
		AvgSystolic:     121.5,
		AvgDiastolic:    79.2,
		LastReadingTime: &last,
	}, nil)
	mockRepo.On("Recent", mock.Anything, uint(1), 5).Return([]model.Reading{
		{ID: 3, UserID: 1, Systolic: 119, Diastolic: 77, ReadingTime: last},
	}, nil)

	svc := NewReadingService(mockRepo, nil)
	stats, err := svc.Statistics(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalReadings)
	assert.Equal(t, 121.5, stats.AvgSystolic)
	assert.Len(t, stats.Recent, 1)
	mockRepo.AssertExpectations(t)
}
