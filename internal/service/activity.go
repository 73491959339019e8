package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nutrilog/backend/internal/localdate"
	"github.com/nutrilog/backend/internal/models"
	"github.com/nutrilog/backend/internal/nutrition"
)

// ErrInvalidActivityLevel is returned for levels outside 1..5.
var ErrInvalidActivityLevel = errors.New("activity level must be between 1 and 5")

// ActivityService stores one activity level per user per calendar day.
type ActivityService struct {
	db *gorm.DB
}

// NewActivityService creates a new ActivityService instance
func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

// SetLevel upserts the activity level for one day.
func (s *ActivityService) SetLevel(ctx context.Context, userID uuid.UUID, date localdate.Date, level int) (*models.DailyActivity, error) {
	if !nutrition.ValidActivityLevel(level) {
		return nil, ErrInvalidActivityLevel
	}

	activity := models.DailyActivity{
		UserID: userID,
		Date:   date.String(),
		Level:  level,
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"level", "updated_at"}),
		}).
		Create(&activity).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save activity level: %w", err)
	}

	return &activity, nil
}

// GetLevel returns the recorded level for the day, or the default when the
// user never set one.
func (s *ActivityService) GetLevel(ctx context.Context, userID uuid.UUID, date localdate.Date) (int, error) {
	var activity models.DailyActivity
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date.String()).
		First(&activity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nutrition.DefaultActivityLevel, nil
		}
		return 0, fmt.Errorf("failed to load activity level: %w", err)
	}
	return activity.Level, nil
}
