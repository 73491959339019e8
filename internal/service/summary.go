package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutrilog/backend/internal/localdate"
	"github.com/nutrilog/backend/internal/models"
	"github.com/nutrilog/backend/internal/nutrition"
)

// ErrInvalidPeriod is returned for a non-positive period length.
var ErrInvalidPeriod = errors.New("period length must be at least one day")

// DaySummaryResult is everything the day view needs: aggregated nutrient
// totals, the energy outputs when the profile supports them, and the
// threshold comparisons.
type DaySummaryResult struct {
	Date   localdate.Date      `json:"date"`
	Totals nutrition.Nutrients `json:"totals"`

	// Energy is nil when the profile is missing a body stat; the totals
	// above are still valid on their own.
	Energy *nutrition.Energy `json:"energy,omitempty"`

	// ActivityLevel is the recorded level for the day, or the default.
	ActivityLevel int `json:"activity_level"`

	Thresholds *nutrition.Thresholds `json:"thresholds,omitempty"`

	EntryCount int `json:"entry_count"`
}

// PeriodSummaryResult wraps per-day summaries with period means.
type PeriodSummaryResult struct {
	StartDate localdate.Date         `json:"start_date"`
	EndDate   localdate.Date         `json:"end_date"`
	Days      []nutrition.DaySummary `json:"days"`
	Stats     nutrition.PeriodStats  `json:"stats"`
}

// SummaryService aggregates entries into daily and period views.
type SummaryService struct {
	db       *gorm.DB
	profiles IProfileService
	activity IActivityService
}

// NewSummaryService creates a new SummaryService instance
func NewSummaryService(db *gorm.DB, profiles IProfileService, activity IActivityService) *SummaryService {
	return &SummaryService{db: db, profiles: profiles, activity: activity}
}

// DaySummary aggregates one calendar day. Each nutrient interval sums
// independently; a missing profile stat suppresses the energy block but
// never the totals.
func (s *SummaryService) DaySummary(ctx context.Context, userID uuid.UUID, date localdate.Date) (*DaySummaryResult, error) {
	var entries []models.Entry
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ? AND log_date = ?", userID, date.String()).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	var items []nutrition.Item
	for _, entry := range entries {
		for i := range entry.Items {
			items = append(items, entry.Items[i].ToNutritionItem())
		}
	}

	result := &DaySummaryResult{
		Date:       date,
		Totals:     nutrition.Aggregate(items),
		EntryCount: len(entries),
	}

	level, err := s.activity.GetLevel(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity level: %w", err)
	}
	result.ActivityLevel = level

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	if energy := nutrition.ComputeEnergy(profile.BodyProfile(), level); energy != nil {
		result.Energy = energy
		thresholds := nutrition.PolicyThresholds(energy.TargetCalories, *profile.BodyProfile().Sex)
		result.Thresholds = &thresholds
	}

	return result, nil
}

// PeriodSummary builds per-day summaries for the `days` calendar days ending
// at endDate and computes the period means over them. Days with no entries
// still appear, with zero totals.
func (s *SummaryService) PeriodSummary(ctx context.Context, userID uuid.UUID, endDate localdate.Date, days int) (*PeriodSummaryResult, error) {
	if days < 1 {
		return nil, ErrInvalidPeriod
	}

	startDate := endDate.AddDays(-(days - 1))

	var entries []models.Entry
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ? AND log_date >= ? AND log_date <= ?",
			userID, startDate.String(), endDate.String()).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	byDate := make(map[string][]nutrition.Item)
	for _, entry := range entries {
		for i := range entry.Items {
			byDate[entry.LogDate] = append(byDate[entry.LogDate], entry.Items[i].ToNutritionItem())
		}
	}

	var levels []models.DailyActivity
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?",
			userID, startDate.String(), endDate.String()).
		Find(&levels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load activity levels: %w", err)
	}
	levelByDate := make(map[string]int, len(levels))
	for _, l := range levels {
		levelByDate[l.Date] = l.Level
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	body := profile.BodyProfile()

	result := &PeriodSummaryResult{
		StartDate: startDate,
		EndDate:   endDate,
		Days:      make([]nutrition.DaySummary, 0, days),
	}

	for d := startDate; !d.After(endDate); d = d.AddDays(1) {
		day := nutrition.DaySummary{
			Date:   d,
			Totals: nutrition.Aggregate(byDate[d.String()]),
		}

		level, ok := levelByDate[d.String()]
		if !ok {
			level = nutrition.DefaultActivityLevel
		}

		if energy := nutrition.ComputeEnergy(body, level); energy != nil {
			tdee := energy.TDEE
			day.TDEE = &tdee
			target := energy.TargetCalories
			day.TargetCalories = &target
			protein := energy.TargetProteinG
			day.TargetProteinG = &protein
		}

		result.Days = append(result.Days, day)
	}

	result.Stats = nutrition.ComputePeriodStats(result.Days)

	return result, nil
}
