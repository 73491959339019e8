package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutrilog/backend/config"
	"github.com/nutrilog/backend/internal/models"
	"github.com/nutrilog/backend/internal/types"
)

var (
	// ErrProfileNotFound is returned when a user has no profile row.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrInvalidTimezone is returned when an update carries an unknown
	// IANA zone name.
	ErrInvalidTimezone = errors.New("invalid timezone")
	// ErrInvalidSex is returned when sex is neither "male" nor "female".
	ErrInvalidSex = errors.New("sex must be \"male\" or \"female\"")
	// ErrInvalidBodyStat is returned for non-positive weight, height or age.
	ErrInvalidBodyStat = errors.New("body stats must be positive")
)

// ProfileService implements IProfileService.
type ProfileService struct {
	db         *gorm.DB
	defaultLoc *time.Location
}

// NewProfileService creates a new ProfileService instance. The fallback
// location comes from configuration and is validated at startup.
func NewProfileService(db *gorm.DB, cfg *config.Config) (*ProfileService, error) {
	loc, err := cfg.DefaultLocation()
	if err != nil {
		return nil, err
	}
	return &ProfileService{db: db, defaultLoc: loc}, nil
}

// GetProfile retrieves a user's profile
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

// Location resolves the timezone all of the user's date calculations use.
// An unset or unloadable profile zone falls back to the configured default;
// the fallback is logged once per call, never surfaced as an error.
func (s *ProfileService) Location(profile *models.UserProfile) *time.Location {
	if profile == nil || profile.Timezone == "" {
		return s.defaultLoc
	}
	loc, err := time.LoadLocation(profile.Timezone)
	if err != nil {
		log.Printf("[Profile] unknown timezone %q for user %s, using default %s",
			profile.Timezone, profile.UserID, s.defaultLoc)
		return s.defaultLoc
	}
	return loc
}

// UpdateProfile applies a partial update and records each changed field in
// the profile history. Body-stat and timezone validation happens before
// anything is written.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.UserProfile, error) {
	if req.WeightKG != nil && *req.WeightKG <= 0 {
		return nil, ErrInvalidBodyStat
	}
	if req.HeightCM != nil && *req.HeightCM <= 0 {
		return nil, ErrInvalidBodyStat
	}
	if req.AgeYears != nil && *req.AgeYears <= 0 {
		return nil, ErrInvalidBodyStat
	}
	if req.Sex != nil && *req.Sex != "male" && *req.Sex != "female" {
		return nil, ErrInvalidSex
	}
	if req.Timezone != nil && *req.Timezone != "" {
		if _, err := time.LoadLocation(*req.Timezone); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, *req.Timezone)
		}
	}

	var profile *models.UserProfile

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.UserProfile
		if err := tx.Where("user_id = ?", userID).First(&p).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProfileNotFound
			}
			return fmt.Errorf("failed to get profile: %w", err)
		}

		var history []models.ProfileHistory
		record := func(field, oldValue, newValue string) {
			if oldValue == newValue {
				return
			}
			history = append(history, models.ProfileHistory{
				UserID:    userID.String(),
				Field:     field,
				OldValue:  oldValue,
				NewValue:  newValue,
				ChangedAt: time.Now(),
				ChangedBy: userID.String(),
			})
		}

		if req.Username != "" {
			record("username", p.Username, req.Username)
			p.Username = req.Username
		}
		if req.WeightKG != nil {
			record("weight_kg", formatFloat(p.WeightKG), strconv.FormatFloat(*req.WeightKG, 'f', -1, 64))
			p.WeightKG = req.WeightKG
		}
		if req.HeightCM != nil {
			record("height_cm", formatFloat(p.HeightCM), strconv.FormatFloat(*req.HeightCM, 'f', -1, 64))
			p.HeightCM = req.HeightCM
		}
		if req.AgeYears != nil {
			record("age_years", formatInt(p.AgeYears), strconv.Itoa(*req.AgeYears))
			p.AgeYears = req.AgeYears
		}
		if req.Sex != nil {
			old := ""
			if p.Sex != nil {
				old = *p.Sex
			}
			record("sex", old, *req.Sex)
			p.Sex = req.Sex
		}
		if req.CalorieDeficit != nil {
			record("calorie_deficit", strconv.Itoa(p.CalorieDeficit), strconv.Itoa(*req.CalorieDeficit))
			p.CalorieDeficit = *req.CalorieDeficit
		}
		if req.Timezone != nil {
			record("timezone", p.Timezone, *req.Timezone)
			p.Timezone = *req.Timezone
		}

		if err := tx.Save(&p).Error; err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}
		if len(history) > 0 {
			if err := tx.Create(&history).Error; err != nil {
				return fmt.Errorf("failed to record profile history: %w", err)
			}
		}

		profile = &p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return profile, nil
}

// GetProfileHistory returns the user's profile changes, newest first.
func (s *ProfileService) GetProfileHistory(ctx context.Context, userID uuid.UUID) ([]*types.ProfileHistory, error) {
	var rows []models.ProfileHistory
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID.String()).
		Order("changed_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get profile history: %w", err)
	}

	history := make([]*types.ProfileHistory, 0, len(rows))
	for _, row := range rows {
		history = append(history, &types.ProfileHistory{
			ID:        row.ID,
			UserID:    row.UserID,
			Field:     row.Field,
			OldValue:  row.OldValue,
			NewValue:  row.NewValue,
			ChangedAt: row.ChangedAt,
			ChangedBy: row.ChangedBy,
		})
	}
	return history, nil
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
