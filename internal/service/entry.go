package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nutrilog/backend/internal/localdate"
	"github.com/nutrilog/backend/internal/models"
	"github.com/nutrilog/backend/internal/nutrition"
)

var (
	// ErrEntryNotFound is returned when an entry does not exist or belongs
	// to another user.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrItemNotFound is returned when a food item does not exist under the
	// given entry.
	ErrItemNotFound = errors.New("food item not found")
	// ErrEmptyMeal is returned when a draft has no food items to persist.
	ErrEmptyMeal = errors.New("meal has no food items")
)

// EntryService persists confirmed meal drafts as entries and manages their
// food items.
type EntryService struct {
	db       *gorm.DB
	profiles IProfileService
}

// NewEntryService creates a new EntryService instance
func NewEntryService(db *gorm.DB, profiles IProfileService) *EntryService {
	return &EntryService{db: db, profiles: profiles}
}

// LogMeal persists a confirmed draft as an entry. The log date comes from
// the parser's explicit date when it parses cleanly; otherwise from the
// submission instant converted to the user's timezone. A bad explicit date
// falls back silently, it never rejects the meal.
func (s *EntryService) LogMeal(ctx context.Context, userID uuid.UUID, draft *MealDraft) (*models.Entry, error) {
	if len(draft.Parse.Items) == 0 {
		return nil, ErrEmptyMeal
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	loc := s.profiles.Location(profile)

	submittedAt := draft.SubmittedAt
	if submittedAt.IsZero() {
		submittedAt = time.Now()
	}

	logDate, explicit := localdate.Resolve(draft.Parse.ExplicitDate, submittedAt, loc)
	if draft.Parse.ExplicitDate != "" && !explicit {
		log.Printf("[Entry] ignoring unparseable explicit date %q for user %s", draft.Parse.ExplicitDate, userID)
	}

	entry := &models.Entry{
		UserID:        userID,
		RawText:       draft.RawText,
		PhotoURL:      draft.PhotoURL,
		SubmittedAt:   submittedAt,
		LogDate:       logDate.String(),
		DateExplicit:  explicit,
		ParseWarnings: draft.Parse.Warnings,
		Embedding:     generateEmbedding(draft.RawText),
	}
	if entry.ParseWarnings == nil {
		entry.ParseWarnings = models.JSONBStringArray{}
	}

	for _, item := range draft.Parse.Items {
		row := models.FoodItem{Name: item.Name}
		row.ApplyNutritionItem(item)
		row.Assumptions = item.Assumptions
		if row.Assumptions == nil {
			row.Assumptions = models.JSONBStringArray{}
		}
		if row.OverriddenFields == nil {
			row.OverriddenFields = models.JSONBStringArray{}
		}
		entry.Items = append(entry.Items, row)
	}

	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}

	return entry, nil
}

// ListDay returns the user's entries for one calendar day, food items
// included, oldest first.
func (s *EntryService) ListDay(ctx context.Context, userID uuid.UUID, date localdate.Date) ([]models.Entry, error) {
	var entries []models.Entry
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ? AND log_date = ?", userID, date.String()).
		Order("submitted_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

// DeleteEntry removes an entry and, via the FK cascade, its food items.
func (s *EntryService) DeleteEntry(ctx context.Context, userID, entryID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		Delete(&models.Entry{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// OverrideItem applies a manual nutrient patch to one food item inside a
// row-locked transaction. Validation is all-or-nothing: one bad field and
// the stored item is untouched.
func (s *EntryService) OverrideItem(ctx context.Context, userID, entryID, itemID uuid.UUID, patch nutrition.OverridePatch) (*models.FoodItem, error) {
	var updated *models.FoodItem

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entry models.Entry
		if err := tx.Where("id = ? AND user_id = ?", entryID, userID).First(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEntryNotFound
			}
			return fmt.Errorf("failed to load entry: %w", err)
		}

		var row models.FoodItem
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND entry_id = ?", itemID, entryID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return fmt.Errorf("failed to load food item: %w", err)
		}

		item, err := nutrition.ApplyOverride(row.ToNutritionItem(), patch)
		if err != nil {
			return err
		}

		row.ApplyNutritionItem(item)
		if err := tx.Save(&row).Error; err != nil {
			return fmt.Errorf("failed to save override: %w", err)
		}

		updated = &row
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// SearchSimilar orders the user's past entries by embedding distance to the
// query text.
func (s *EntryService) SearchSimilar(ctx context.Context, userID uuid.UUID, query string, limit int) ([]models.Entry, error) {
	if limit <= 0 {
		limit = 10
	}

	queryVec := generateEmbedding(query)

	var entries []models.Entry
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Clauses(clause.OrderBy{
			Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{queryVec}},
		}).
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search entries: %w", err)
	}
	return entries, nil
}
