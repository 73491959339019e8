package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/nutrilog/backend/internal/nutrition"
)

// LogMealRequest submits a free-text meal description (optionally with a
// photo) for estimation. The result is a draft, not a persisted entry.
type LogMealRequest struct {
	Text     string `json:"text" binding:"required"`
	PhotoURL string `json:"photo_url"`
}

// ConfirmMealRequest persists a previously created draft.
type ConfirmMealRequest struct {
	DraftID string `json:"draft_id" binding:"required"`
}

// OverrideItemRequest is the manual-correction patch for one food item. The
// patch semantics (floors, ratio rescaling, whole-patch rejection) live in
// the nutrition package.
type OverrideItemRequest struct {
	Patch nutrition.OverridePatch `json:"patch" binding:"required"`
}

// SetActivityRequest records the activity level for one calendar day.
type SetActivityRequest struct {
	Date  string `json:"date" binding:"required"`
	Level int    `json:"level" binding:"required,min=1,max=5"`
}

// Feedback API types
type CreateFeedbackRequest struct {
	Type        string `json:"type" binding:"required,oneof=bug estimate general"`
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"required,max=2000"`
	EntryID     string `json:"entry_id"`
	Priority    string `json:"priority" binding:"omitempty,oneof=low medium high critical"`
	UserAgent   string `json:"user_agent"`
	URL         string `json:"url"`
}

type FeedbackResponse struct {
	ID          uuid.UUID  `json:"id"`
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	UserAgent   string     `json:"user_agent,omitempty"`
	URL         string     `json:"url,omitempty"`
	AdminNotes  string     `json:"admin_notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UserID      *uuid.UUID `json:"user_id,omitempty"`
}

type UpdateFeedbackStatusRequest struct {
	Status     string `json:"status" binding:"required,oneof=open in_progress resolved closed"`
	AdminNotes string `json:"admin_notes"`
}
