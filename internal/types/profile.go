package types

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile represents a user's profile as returned to clients.
type UserProfile struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	Username       string    `json:"username"`
	WeightKG       *float64  `json:"weight_kg,omitempty"`
	HeightCM       *float64  `json:"height_cm,omitempty"`
	AgeYears       *int      `json:"age_years,omitempty"`
	Sex            *string   `json:"sex,omitempty"`
	CalorieDeficit int       `json:"calorie_deficit"`
	Timezone       string    `json:"timezone"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UpdateProfileRequest represents a request to update a user's profile.
// Pointer fields distinguish "not sent" from explicit values.
type UpdateProfileRequest struct {
	Username       string   `json:"username,omitempty"`
	WeightKG       *float64 `json:"weight_kg,omitempty"`
	HeightCM       *float64 `json:"height_cm,omitempty"`
	AgeYears       *int     `json:"age_years,omitempty"`
	Sex            *string  `json:"sex,omitempty"`
	CalorieDeficit *int     `json:"calorie_deficit,omitempty"`
	Timezone       *string  `json:"timezone,omitempty"`
}

// ProfileHistory represents a user's profile history
type ProfileHistory struct {
	ID        uint      `json:"id"`
	UserID    string    `json:"user_id"`
	Field     string    `json:"field"`
	OldValue  string    `json:"old_value"`
	NewValue  string    `json:"new_value"`
	ChangedAt time.Time `json:"changed_at"`
	ChangedBy string    `json:"changed_by"`
}
