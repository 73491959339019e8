package models

import (
	"time"

	"github.com/google/uuid"
)

// DailyActivity selects the energy-expenditure multiplier for one day. At
// most one row per user and date; days without a row default to level 3
// ("moderate") at read time.
type DailyActivity struct {
	ID     uuid.UUID `gorm:"type:uuid;primarykey;default:gen_random_uuid()" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_activity_user_date" json:"user_id"`
	// Date is the calendar day (YYYY-MM-DD) the level applies to.
	Date string `gorm:"size:10;not null;uniqueIndex:idx_activity_user_date" json:"date"`
	// Level is an activity level id, 1 (sedentary) through 5 (very active).
	Level int `gorm:"not null" json:"level"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (DailyActivity) TableName() string {
	return "daily_activities"
}
