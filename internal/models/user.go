package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutrilog/backend/internal/nutrition"
)

type User struct {
	ID              uuid.UUID      `gorm:"type:uuid;primarykey;default:gen_random_uuid()" json:"id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	Name            string         `gorm:"not null" json:"name"`
	Email           string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash    string         `gorm:"not null" json:"-"`
	IsEmailVerified bool           `gorm:"default:false" json:"is_email_verified"`
}

func (User) TableName() string {
	return "users"
}

// UserProfile carries the body stats and preferences the energy calculations
// need. All body-stat fields are nullable: when any is absent, TDEE and
// target outputs are skipped entirely rather than estimated with defaults.
type UserProfile struct {
	ID       uuid.UUID `gorm:"type:uuid;primarykey;default:gen_random_uuid()" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Username string    `gorm:"size:50;not null;uniqueIndex" json:"username"`

	WeightKG *float64 `gorm:"type:float" json:"weight_kg,omitempty"`
	HeightCM *float64 `gorm:"type:float" json:"height_cm,omitempty"`
	AgeYears *int     `json:"age_years,omitempty"`
	// Biological sex, "male" or "female"; used only as the two-branch
	// selector in the BMR formula.
	Sex *string `gorm:"size:10" json:"sex,omitempty"`

	// Signed daily calorie deficit; negative is a surplus, zero is
	// maintenance.
	CalorieDeficit int `gorm:"default:500" json:"calorie_deficit"`

	// IANA timezone identifier; empty means the configured default applies.
	Timezone string `gorm:"size:64" json:"timezone"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

// BodyProfile converts the stored profile into the pure calculation input.
func (p *UserProfile) BodyProfile() nutrition.BodyProfile {
	bp := nutrition.BodyProfile{
		WeightKG:       p.WeightKG,
		HeightCM:       p.HeightCM,
		AgeYears:       p.AgeYears,
		CalorieDeficit: p.CalorieDeficit,
	}
	if p.Sex != nil {
		sex := nutrition.Sex(*p.Sex)
		bp.Sex = &sex
	}
	return bp
}
