package models

import (
	"time"

	"github.com/google/uuid"
)

// EmailVerificationToken is a single-use token mailed at registration.
// Rows are deleted on use; expired rows are ignored by lookup.
type EmailVerificationToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primarykey;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Token     string    `gorm:"size:64;not null;uniqueIndex" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (EmailVerificationToken) TableName() string {
	return "email_verification_tokens"
}
