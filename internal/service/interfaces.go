package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nutrilog/backend/internal/localdate"
	"github.com/nutrilog/backend/internal/models"
	"github.com/nutrilog/backend/internal/nutrition"
	"github.com/nutrilog/backend/internal/types"
)

// IMealParser turns a free-text meal description into estimated food items.
type IMealParser interface {
	ParseMeal(ctx context.Context, text string, today localdate.Date) (*MealParse, error)
	SaveDraft(ctx context.Context, draft *MealDraft) error
	GetDraft(ctx context.Context, id string) (*MealDraft, error)
	DeleteDraft(ctx context.Context, id string) error
}

// IEntryService manages entries and their food items.
type IEntryService interface {
	LogMeal(ctx context.Context, userID uuid.UUID, draft *MealDraft) (*models.Entry, error)
	ListDay(ctx context.Context, userID uuid.UUID, date localdate.Date) ([]models.Entry, error)
	DeleteEntry(ctx context.Context, userID, entryID uuid.UUID) error
	OverrideItem(ctx context.Context, userID, entryID, itemID uuid.UUID, patch nutrition.OverridePatch) (*models.FoodItem, error)
	SearchSimilar(ctx context.Context, userID uuid.UUID, query string, limit int) ([]models.Entry, error)
}

// ISummaryService produces daily and period aggregates.
type ISummaryService interface {
	DaySummary(ctx context.Context, userID uuid.UUID, date localdate.Date) (*DaySummaryResult, error)
	PeriodSummary(ctx context.Context, userID uuid.UUID, endDate localdate.Date, days int) (*PeriodSummaryResult, error)
}

// IActivityService stores per-day activity levels.
type IActivityService interface {
	SetLevel(ctx context.Context, userID uuid.UUID, date localdate.Date, level int) (*models.DailyActivity, error)
	GetLevel(ctx context.Context, userID uuid.UUID, date localdate.Date) (int, error)
}

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, name, email, password, username string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GenerateToken(claims *types.TokenClaims) (string, error)
	GenerateVerificationToken(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateVerificationToken(ctx context.Context, token string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.UserProfile, error)
	GetProfileHistory(ctx context.Context, userID uuid.UUID) ([]*types.ProfileHistory, error)
	Location(profile *models.UserProfile) *time.Location
}

// IFeedbackService defines the interface for feedback operations
type IFeedbackService interface {
	CreateFeedback(ctx context.Context, req *types.CreateFeedbackRequest, userID *uuid.UUID) (*models.Feedback, error)
	GetFeedback(ctx context.Context, id uuid.UUID) (*models.Feedback, error)
	ListFeedback(ctx context.Context, filters *models.FeedbackFilters) ([]*models.Feedback, error)
	UpdateFeedbackStatus(ctx context.Context, id uuid.UUID, status string, adminNotes string) error
}

// IEmailService defines the interface for email operations
type IEmailService interface {
	SendFeedbackNotification(feedback *models.Feedback, user *models.User) error
	SendEmail(to, subject, body string) error
	SendVerificationEmail(user *models.User, token string) error
	SendWelcomeEmail(user *models.User) error
}
