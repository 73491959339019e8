package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutrilog/backend/internal/models"
	"github.com/nutrilog/backend/internal/types"
)

// ErrFeedbackNotFound is returned for unknown feedback IDs.
var ErrFeedbackNotFound = errors.New("feedback not found")

type FeedbackService struct {
	db           *gorm.DB
	emailService IEmailService
}

func NewFeedbackService(db *gorm.DB, emailService IEmailService) IFeedbackService {
	return &FeedbackService{
		db:           db,
		emailService: emailService,
	}
}

func (s *FeedbackService) CreateFeedback(ctx context.Context, req *types.CreateFeedbackRequest, userID *uuid.UUID) (*models.Feedback, error) {
	feedback := &models.Feedback{
		UserID:      userID,
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		UserAgent:   req.UserAgent,
		URL:         req.URL,
		Status:      "open",
	}

	// Estimate-quality reports can point at the entry they concern.
	if req.EntryID != "" {
		entryID, err := uuid.Parse(req.EntryID)
		if err != nil {
			return nil, fmt.Errorf("invalid entry_id: %w", err)
		}
		feedback.EntryID = &entryID
	}

	if feedback.Priority == "" {
		feedback.Priority = "medium"
	}

	if err := s.db.WithContext(ctx).Create(feedback).Error; err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}

	// Load user information for email notification
	var user *models.User
	if userID != nil {
		if err := s.db.WithContext(ctx).First(&user, "id = ?", *userID).Error; err != nil {
			log.Printf("[Feedback] could not load user for notification: %v", err)
		}
	}

	// Send email notification asynchronously
	go func() {
		if err := s.emailService.SendFeedbackNotification(feedback, user); err != nil {
			log.Printf("[Feedback] error sending notification: %v", err)
		}
	}()

	return feedback, nil
}

func (s *FeedbackService) GetFeedback(ctx context.Context, id uuid.UUID) (*models.Feedback, error) {
	var feedback models.Feedback
	if err := s.db.WithContext(ctx).Preload("User").First(&feedback, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}
	return &feedback, nil
}

func (s *FeedbackService) ListFeedback(ctx context.Context, filters *models.FeedbackFilters) ([]*models.Feedback, error) {
	query := s.db.WithContext(ctx).Preload("User")

	if filters != nil {
		if filters.Type != "" {
			query = query.Where("type = ?", filters.Type)
		}
		if filters.Status != "" {
			query = query.Where("status = ?", filters.Status)
		}
		if filters.Priority != "" {
			query = query.Where("priority = ?", filters.Priority)
		}
		if filters.UserID != "" {
			if userUUID, err := uuid.Parse(filters.UserID); err == nil {
				query = query.Where("user_id = ?", userUUID)
			}
		}

		if filters.Limit > 0 {
			query = query.Limit(filters.Limit)
		} else {
			query = query.Limit(50) // Default limit
		}
		if filters.Offset > 0 {
			query = query.Offset(filters.Offset)
		}
	}

	query = query.Order("created_at DESC")

	var feedback []*models.Feedback
	if err := query.Find(&feedback).Error; err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}

	return feedback, nil
}

func (s *FeedbackService) UpdateFeedbackStatus(ctx context.Context, id uuid.UUID, status string, adminNotes string) error {
	updates := map[string]interface{}{
		"status": status,
	}
	if adminNotes != "" {
		updates["admin_notes"] = adminNotes
	}

	result := s.db.WithContext(ctx).Model(&models.Feedback{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update feedback status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrFeedbackNotFound
	}

	return nil
}
