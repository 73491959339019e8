package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nutrilog/backend/internal/models"
	"github.com/nutrilog/backend/internal/service"
	"github.com/nutrilog/backend/internal/types"
)

type FeedbackHandler struct {
	feedbackService service.IFeedbackService
}

func NewFeedbackHandler(feedbackService service.IFeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
	}
}

func (h *FeedbackHandler) RegisterRoutes(router *gin.RouterGroup) {
	feedback := router.Group("/feedback")
	{
		feedback.POST("", h.CreateFeedback)         // Anonymous allowed
		feedback.GET("", h.ListFeedback)            // Admin only
		feedback.GET("/:id", h.GetFeedback)         // Admin only
		feedback.PUT("/:id/status", h.UpdateStatus) // Admin only
	}
}

// CreateFeedback creates a new feedback submission
func (h *FeedbackHandler) CreateFeedback(c *gin.Context) {
	var req types.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Anonymous feedback is allowed; userID stays nil without auth.
	var userID *uuid.UUID
	if uid, ok := currentUserID(c); ok {
		userID = &uid
	}

	feedback, err := h.feedbackService.CreateFeedback(c.Request.Context(), &req, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create feedback"})
		return
	}

	c.JSON(http.StatusCreated, h.feedbackToResponse(feedback))
}

// ListFeedback lists all feedback (admin only)
func (h *FeedbackHandler) ListFeedback(c *gin.Context) {
	if !h.isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		return
	}

	filters := &models.FeedbackFilters{
		Type:     c.Query("type"),
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		UserID:   c.Query("user_id"),
	}
	if limitParam := c.Query("limit"); limitParam != "" {
		if limit, err := strconv.Atoi(limitParam); err == nil && limit > 0 {
			filters.Limit = limit
		}
	}
	if offsetParam := c.Query("offset"); offsetParam != "" {
		if offset, err := strconv.Atoi(offsetParam); err == nil && offset >= 0 {
			filters.Offset = offset
		}
	}

	feedbackList, err := h.feedbackService.ListFeedback(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list feedback"})
		return
	}

	responses := make([]types.FeedbackResponse, len(feedbackList))
	for i, feedback := range feedbackList {
		responses[i] = h.feedbackToResponse(feedback)
	}

	c.JSON(http.StatusOK, responses)
}

// GetFeedback gets a specific feedback item (admin only)
func (h *FeedbackHandler) GetFeedback(c *gin.Context) {
	if !h.isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		return
	}

	feedbackID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid feedback ID"})
		return
	}

	feedback, err := h.feedbackService.GetFeedback(c.Request.Context(), feedbackID)
	if err != nil {
		if errors.Is(err, service.ErrFeedbackNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "feedback not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get feedback"})
		return
	}

	c.JSON(http.StatusOK, h.feedbackToResponse(feedback))
}

// UpdateStatus updates the status of a feedback item (admin only)
func (h *FeedbackHandler) UpdateStatus(c *gin.Context) {
	if !h.isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		return
	}

	feedbackID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid feedback ID"})
		return
	}

	var req types.UpdateFeedbackStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = h.feedbackService.UpdateFeedbackStatus(c.Request.Context(), feedbackID, req.Status, req.AdminNotes)
	if err != nil {
		if errors.Is(err, service.ErrFeedbackNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "feedback not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update feedback status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "feedback status updated"})
}

// Helper function to check if user is admin
func (h *FeedbackHandler) isAdmin(c *gin.Context) bool {
	role, exists := c.Get("role")
	if !exists {
		return false
	}
	return role == "admin"
}

// Helper function to convert Feedback model to response
func (h *FeedbackHandler) feedbackToResponse(feedback *models.Feedback) types.FeedbackResponse {
	return types.FeedbackResponse{
		ID:          feedback.ID,
		Type:        feedback.Type,
		Title:       feedback.Title,
		Description: feedback.Description,
		Priority:    feedback.Priority,
		Status:      feedback.Status,
		UserAgent:   feedback.UserAgent,
		URL:         feedback.URL,
		AdminNotes:  feedback.AdminNotes,
		CreatedAt:   feedback.CreatedAt,
		UserID:      feedback.UserID,
	}
}
