package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nutrilog/backend/internal/localdate"
	"github.com/nutrilog/backend/internal/middleware"
	"github.com/nutrilog/backend/internal/service"
	"github.com/nutrilog/backend/internal/types"
)

// MealHandler handles the log-meal flow: parse free text into a draft,
// then confirm the draft into a stored entry.
type MealHandler struct {
	parser      service.IMealParser
	entries     service.IEntryService
	profiles    service.IProfileService
	photos      *service.PhotoService
	authService service.IAuthService
	parseLimit  *middleware.RateLimiter
}

// NewMealHandler creates a new MealHandler instance
func NewMealHandler(parser service.IMealParser, entries service.IEntryService, profiles service.IProfileService, photos *service.PhotoService, authService service.IAuthService, parseLimit *middleware.RateLimiter) *MealHandler {
	return &MealHandler{
		parser:      parser,
		entries:     entries,
		profiles:    profiles,
		photos:      photos,
		authService: authService,
		parseLimit:  parseLimit,
	}
}

func (h *MealHandler) RegisterRoutes(router *gin.RouterGroup) {
	meals := router.Group("/meals")
	meals.Use(middleware.AuthMiddleware(h.authService))
	meals.Use(middleware.RequireVerifiedEmail())
	{
		if h.parseLimit != nil {
			meals.POST("/parse", h.parseLimit.RateLimitMiddleware(), h.ParseMeal)
		} else {
			meals.POST("/parse", h.ParseMeal)
		}
		meals.GET("/drafts/:id", h.GetDraft)
		meals.POST("/confirm", h.ConfirmMeal)
		meals.DELETE("/drafts/:id", h.DiscardDraft)
		meals.POST("/photo", h.UploadPhoto)
	}
}

// ParseMeal runs the estimator over the submitted text and stores the
// result as a draft for the user to review.
func (h *MealHandler) ParseMeal(c *gin.Context) {
	var req types.LogMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	profile, err := h.profiles.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	submittedAt := time.Now()
	today := localdate.Today(h.profiles.Location(profile))

	parse, err := h.parser.ParseMeal(c.Request.Context(), req.Text, today)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to estimate meal"})
		return
	}

	draft := &service.MealDraft{
		UserID:      userID.String(),
		RawText:     req.Text,
		PhotoURL:    req.PhotoURL,
		SubmittedAt: submittedAt,
		Parse:       *parse,
	}
	if err := h.parser.SaveDraft(c.Request.Context(), draft); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save draft"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

// GetDraft returns a pending draft for review.
func (h *MealHandler) GetDraft(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	draft, err := h.parser.GetDraft(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "draft not found"})
		return
	}
	if draft.UserID != userID.String() {
		c.JSON(http.StatusNotFound, gin.H{"error": "draft not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

// ConfirmMeal persists a draft as an entry and deletes the draft.
func (h *MealHandler) ConfirmMeal(c *gin.Context) {
	var req types.ConfirmMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	draft, err := h.parser.GetDraft(c.Request.Context(), req.DraftID)
	if err != nil || draft.UserID != userID.String() {
		c.JSON(http.StatusNotFound, gin.H{"error": "draft not found"})
		return
	}

	entry, err := h.entries.LogMeal(c.Request.Context(), userID, draft)
	if err != nil {
		if errors.Is(err, service.ErrEmptyMeal) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "meal has no food items"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log meal"})
		return
	}

	if err := h.parser.DeleteDraft(c.Request.Context(), req.DraftID); err != nil {
		// The draft expires on its own; confirmation already succeeded.
		_ = err
	}

	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

// DiscardDraft deletes a pending draft.
func (h *MealHandler) DiscardDraft(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	draft, err := h.parser.GetDraft(c.Request.Context(), c.Param("id"))
	if err != nil || draft.UserID != userID.String() {
		c.JSON(http.StatusNotFound, gin.H{"error": "draft not found"})
		return
	}

	if err := h.parser.DeleteDraft(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to discard draft"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "draft discarded"})
}

// UploadPhoto stores a meal photo and returns its URL, for attaching to a
// subsequent parse request.
func (h *MealHandler) UploadPhoto(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if h.photos == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "photo storage not configured"})
		return
	}

	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read photo"})
		return
	}

	url, err := h.photos.UploadMealPhoto(c.Request.Context(), userID, data, header.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, service.ErrPhotoTooLarge) || errors.Is(err, service.ErrUnsupportedPhotoType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload photo"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"photo_url": url})
}

// currentUserID pulls the authenticated user from the gin context.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := userIDVal.(uuid.UUID)
	return userID, ok
}
