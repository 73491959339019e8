package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nutrilog/backend/internal/localdate"
	"github.com/nutrilog/backend/internal/middleware"
	"github.com/nutrilog/backend/internal/nutrition"
	"github.com/nutrilog/backend/internal/service"
	"github.com/nutrilog/backend/internal/types"
)

// EntryHandler exposes stored entries: listing by day, deletion, manual
// overrides and similarity search.
type EntryHandler struct {
	entries       service.IEntryService
	profiles      service.IProfileService
	authService   service.IAuthService
	overrideLimit *middleware.RateLimiter
}

// NewEntryHandler creates a new EntryHandler instance
func NewEntryHandler(entries service.IEntryService, profiles service.IProfileService, authService service.IAuthService, overrideLimit *middleware.RateLimiter) *EntryHandler {
	return &EntryHandler{
		entries:       entries,
		profiles:      profiles,
		authService:   authService,
		overrideLimit: overrideLimit,
	}
}

func (h *EntryHandler) RegisterRoutes(router *gin.RouterGroup) {
	entries := router.Group("/entries")
	entries.Use(middleware.AuthMiddleware(h.authService))
	{
		entries.GET("", h.ListDay)
		entries.GET("/search", h.SearchSimilar)
		entries.DELETE("/:id", h.DeleteEntry)
		if h.overrideLimit != nil {
			entries.PATCH("/:id/items/:item_id", h.overrideLimit.PerEntryRateLimitMiddleware(), h.OverrideItem)
		} else {
			entries.PATCH("/:id/items/:item_id", h.OverrideItem)
		}
	}
}

// ListDay returns the entries for one calendar day. An omitted date means
// the user's local today.
func (h *EntryHandler) ListDay(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	date, ok := h.resolveDateParam(c, userID, c.Query("date"))
	if !ok {
		return
	}

	entries, err := h.entries.ListDay(c.Request.Context(), userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list entries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":    date,
		"entries": entries,
	})
}

// DeleteEntry removes one entry and its items.
func (h *EntryHandler) DeleteEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry ID"})
		return
	}

	if err := h.entries.DeleteEntry(c.Request.Context(), userID, entryID); err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete entry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "entry deleted"})
}

// OverrideItem applies a manual nutrient patch to one food item.
func (h *EntryHandler) OverrideItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry ID"})
		return
	}
	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item ID"})
		return
	}

	var req types.OverrideItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.entries.OverrideItem(c.Request.Context(), userID, entryID, itemID, req.Patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEntryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
		case errors.Is(err, service.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "food item not found"})
		case errors.Is(err, nutrition.ErrInvalidOverride):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to apply override"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// SearchSimilar returns past entries ordered by similarity to the query.
func (h *EntryHandler) SearchSimilar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	limit := 10
	if limitParam := c.Query("limit"); limitParam != "" {
		if parsed, err := strconv.Atoi(limitParam); err == nil && parsed > 0 && parsed <= 50 {
			limit = parsed
		}
	}

	entries, err := h.entries.SearchSimilar(c.Request.Context(), userID, query, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search entries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// resolveDateParam parses an optional YYYY-MM-DD query parameter, defaulting
// to the user's local today. A malformed explicit parameter is a client
// error here, unlike the silent fallback in the logging flow.
func (h *EntryHandler) resolveDateParam(c *gin.Context, userID uuid.UUID, raw string) (localdate.Date, bool) {
	if raw == "" {
		profile, err := h.profiles.GetProfile(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
			return localdate.Date{}, false
		}
		return localdate.Today(h.profiles.Location(profile)), true
	}

	date, err := localdate.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return localdate.Date{}, false
	}
	return date, true
}
