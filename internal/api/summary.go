package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nutrilog/backend/internal/localdate"
	"github.com/nutrilog/backend/internal/middleware"
	"github.com/nutrilog/backend/internal/service"
)

// SummaryHandler serves the daily and period aggregate views.
type SummaryHandler struct {
	summaries   service.ISummaryService
	profiles    service.IProfileService
	authService service.IAuthService
}

// NewSummaryHandler creates a new SummaryHandler instance
func NewSummaryHandler(summaries service.ISummaryService, profiles service.IProfileService, authService service.IAuthService) *SummaryHandler {
	return &SummaryHandler{
		summaries:   summaries,
		profiles:    profiles,
		authService: authService,
	}
}

func (h *SummaryHandler) RegisterRoutes(router *gin.RouterGroup) {
	summary := router.Group("/summary")
	summary.Use(middleware.AuthMiddleware(h.authService))
	{
		summary.GET("/day", h.Day)
		summary.GET("/period", h.Period)
	}
}

// Day returns the aggregated totals, energy outputs and thresholds for one
// calendar day (defaults to the user's local today).
func (h *SummaryHandler) Day(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	date, ok := h.resolveDate(c, c.Query("date"))
	if !ok {
		return
	}

	result, err := h.summaries.DaySummary(c.Request.Context(), userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build day summary"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Period returns per-day summaries and means for a window of days ending at
// the given date (defaults: today, 7 days).
func (h *SummaryHandler) Period(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	endDate, ok := h.resolveDate(c, c.Query("end"))
	if !ok {
		return
	}

	days := 7
	if daysParam := c.Query("days"); daysParam != "" {
		parsed, err := strconv.Atoi(daysParam)
		if err != nil || parsed < 1 || parsed > 366 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be between 1 and 366"})
			return
		}
		days = parsed
	}

	result, err := h.summaries.PeriodSummary(c.Request.Context(), userID, endDate, days)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPeriod) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build period summary"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *SummaryHandler) resolveDate(c *gin.Context, raw string) (localdate.Date, bool) {
	if raw == "" {
		userID, _ := currentUserID(c)
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
