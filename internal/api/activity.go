package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutrilog/backend/internal/localdate"
	"github.com/nutrilog/backend/internal/middleware"
	"github.com/nutrilog/backend/internal/service"
	"github.com/nutrilog/backend/internal/types"
)

// ActivityHandler records and reads per-day activity levels.
type ActivityHandler struct {
	activity    service.IActivityService
	authService service.IAuthService
}

// NewActivityHandler creates a new ActivityHandler instance
func NewActivityHandler(activity service.IActivityService, authService service.IAuthService) *ActivityHandler {
	return &ActivityHandler{
		activity:    activity,
		authService: authService,
	}
}

func (h *ActivityHandler) RegisterRoutes(router *gin.RouterGroup) {
	activity := router.Group("/activity")
	activity.Use(middleware.AuthMiddleware(h.authService))
	{
		activity.PUT("", h.SetLevel)
		activity.GET("/:date", h.GetLevel)
	}
}

// SetLevel records the activity level for one day, overwriting any
// previous value.
func (h *ActivityHandler) SetLevel(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req types.SetActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := localdate.Parse(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	record, err := h.activity.SetLevel(c.Request.Context(), userID, date, req.Level)
	if err != nil {
		if errors.Is(err, service.ErrInvalidActivityLevel) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save activity level"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"activity": record})
}

// GetLevel returns the recorded or default level for one day.
func (h *ActivityHandler) GetLevel(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	date, err := localdate.Parse(c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	level, err := h.activity.GetLevel(c.Request.Context(), userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load activity level"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  date,
		"level": level,
	})
}
