package api

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nutrilog/backend/config"
	"github.com/nutrilog/backend/internal/database"
	"github.com/nutrilog/backend/internal/middleware"
	"github.com/nutrilog/backend/internal/service"
)

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "NutriLog API is running",
		"version": "v1.0.0",
	})
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, db *gorm.DB, authService service.IAuthService, parser service.IMealParser, cfg *config.Config) error {
	// Health check endpoint (no auth required)
	router.GET("/health", HealthCheck)
	router.GET("/api/health", HealthCheck)

	// Initialize Redis for rate limiting
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis for rate limiting: %v", err)
		// Continue without rate limiting if Redis is not available
		redisClient = nil
	}

	var parseLimiter *middleware.RateLimiter
	var overrideLimiter *middleware.RateLimiter
	if redisClient != nil {
		parseLimiter = middleware.NewMealParseRateLimiter(redisClient)
		overrideLimiter = middleware.NewOverrideRateLimiter(redisClient)
	}

	// Wire services
	emailService := service.NewEmailService()
	profileService, err := service.NewProfileService(db, cfg)
	if err != nil {
		return err
	}
	entryService := service.NewEntryService(db, profileService)
	activityService := service.NewActivityService(db)
	summaryService := service.NewSummaryService(db, profileService, activityService)
	feedbackService := service.NewFeedbackService(db, emailService)

	// Photo storage is optional; meals log fine without pictures.
	var photoService *service.PhotoService
	if s3Config, err := config.NewS3Config(context.Background()); err != nil {
		log.Printf("Warning: S3 not configured, photo uploads disabled: %v", err)
	} else {
		photoService = service.NewPhotoService(s3Config)
	}

	// Create handlers
	authHandler := NewAuthHandler(authService, emailService)
	mealHandler := NewMealHandler(parser, entryService, profileService, photoService, authService, parseLimiter)
	entryHandler := NewEntryHandler(entryService, profileService, authService, overrideLimiter)
	summaryHandler := NewSummaryHandler(summaryService, profileService, authService)
	activityHandler := NewActivityHandler(activityService, authService)
	profileHandler := NewProfileHandler(profileService, authService)
	feedbackHandler := NewFeedbackHandler(feedbackService)

	// Register routes
	v1 := router.Group("/api/v1")
	authHandler.RegisterRoutes(v1)
	mealHandler.RegisterRoutes(v1)
	entryHandler.RegisterRoutes(v1)
	summaryHandler.RegisterRoutes(v1)
	activityHandler.RegisterRoutes(v1)
	profileHandler.RegisterRoutes(v1)
	feedbackHandler.RegisterRoutes(v1)

	return nil
}
