package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nutrilog/backend/config"
	"github.com/nutrilog/backend/internal/api"
	"github.com/nutrilog/backend/internal/service"
)

// Setup builds the gin engine with CORS and every API route attached.
func Setup(db *gorm.DB, authService service.IAuthService, parser service.IMealParser, cfg *config.Config) (*gin.Engine, error) {
	router := gin.Default()

	// Allow requests from both localhost and the Docker frontend container
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://frontend:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin", "User-Agent", "Cache-Control", "Keep-Alive", "X-Requested-With", "Pragma", "X-API-Version"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	if err := api.RegisterRoutes(router, db, authService, parser, cfg); err != nil {
		return nil, err
	}

	return router, nil
}
