package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nutrilog/backend/config"
	"github.com/nutrilog/backend/internal/middleware"
	"github.com/nutrilog/backend/internal/router"
	"github.com/nutrilog/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
}

// New creates a new server instance with every route registered.
func New(cfg *config.Config, db *gorm.DB, parser service.IMealParser) (*Server, error) {
	emailService := service.NewEmailService()
	authService := service.NewAuthService(db, cfg.JWTSecret, emailService)

	engine, err := router.Setup(db, authService, parser, cfg)
	if err != nil {
		return nil, err
	}

	return &Server{
		router: engine,
		db:     db,
	}, nil
}

// Start starts the server and blocks until an interrupt signal arrives.
func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: middleware.ErrorHandler(s.router),
	}

	// Start server in a goroutine
	go func() {
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.http.Shutdown(ctx)
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}
