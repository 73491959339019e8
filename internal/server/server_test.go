package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nutrilog/backend/config"
)

func TestNew(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NotNil(t, db)

	cfg := &config.Config{
		ServerHost:      "localhost",
		ServerPort:      "8080",
		JWTSecret:       "test-secret",
		DefaultTimezone: "UTC",
	}

	server, err := New(cfg, db, nil)
	require.NoError(t, err)
	require.NotNil(t, server)

	// Health check endpoint
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	server.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
