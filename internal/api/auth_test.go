package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nutrilog/backend/internal/mocks"
	"github.com/nutrilog/backend/internal/models"
	"github.com/nutrilog/backend/internal/service"
)

func newAuthRouter(auth *mocks.MockAuthService) *gin.Engine {
	handler := NewAuthHandler(auth, nil)
	return newTestRouter(func(g *gin.RouterGroup) { handler.RegisterRoutes(g) })
}

func TestRegisterEndpoint(t *testing.T) {
	auth := new(mocks.MockAuthService)
	auth.On("Register", mock.Anything, "Test User", "test@example.com", "password123", "testuser").
		Return(&models.User{ID: uuid.New(), Email: "test@example.com"}, nil)

	router := newAuthRouter(auth)
	w := doRequest(t, router, "POST", "/api/v1/auth/register", map[string]string{
		"name":     "Test User",
		"email":    "test@example.com",
		"username": "testuser",
		"password": "password123",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	auth.AssertExpectations(t)
}

func TestRegisterValidation(t *testing.T) {
	router := newAuthRouter(new(mocks.MockAuthService))

	cases := []map[string]string{
		{"name": "X", "email": "not-an-email", "username": "testuser", "password": "password123"},
		{"name": "X", "email": "a@b.com", "username": "ab", "password": "password123"}, // username too short
		{"name": "X", "email": "a@b.com", "username": "testuser", "password": "short"},
		{"email": "a@b.com", "username": "testuser", "password": "password123"}, // missing name
	}
	for i, body := range cases {
		w := doRequest(t, router, "POST", "/api/v1/auth/register", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "case %d", i)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	auth := new(mocks.MockAuthService)
	auth.On("Register", mock.Anything, "Test User", "dup@example.com", "password123", "testuser").
		Return(nil, service.ErrUserExists)

	router := newAuthRouter(auth)
	w := doRequest(t, router, "POST", "/api/v1/auth/register", map[string]string{
		"name":     "Test User",
		"email":    "dup@example.com",
		"username": "testuser",
		"password": "password123",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginEndpoint(t *testing.T) {
	user := &models.User{ID: uuid.New(), Email: "test@example.com"}
	auth := new(mocks.MockAuthService)
	auth.On("Login", mock.Anything, "test@example.com", "password123").Return("signed-token", user, nil)

	router := newAuthRouter(auth)
	w := doRequest(t, router, "POST", "/api/v1/auth/login", map[string]string{
		"email":    "test@example.com",
		"password": "password123",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "signed-token", body["token"])
}

func TestLoginInvalidCredentials(t *testing.T) {
	auth := new(mocks.MockAuthService)
	auth.On("Login", mock.Anything, "test@example.com", "wrong").Return("", nil, service.ErrInvalidCredentials)

	router := newAuthRouter(auth)
	w := doRequest(t, router, "POST", "/api/v1/auth/login", map[string]string{
		"email":    "test@example.com",
		"password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVerifyEmailEndpoint(t *testing.T) {
	auth := new(mocks.MockAuthService)
	auth.On("ValidateVerificationToken", mock.Anything, "good-token").
		Return(&models.User{ID: uuid.New(), IsEmailVerified: true}, nil)
	auth.On("ValidateVerificationToken", mock.Anything, "bad-token").
		Return(nil, service.ErrInvalidVerificationToken)

	router := newAuthRouter(auth)

	w := doRequest(t, router, "GET", "/api/v1/auth/verify-email?token=good-token", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, "GET", "/api/v1/auth/verify-email?token=bad-token", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, "GET", "/api/v1/auth/verify-email", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResendVerificationDoesNotLeakEmails(t *testing.T) {
	auth := new(mocks.MockAuthService)
	auth.On("GetUserByEmail", mock.Anything, "ghost@example.com").
		Return(nil, assert.AnError)

	router := newAuthRouter(auth)
	w := doRequest(t, router, "POST", "/api/v1/auth/resend-verification", map[string]string{
		"email": "ghost@example.com",
	})

	// Unknown address still answers 200 with the generic message.
	assert.Equal(t, http.StatusOK, w.Code)
}
