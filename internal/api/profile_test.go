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
	"github.com/nutrilog/backend/internal/types"
)

func newProfileRouter(profiles *mocks.MockProfileService, userID uuid.UUID) *gin.Engine {
	handler := NewProfileHandler(profiles, newTestAuth(userID))
	return newTestRouter(func(g *gin.RouterGroup) { handler.RegisterRoutes(g) })
}

func TestGetProfileEndpoint(t *testing.T) {
	userID := uuid.New()
	weight := 70.0

	profiles := new(mocks.MockProfileService)
	profiles.On("GetProfile", mock.Anything, userID).Return(&models.UserProfile{
		UserID:   userID,
		Username: "testuser",
		WeightKG: &weight,
		Timezone: "America/New_York",
	}, nil)

	router := newProfileRouter(profiles, userID)
	w := doRequest(t, router, "GET", "/api/v1/profile", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "testuser", body["username"])
	assert.Equal(t, "America/New_York", body["timezone"])
}

func TestGetProfileNotFound(t *testing.T) {
	userID := uuid.New()

	profiles := new(mocks.MockProfileService)
	profiles.On("GetProfile", mock.Anything, userID).Return(nil, service.ErrProfileNotFound)

	router := newProfileRouter(profiles, userID)
	w := doRequest(t, router, "GET", "/api/v1/profile", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateProfileEndpoint(t *testing.T) {
	userID := uuid.New()
	weight := 72.5

	profiles := new(mocks.MockProfileService)
	profiles.On("UpdateProfile", mock.Anything, userID, mock.AnythingOfType("*types.UpdateProfileRequest")).
		Return(&models.UserProfile{UserID: userID, Username: "testuser", WeightKG: &weight}, nil)

	router := newProfileRouter(profiles, userID)
	w := doRequest(t, router, "PUT", "/api/v1/profile", map[string]interface{}{"weight_kg": 72.5})

	assert.Equal(t, http.StatusOK, w.Code)
	profiles.AssertExpectations(t)
}

func TestUpdateProfileRejectsBadStats(t *testing.T) {
	userID := uuid.New()

	profiles := new(mocks.MockProfileService)
	profiles.On("UpdateProfile", mock.Anything, userID, mock.AnythingOfType("*types.UpdateProfileRequest")).
		Return(nil, service.ErrInvalidBodyStat)

	router := newProfileRouter(profiles, userID)
	w := doRequest(t, router, "PUT", "/api/v1/profile", map[string]interface{}{"weight_kg": -10})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProfileHistoryEndpoint(t *testing.T) {
	userID := uuid.New()

	profiles := new(mocks.MockProfileService)
	profiles.On("GetProfileHistory", mock.Anything, userID).Return([]*types.ProfileHistory{
		{ID: 1, UserID: userID.String(), Field: "weight_kg", OldValue: "70", NewValue: "72.5"},
	}, nil)

	router := newProfileRouter(profiles, userID)
	w := doRequest(t, router, "GET", "/api/v1/profile/history", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.NotNil(t, body["history"])
}
