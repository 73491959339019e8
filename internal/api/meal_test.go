package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nutrilog/backend/internal/mocks"
	"github.com/nutrilog/backend/internal/models"
	"github.com/nutrilog/backend/internal/nutrition"
	"github.com/nutrilog/backend/internal/service"
	"github.com/nutrilog/backend/internal/types"
)

func TestParseMealEndpoint(t *testing.T) {
	userID := uuid.New()
	auth := newTestAuth(userID)

	profiles := new(mocks.MockProfileService)
	profile := &models.UserProfile{UserID: userID, Timezone: "UTC"}
	profiles.On("GetProfile", mock.Anything, userID).Return(profile, nil)
	profiles.On("Location", profile).Return(time.UTC)

	parse := &service.MealParse{
		Items: []nutrition.Item{{
			Name: "oatmeal",
			Nutrients: nutrition.Nutrients{
				Calories: nutrition.Estimate{Value: 300, Low: 250, High: 360},
			},
		}},
	}
	parser := new(mocks.MockMealParser)
	parser.On("ParseMeal", mock.Anything, "a bowl of oatmeal", mock.AnythingOfType("localdate.Date")).Return(parse, nil)
	parser.On("SaveDraft", mock.Anything, mock.AnythingOfType("*service.MealDraft")).Return(nil)

	handler := NewMealHandler(parser, nil, profiles, nil, auth, nil)
	router := newTestRouter(func(g *gin.RouterGroup) { handler.RegisterRoutes(g) })

	w := doRequest(t, router, "POST", "/api/v1/meals/parse", map[string]string{"text": "a bowl of oatmeal"})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.NotNil(t, body["draft"])
	parser.AssertExpectations(t)
}

func TestParseMealRequiresText(t *testing.T) {
	userID := uuid.New()
	handler := NewMealHandler(new(mocks.MockMealParser), nil, new(mocks.MockProfileService), nil, newTestAuth(userID), nil)
	router := newTestRouter(func(g *gin.RouterGroup) { handler.RegisterRoutes(g) })

	w := doRequest(t, router, "POST", "/api/v1/meals/parse", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConfirmMealEndpoint(t *testing.T) {
	userID := uuid.New()
	auth := newTestAuth(userID)

	draft := &service.MealDraft{
		ID:     "draft-1",
		UserID: userID.String(),
		Parse:  service.MealParse{Items: []nutrition.Item{{Name: "toast"}}},
	}
	parser := new(mocks.MockMealParser)
	parser.On("GetDraft", mock.Anything, "draft-1").Return(draft, nil)
	parser.On("DeleteDraft", mock.Anything, "draft-1").Return(nil)

	entry := &models.Entry{ID: uuid.New(), UserID: userID, LogDate: "2026-05-01"}
	entries := new(mocks.MockEntryService)
	entries.On("LogMeal", mock.Anything, userID, draft).Return(entry, nil)

	handler := NewMealHandler(parser, entries, new(mocks.MockProfileService), nil, auth, nil)
	router := newTestRouter(func(g *gin.RouterGroup) { handler.RegisterRoutes(g) })

	w := doRequest(t, router, "POST", "/api/v1/meals/confirm", map[string]string{"draft_id": "draft-1"})

	assert.Equal(t, http.StatusCreated, w.Code)
	entries.AssertExpectations(t)
	parser.AssertExpectations(t)
}

func TestConfirmMealRejectsForeignDraft(t *testing.T) {
	userID := uuid.New()
	auth := newTestAuth(userID)

	draft := &service.MealDraft{ID: "draft-2", UserID: uuid.New().String()}
	parser := new(mocks.MockMealParser)
	parser.On("GetDraft", mock.Anything, "draft-2").Return(draft, nil)

	handler := NewMealHandler(parser, new(mocks.MockEntryService), new(mocks.MockProfileService), nil, auth, nil)
	router := newTestRouter(func(g *gin.RouterGroup) { handler.RegisterRoutes(g) })

	w := doRequest(t, router, "POST", "/api/v1/meals/confirm", map[string]string{"draft_id": "draft-2"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConfirmMealEmptyDraft(t *testing.T) {
	userID := uuid.New()
	auth := newTestAuth(userID)

	draft := &service.MealDraft{ID: "draft-3", UserID: userID.String()}
	parser := new(mocks.MockMealParser)
	parser.On("GetDraft", mock.Anything, "draft-3").Return(draft, nil)

	entries := new(mocks.MockEntryService)
	entries.On("LogMeal", mock.Anything, userID, draft).Return(nil, service.ErrEmptyMeal)

	handler := NewMealHandler(parser, entries, new(mocks.MockProfileService), nil, auth, nil)
	router := newTestRouter(func(g *gin.RouterGroup) { handler.RegisterRoutes(g) })

	w := doRequest(t, router, "POST", "/api/v1/meals/confirm", map[string]string{"draft_id": "draft-3"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMealRoutesRequireAuth(t *testing.T) {
	handler := NewMealHandler(new(mocks.MockMealParser), nil, new(mocks.MockProfileService), nil, newTestAuth(uuid.New()), nil)
	router := newTestRouter(func(g *gin.RouterGroup) { handler.RegisterRoutes(g) })

	req := httptest.NewRequest("POST", "/api/v1/meals/parse", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMealRoutesRequireVerifiedEmail(t *testing.T) {
	auth := new(mocks.MockAuthService)
	auth.On("ValidateToken", testToken).Return(&types.TokenClaims{
		UserID:   uuid.New(),
		Username: "testuser",
	}, nil)

	handler := NewMealHandler(new(mocks.MockMealParser), nil, new(mocks.MockProfileService), nil, auth, nil)
	router := newTestRouter(func(g *gin.RouterGroup) { handler.RegisterRoutes(g) })

	w := doRequest(t, router, "POST", "/api/v1/meals/parse", map[string]string{"text": "two eggs"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUploadPhotoWithoutStorage(t *testing.T) {
	userID := uuid.New()
	handler := NewMealHandler(new(mocks.MockMealParser), nil, new(mocks.MockProfileService), nil, newTestAuth(userID), nil)
	router := newTestRouter(func(g *gin.RouterGroup) { handler.RegisterRoutes(g) })

	w := doRequest(t, router, "POST", "/api/v1/meals/photo", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
