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
)

func newFeedbackRouter(feedback *mocks.MockFeedbackService, role string) *gin.Engine {
	handler := NewFeedbackHandler(feedback)
	return newTestRouter(func(g *gin.RouterGroup) {
		if role != "" {
			g.Use(func(c *gin.Context) { c.Set("role", role) })
		}
		handler.RegisterRoutes(g)
	})
}

func TestCreateFeedbackAnonymous(t *testing.T) {
	feedback := new(mocks.MockFeedbackService)
	feedback.On("CreateFeedback", mock.Anything, mock.AnythingOfType("*types.CreateFeedbackRequest"), (*uuid.UUID)(nil)).
		Return(&models.Feedback{ID: uuid.New(), Type: "estimate", Title: "Way off", Status: "open"}, nil)

	router := newFeedbackRouter(feedback, "")
	w := doRequest(t, router, "POST", "/api/v1/feedback", map[string]string{
		"type":        "estimate",
		"title":       "Way off",
		"description": "The calorie estimate for my salad was double what it should be.",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	feedback.AssertExpectations(t)
}

func TestCreateFeedbackValidation(t *testing.T) {
	router := newFeedbackRouter(new(mocks.MockFeedbackService), "")

	// Unknown type fails binding.
	w := doRequest(t, router, "POST", "/api/v1/feedback", map[string]string{
		"type":        "rant",
		"title":       "x",
		"description": "y",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListFeedbackRequiresAdmin(t *testing.T) {
	router := newFeedbackRouter(new(mocks.MockFeedbackService), "")

	w := doRequest(t, router, "GET", "/api/v1/feedback", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListFeedbackAsAdmin(t *testing.T) {
	feedback := new(mocks.MockFeedbackService)
	feedback.On("ListFeedback", mock.Anything, mock.AnythingOfType("*models.FeedbackFilters")).
		Return([]*models.Feedback{{ID: uuid.New(), Type: "bug", Title: "Crash", Status: "open"}}, nil)

	router := newFeedbackRouter(feedback, "admin")
	w := doRequest(t, router, "GET", "/api/v1/feedback?status=open", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	feedback.AssertExpectations(t)
}

func TestUpdateFeedbackStatusAsAdmin(t *testing.T) {
	id := uuid.New()
	feedback := new(mocks.MockFeedbackService)
	feedback.On("UpdateFeedbackStatus", mock.Anything, id, "resolved", "fixed in estimator prompt").Return(nil)

	router := newFeedbackRouter(feedback, "admin")
	w := doRequest(t, router, "PUT", "/api/v1/feedback/"+id.String()+"/status", map[string]string{
		"status":      "resolved",
		"admin_notes": "fixed in estimator prompt",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	feedback.AssertExpectations(t)
}
