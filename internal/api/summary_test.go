package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nutrilog/backend/internal/localdate"
	"github.com/nutrilog/backend/internal/mocks"
	"github.com/nutrilog/backend/internal/nutrition"
	"github.com/nutrilog/backend/internal/service"
)

func newSummaryRouter(summaries *mocks.MockSummaryService, profiles *mocks.MockProfileService, userID uuid.UUID) *gin.Engine {
	handler := NewSummaryHandler(summaries, profiles, newTestAuth(userID))
	return newTestRouter(func(g *gin.RouterGroup) { handler.RegisterRoutes(g) })
}

func TestDaySummaryEndpoint(t *testing.T) {
	userID := uuid.New()
	date := localdate.Date{Year: 2026, Month: 5, Day: 1}

	result := &service.DaySummaryResult{
		Date: date,
		Totals: nutrition.Nutrients{
			Calories: nutrition.Estimate{Value: 800, Low: 650, High: 980},
		},
		ActivityLevel: 3,
		EntryCount:    2,
	}
	summaries := new(mocks.MockSummaryService)
	summaries.On("DaySummary", mock.Anything, userID, date).Return(result, nil)

	router := newSummaryRouter(summaries, new(mocks.MockProfileService), userID)
	w := doRequest(t, router, "GET", "/api/v1/summary/day?date=2026-05-01", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "2026-05-01", body["date"])
	assert.EqualValues(t, 2, body["entry_count"])
	// No energy block for this result.
	_, hasEnergy := body["energy"]
	assert.False(t, hasEnergy)
	summaries.AssertExpectations(t)
}

func TestPeriodSummaryEndpoint(t *testing.T) {
	userID := uuid.New()
	end := localdate.Date{Year: 2026, Month: 5, Day: 7}

	result := &service.PeriodSummaryResult{
		StartDate: end.AddDays(-6),
		EndDate:   end,
		Days:      make([]nutrition.DaySummary, 7),
	}
	summaries := new(mocks.MockSummaryService)
	summaries.On("PeriodSummary", mock.Anything, userID, end, 7).Return(result, nil)

	router := newSummaryRouter(summaries, new(mocks.MockProfileService), userID)
	w := doRequest(t, router, "GET", "/api/v1/summary/period?end=2026-05-07", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "2026-05-01", body["start_date"])
	assert.Equal(t, "2026-05-07", body["end_date"])
	summaries.AssertExpectations(t)
}

func TestPeriodSummaryRejectsBadDays(t *testing.T) {
	userID := uuid.New()
	router := newSummaryRouter(new(mocks.MockSummaryService), new(mocks.MockProfileService), userID)

	for _, days := range []string{"0", "-3", "367", "abc"} {
		w := doRequest(t, router, "GET", "/api/v1/summary/period?end=2026-05-07&days="+days, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "days %q", days)
	}
}

func TestSummaryRejectsMalformedDate(t *testing.T) {
	userID := uuid.New()
	router := newSummaryRouter(new(mocks.MockSummaryService), new(mocks.MockProfileService), userID)

	w := doRequest(t, router, "GET", "/api/v1/summary/day?date=2026-02-30", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
