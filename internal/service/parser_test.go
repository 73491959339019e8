package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrilog/backend/internal/localdate"
)

func TestNewMealParserService(t *testing.T) {
	originalKey := os.Getenv("DEEPSEEK_API_KEY")
	originalKeyFile := os.Getenv("DEEPSEEK_API_KEY_FILE")
	defer func() {
		os.Setenv("DEEPSEEK_API_KEY", originalKey)
		os.Setenv("DEEPSEEK_API_KEY_FILE", originalKeyFile)
	}()

	t.Run("should create service with API key", func(t *testing.T) {
		os.Setenv("DEEPSEEK_API_KEY", "test-api-key")

		service, err := NewMealParserService()

		require.NoError(t, err)
		assert.NotNil(t, service)
		assert.NotNil(t, service.redis)
	})

	t.Run("should fail without API key", func(t *testing.T) {
		os.Unsetenv("DEEPSEEK_API_KEY")
		os.Unsetenv("DEEPSEEK_API_KEY_FILE")

		service, err := NewMealParserService()

		assert.Error(t, err)
		assert.Nil(t, service)
		assert.Contains(t, err.Error(), "DEEPSEEK_API_KEY or DEEPSEEK_API_KEY_FILE must be set")
	})
}

// fakeCompletion wraps model output in the chat-completions response shape.
func fakeCompletion(t *testing.T, content interface{}) []byte {
	t.Helper()
	inner, err := json.Marshal(content)
	require.NoError(t, err)

	body, err := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": string(inner)}},
		},
	})
	require.NoError(t, err)
	return body
}

func TestParseMeal(t *testing.T) {
	response := map[string]interface{}{
		"items": []map[string]interface{}{
			{
				"name": "oatmeal with honey",
				"nutrients": map[string]interface{}{
					"calories": map[string]float64{"value": 300, "low": 250, "high": 360},
					"protein":  map[string]float64{"value": 10, "low": 8, "high": 13},
				},
				"assumptions": []string{"assumed 1 cup cooked oats"},
			},
		},
		"explicit_date": "2026-01-14",
	}

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")

		var req Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "deepseek-chat", req.Model)
		assert.Equal(t, "json_object", req.ResponseFormat["type"])
		require.Len(t, req.Messages, 2)
		assert.Contains(t, req.Messages[1].Content, "2026-01-15")
		assert.Contains(t, req.Messages[1].Content, "oatmeal yesterday")

		w.Write(fakeCompletion(t, response))
	}))
	defer srv.Close()

	service := &MealParserService{apiKey: "test-key", apiURL: srv.URL}

	parse, err := service.ParseMeal(context.Background(), "oatmeal yesterday",
		localdate.Date{Year: 2026, Month: 1, Day: 15})
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", gotAuth)
	require.Len(t, parse.Items, 1)
	assert.Equal(t, "oatmeal with honey", parse.Items[0].Name)
	assert.Equal(t, 300.0, parse.Items[0].Nutrients.Calories.Value)
	assert.Equal(t, "2026-01-14", parse.ExplicitDate)
	assert.Empty(t, parse.Warnings)
}

func TestParseMealWarnsOnInconsistentBounds(t *testing.T) {
	response := map[string]interface{}{
		"items": []map[string]interface{}{
			{
				"name": "mystery stew",
				"nutrients": map[string]interface{}{
					// low > value: inconsistent, but accepted.
					"calories": map[string]float64{"value": 300, "low": 400, "high": 500},
				},
			},
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(fakeCompletion(t, response))
	}))
	defer srv.Close()

	service := &MealParserService{apiKey: "test-key", apiURL: srv.URL}

	parse, err := service.ParseMeal(context.Background(), "mystery stew",
		localdate.Date{Year: 2026, Month: 1, Day: 15})
	require.NoError(t, err)
	require.Len(t, parse.Items, 1)
	assert.NotEmpty(t, parse.Warnings)
}

func TestParseMealAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	service := &MealParserService{apiKey: "test-key", apiURL: srv.URL}

	_, err := service.ParseMeal(context.Background(), "toast",
		localdate.Date{Year: 2026, Month: 1, Day: 15})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestMealParserDrafts(t *testing.T) {
	// Skip this test if no Redis is available
	if os.Getenv("REDIS_HOST") == "" {
		t.Skip("Skipping Redis-dependent test - REDIS_HOST not set")
	}

	os.Setenv("DEEPSEEK_API_KEY", "test-api-key")
	service, err := NewMealParserService()
	require.NoError(t, err)

	draft := &MealDraft{
		UserID:      "test-user",
		RawText:     "oatmeal with honey",
		SubmittedAt: time.Now(),
		Parse: MealParse{
			ExplicitDate: "2026-01-14",
		},
	}

	ctx := context.Background()

	err = service.SaveDraft(ctx, draft)
	require.NoError(t, err)
	assert.NotEmpty(t, draft.ID)
	assert.False(t, draft.CreatedAt.IsZero())

	retrieved, err := service.GetDraft(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, draft.RawText, retrieved.RawText)
	assert.Equal(t, draft.Parse.ExplicitDate, retrieved.Parse.ExplicitDate)

	err = service.DeleteDraft(ctx, draft.ID)
	assert.NoError(t, err)

	_, err = service.GetDraft(ctx, draft.ID)
	assert.Error(t, err)
}
