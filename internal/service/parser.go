package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/nutrilog/backend/internal/localdate"
	"github.com/nutrilog/backend/internal/nutrition"
)

// MealParse is the estimator's structured answer for one free-text meal
// description: per-item nutrient estimates plus an optional explicit date
// extracted from the text.
type MealParse struct {
	Items []nutrition.Item `json:"items"`
	// ExplicitDate is the YYYY-MM-DD string the model extracted from
	// phrases like "yesterday's lunch", or empty. Interpretation belongs
	// to localdate.Resolve, not to this service.
	ExplicitDate string `json:"explicit_date,omitempty"`
	// Warnings are estimator inconsistencies found by nutrition.CheckItem.
	Warnings []string `json:"warnings,omitempty"`
}

// MealDraft is a parsed meal awaiting user confirmation, held in Redis.
// Confirming persists it as an Entry; abandoning lets the TTL collect it.
type MealDraft struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	UserID      string    `json:"user_id"`
	RawText     string    `json:"raw_text"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
	Parse       MealParse `json:"parse"`
}

// MealParserService handles interactions with the DeepSeek API
type MealParserService struct {
	apiKey string
	apiURL string
	redis  *redis.Client
}

// NewMealParserService creates a new MealParserService instance
func NewMealParserService() (*MealParserService, error) {
	apiKey := os.Getenv("DEEPSEEK_API_KEY")
	if apiKey == "" {
		apiKeyFile := os.Getenv("DEEPSEEK_API_KEY_FILE")
		if apiKeyFile == "" {
			return nil, fmt.Errorf("DEEPSEEK_API_KEY or DEEPSEEK_API_KEY_FILE must be set")
		}

		apiKeyBytes, err := os.ReadFile(apiKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read API key file: %w", err)
		}

		apiKey = strings.TrimSpace(string(apiKeyBytes))
		if apiKey == "" {
			return nil, fmt.Errorf("API key file is empty")
		}
	}

	apiURL := os.Getenv("DEEPSEEK_API_URL")
	if apiURL == "" {
		apiURL = "https://api.deepseek.com/v1/chat/completions"
	}

	// Initialize Redis client with environment variables
	redisHost := os.Getenv("REDIS_HOST")
	if redisHost == "" {
		redisHost = "localhost"
	}
	redisPort := os.Getenv("REDIS_PORT")
	if redisPort == "" {
		redisPort = "6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			redisDB = db
		}
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", redisHost, redisPort),
		Password: redisPassword,
		DB:       redisDB,
	})

	return &MealParserService{
		apiKey: apiKey,
		apiURL: apiURL,
		redis:  redisClient,
	}, nil
}

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a request to the DeepSeek API
type Request struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
	Temperature    float64           `json:"temperature"`
}

const parseSystemPrompt = `You are a nutrition estimation engine. The user describes a meal in free text. Respond ONLY with JSON of this shape:
{
    "items": [
        {
            "name": "oatmeal with honey",
            "nutrients": {
                "calories": {"value": 300, "low": 250, "high": 360},
                "protein": {"value": 10, "low": 8, "high": 13},
                "carbs": {"value": 54, "low": 45, "high": 64},
                "fat": {"value": 6, "low": 4, "high": 8},
                "saturated_fat": {"value": 1, "low": 0.5, "high": 1.5},
                "unsaturated_fat": {"value": 4.5, "low": 3, "high": 6},
                "fiber": {"value": 8, "low": 6, "high": 10},
                "sodium": {"value": 150, "low": 100, "high": 220},
                "added_sugar": {"value": 17, "low": 12, "high": 23}
            },
            "mass_grams": {"value": 350, "low": 280, "high": 420},
            "assumptions": ["assumed 1 cup cooked oats", "assumed 1 tbsp honey"]
        }
    ],
    "explicit_date": ""
}

Every nutrient is a 90% confidence interval: low <= value <= high. Calories in kcal, sodium in mg, everything else in grams. Omit a nutrient only if it is genuinely zero.
Set explicit_date (YYYY-MM-DD) ONLY when the text names a specific day ("yesterday", "last Tuesday", "on the 14th"); resolve relative phrases against the context date you are given. Otherwise leave it empty.
List every quantity or preparation assumption you had to make.`

// ParseMeal asks the model for per-item nutrient estimates. The context
// date anchors relative phrases like "yesterday" so the model can emit a
// concrete explicit_date.
func (s *MealParserService) ParseMeal(ctx context.Context, text string, today localdate.Date) (*MealParse, error) {
	prompt := fmt.Sprintf("Context date (user's local today): %s\n\nMeal description: %s", today, text)

	messages := []Message{
		{Role: "system", Content: parseSystemPrompt},
		{Role: "user", Content: prompt},
	}

	reqBody := Request{
		Model:    "deepseek-chat",
		Messages: messages,
		ResponseFormat: map[string]string{
			"type": "json_object",
		},
		// Low temperature: estimation should be repeatable, not creative.
		Temperature: 0.2,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("[MealParser] API request failed with status %d: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("no response from API")
	}

	var parse MealParse
	if err := json.Unmarshal([]byte(result.Choices[0].Message.Content), &parse); err != nil {
		return nil, fmt.Errorf("failed to parse meal estimate: %w", err)
	}

	// Inconsistent estimator output is accepted and only warned about;
	// blocking on a malformed interval would make the tool unusable.
	for _, item := range parse.Items {
		parse.Warnings = append(parse.Warnings, nutrition.CheckItem(item)...)
	}

	return &parse, nil
}

// SaveDraft saves a meal draft to Redis
func (s *MealParserService) SaveDraft(ctx context.Context, draft *MealDraft) error {
	draft.ID = uuid.New().String()
	draft.CreatedAt = time.Now()
	draft.UpdatedAt = time.Now()

	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	key := fmt.Sprintf("meal:draft:%s", draft.ID)
	err = s.redis.Set(ctx, key, data, 24*time.Hour).Err()
	if err != nil {
		return fmt.Errorf("failed to save draft to Redis: %w", err)
	}

	return nil
}

// GetDraft retrieves a meal draft from Redis
func (s *MealParserService) GetDraft(ctx context.Context, id string) (*MealDraft, error) {
	key := fmt.Sprintf("meal:draft:%s", id)
	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to get draft from Redis: %w", err)
	}

	var draft MealDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}

	return &draft, nil
}

// DeleteDraft removes a meal draft from Redis
func (s *MealParserService) DeleteDraft(ctx context.Context, id string) error {
	key := fmt.Sprintf("meal:draft:%s", id)
	err := s.redis.Del(ctx, key).Err()
	if err != nil {
		return fmt.Errorf("failed to delete draft from Redis: %w", err)
	}

	return nil
}
