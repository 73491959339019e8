package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/nutrilog/backend/internal/localdate"
	"github.com/nutrilog/backend/internal/models"
	"github.com/nutrilog/backend/internal/nutrition"
	"github.com/nutrilog/backend/internal/service"
)

// MockMealParser is a mock implementation of the IMealParser interface
type MockMealParser struct {
	mock.Mock
}

func (m *MockMealParser) ParseMeal(ctx context.Context, text string, today localdate.Date) (*service.MealParse, error) {
	args := m.Called(ctx, text, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.MealParse), args.Error(1)
}

func (m *MockMealParser) SaveDraft(ctx context.Context, draft *service.MealDraft) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

func (m *MockMealParser) GetDraft(ctx context.Context, id string) (*service.MealDraft, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.MealDraft), args.Error(1)
}

func (m *MockMealParser) DeleteDraft(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEntryService is a mock implementation of the IEntryService interface
type MockEntryService struct {
	mock.Mock
}

func (m *MockEntryService) LogMeal(ctx context.Context, userID uuid.UUID, draft *service.MealDraft) (*models.Entry, error) {
	args := m.Called(ctx, userID, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Entry), args.Error(1)
}

func (m *MockEntryService) ListDay(ctx context.Context, userID uuid.UUID, date localdate.Date) ([]models.Entry, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Entry), args.Error(1)
}

func (m *MockEntryService) DeleteEntry(ctx context.Context, userID, entryID uuid.UUID) error {
	args := m.Called(ctx, userID, entryID)
	return args.Error(0)
}

func (m *MockEntryService) OverrideItem(ctx context.Context, userID, entryID, itemID uuid.UUID, patch nutrition.OverridePatch) (*models.FoodItem, error) {
	args := m.Called(ctx, userID, entryID, itemID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FoodItem), args.Error(1)
}

func (m *MockEntryService) SearchSimilar(ctx context.Context, userID uuid.UUID, query string, limit int) ([]models.Entry, error) {
	args := m.Called(ctx, userID, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Entry), args.Error(1)
}
