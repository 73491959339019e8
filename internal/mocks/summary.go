package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/nutrilog/backend/internal/localdate"
	"github.com/nutrilog/backend/internal/models"
	"github.com/nutrilog/backend/internal/service"
)

// MockSummaryService is a mock implementation of the ISummaryService interface
type MockSummaryService struct {
	mock.Mock
}

func (m *MockSummaryService) DaySummary(ctx context.Context, userID uuid.UUID, date localdate.Date) (*service.DaySummaryResult, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DaySummaryResult), args.Error(1)
}

func (m *MockSummaryService) PeriodSummary(ctx context.Context, userID uuid.UUID, endDate localdate.Date, days int) (*service.PeriodSummaryResult, error) {
	args := m.Called(ctx, userID, endDate, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PeriodSummaryResult), args.Error(1)
}

// MockActivityService is a mock implementation of the IActivityService interface
type MockActivityService struct {
	mock.Mock
}

func (m *MockActivityService) SetLevel(ctx context.Context, userID uuid.UUID, date localdate.Date, level int) (*models.DailyActivity, error) {
	args := m.Called(ctx, userID, date, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DailyActivity), args.Error(1)
}

func (m *MockActivityService) GetLevel(ctx context.Context, userID uuid.UUID, date localdate.Date) (int, error) {
	args := m.Called(ctx, userID, date)
	return args.Int(0), args.Error(1)
}
