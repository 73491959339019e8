package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrilog/backend/internal/localdate"
	"github.com/nutrilog/backend/internal/models"
	"github.com/nutrilog/backend/internal/nutrition"
	"github.com/nutrilog/backend/internal/service"
	"github.com/nutrilog/backend/internal/testdb"
)

func setupActivityTest(t *testing.T) (*service.ActivityService, *models.User) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	td := testdb.SetupTestDB(t)
	user := &models.User{Name: "Activity User", Email: "activity@example.com", PasswordHash: "x"}
	require.NoError(t, td.DB.Create(user).Error)

	return service.NewActivityService(td.DB), user
}

func TestSetLevelAndGetLevel(t *testing.T) {
	activity, user := setupActivityTest(t)
	date := localdate.Date{Year: 2026, Month: 4, Day: 10}

	rec, err := activity.SetLevel(context.Background(), user.ID, date, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, rec.Level)

	level, err := activity.GetLevel(context.Background(), user.ID, date)
	require.NoError(t, err)
	assert.Equal(t, 4, level)
}

func TestSetLevelUpserts(t *testing.T) {
	activity, user := setupActivityTest(t)
	date := localdate.Date{Year: 2026, Month: 4, Day: 10}

	_, err := activity.SetLevel(context.Background(), user.ID, date, 2)
	require.NoError(t, err)
	_, err = activity.SetLevel(context.Background(), user.ID, date, 5)
	require.NoError(t, err)

	level, err := activity.GetLevel(context.Background(), user.ID, date)
	require.NoError(t, err)
	assert.Equal(t, 5, level)
}

func TestGetLevelDefaultsWhenUnset(t *testing.T) {
	activity, user := setupActivityTest(t)

	level, err := activity.GetLevel(context.Background(), user.ID, localdate.Date{Year: 2026, Month: 1, Day: 1})
	require.NoError(t, err)
	assert.Equal(t, nutrition.DefaultActivityLevel, level)
}

func TestSetLevelRejectsOutOfRange(t *testing.T) {
	activity, user := setupActivityTest(t)
	date := localdate.Date{Year: 2026, Month: 4, Day: 10}

	for _, level := range []int{0, 6, -1} {
		_, err := activity.SetLevel(context.Background(), user.ID, date, level)
		assert.ErrorIs(t, err, service.ErrInvalidActivityLevel)
	}
}
