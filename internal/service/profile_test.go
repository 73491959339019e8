package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nutrilog/backend/config"
	"github.com/nutrilog/backend/internal/models"
	"github.com/nutrilog/backend/internal/service"
	"github.com/nutrilog/backend/internal/testdb"
	"github.com/nutrilog/backend/internal/types"
)

func setupProfileTest(t *testing.T) (*gorm.DB, *service.ProfileService, *models.User) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	td := testdb.SetupTestDB(t)

	profiles, err := service.NewProfileService(td.DB, &config.Config{DefaultTimezone: "UTC"})
	require.NoError(t, err)

	user := &models.User{Name: "Profile User", Email: "profile@example.com", PasswordHash: "x"}
	require.NoError(t, td.DB.Create(user).Error)
	require.NoError(t, td.DB.Create(&models.UserProfile{
		UserID:   user.ID,
		Username: "profiletester",
	}).Error)

	return td.DB, profiles, user
}

func TestNewProfileServiceRejectsBadDefaultTimezone(t *testing.T) {
	_, err := service.NewProfileService(nil, &config.Config{DefaultTimezone: "Mars/Olympus"})
	assert.Error(t, err)
}

func TestUpdateProfileRecordsHistory(t *testing.T) {
	_, profiles, user := setupProfileTest(t)

	weight := 72.5
	tz := "Europe/Berlin"
	updated, err := profiles.UpdateProfile(context.Background(), user.ID, &types.UpdateProfileRequest{
		WeightKG: &weight,
		Timezone: &tz,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.WeightKG)
	assert.Equal(t, 72.5, *updated.WeightKG)
	assert.Equal(t, "Europe/Berlin", updated.Timezone)

	history, err := profiles.GetProfileHistory(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)

	fields := []string{history[0].Field, history[1].Field}
	assert.ElementsMatch(t, []string{"weight_kg", "timezone"}, fields)
}

func TestUpdateProfileUnchangedFieldSkipsHistory(t *testing.T) {
	_, profiles, user := setupProfileTest(t)

	// Same username as seeded: nothing changed, nothing recorded.
	_, err := profiles.UpdateProfile(context.Background(), user.ID, &types.UpdateProfileRequest{
		Username: "profiletester",
	})
	require.NoError(t, err)

	history, err := profiles.GetProfileHistory(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestUpdateProfileValidation(t *testing.T) {
	_, profiles, user := setupProfileTest(t)

	badWeight := -5.0
	_, err := profiles.UpdateProfile(context.Background(), user.ID, &types.UpdateProfileRequest{WeightKG: &badWeight})
	assert.ErrorIs(t, err, service.ErrInvalidBodyStat)

	badSex := "other"
	_, err = profiles.UpdateProfile(context.Background(), user.ID, &types.UpdateProfileRequest{Sex: &badSex})
	assert.ErrorIs(t, err, service.ErrInvalidSex)

	badTZ := "Not/AZone"
	_, err = profiles.UpdateProfile(context.Background(), user.ID, &types.UpdateProfileRequest{Timezone: &badTZ})
	assert.ErrorIs(t, err, service.ErrInvalidTimezone)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	db, profiles, _ := setupProfileTest(t)

	ghost := &models.User{Name: "Ghost", Email: "ghost@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(ghost).Error)

	weight := 70.0
	_, err := profiles.UpdateProfile(context.Background(), ghost.ID, &types.UpdateProfileRequest{WeightKG: &weight})
	assert.ErrorIs(t, err, service.ErrProfileNotFound)
}

func TestLocationFallsBackOnBadZone(t *testing.T) {
	_, profiles, user := setupProfileTest(t)

	profile := &models.UserProfile{UserID: user.ID, Timezone: "Invalid/Zone"}
	loc := profiles.Location(profile)
	assert.Equal(t, time.UTC, loc)

	profile.Timezone = "America/New_York"
	loc = profiles.Location(profile)
	assert.Equal(t, "America/New_York", loc.String())

	assert.Equal(t, time.UTC, profiles.Location(nil))
}
