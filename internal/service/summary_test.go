package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nutrilog/backend/config"
	"github.com/nutrilog/backend/internal/localdate"
	"github.com/nutrilog/backend/internal/models"
	"github.com/nutrilog/backend/internal/nutrition"
	"github.com/nutrilog/backend/internal/service"
	"github.com/nutrilog/backend/internal/testdb"
)

type summaryFixture struct {
	db        *gorm.DB
	entries   *service.EntryService
	activity  *service.ActivityService
	summaries *service.SummaryService
	user      *models.User
}

func setupSummaryTest(t *testing.T, profile models.UserProfile) *summaryFixture {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	td := testdb.SetupTestDB(t)

	profiles, err := service.NewProfileService(td.DB, &config.Config{DefaultTimezone: "UTC"})
	require.NoError(t, err)
	activity := service.NewActivityService(td.DB)
	entries := service.NewEntryService(td.DB, profiles)
	summaries := service.NewSummaryService(td.DB, profiles, activity)

	user := &models.User{Name: "Summary User", Email: "summary@example.com", PasswordHash: "x"}
	require.NoError(t, td.DB.Create(user).Error)
	profile.UserID = user.ID
	if profile.Username == "" {
		profile.Username = "summarytester"
	}
	require.NoError(t, td.DB.Create(&profile).Error)

	return &summaryFixture{db: td.DB, entries: entries, activity: activity, summaries: summaries, user: user}
}

func fullBodyProfile() models.UserProfile {
	weight, height, age, sex := 70.0, 175.0, 30, "male"
	return models.UserProfile{
		WeightKG:       &weight,
		HeightCM:       &height,
		AgeYears:       &age,
		Sex:            &sex,
		CalorieDeficit: 500,
		Timezone:       "UTC",
	}
}

func (f *summaryFixture) logOn(t *testing.T, date string, items ...nutrition.Item) {
	t.Helper()
	draft := &service.MealDraft{
		RawText:     "test meal",
		SubmittedAt: time.Now(),
		Parse:       service.MealParse{Items: items, ExplicitDate: date},
	}
	_, err := f.entries.LogMeal(context.Background(), f.user.ID, draft)
	require.NoError(t, err)
}

func calorieItem(value, low, high float64) nutrition.Item {
	return nutrition.Item{
		Name: "food",
		Nutrients: nutrition.Nutrients{
			Calories: nutrition.Estimate{Value: value, Low: low, High: high},
			Protein:  nutrition.Estimate{Value: 20, Low: 15, High: 25},
		},
	}
}

func TestDaySummarySumsIntervalsIndependently(t *testing.T) {
	f := setupSummaryTest(t, fullBodyProfile())
	date := localdate.Date{Year: 2026, Month: 5, Day: 1}

	f.logOn(t, "2026-05-01", calorieItem(300, 250, 360))
	f.logOn(t, "2026-05-01", calorieItem(500, 400, 620))

	result, err := f.summaries.DaySummary(context.Background(), f.user.ID, date)
	require.NoError(t, err)

	assert.Equal(t, 2, result.EntryCount)
	assert.InDelta(t, 800.0, result.Totals.Calories.Value, 1e-9)
	assert.InDelta(t, 650.0, result.Totals.Calories.Low, 1e-9)
	assert.InDelta(t, 980.0, result.Totals.Calories.High, 1e-9)
}

func TestDaySummaryIncludesEnergyForFullProfile(t *testing.T) {
	f := setupSummaryTest(t, fullBodyProfile())
	date := localdate.Date{Year: 2026, Month: 5, Day: 1}

	_, err := f.activity.SetLevel(context.Background(), f.user.ID, date, 3)
	require.NoError(t, err)

	result, err := f.summaries.DaySummary(context.Background(), f.user.ID, date)
	require.NoError(t, err)

	require.NotNil(t, result.Energy)
	// Mifflin-St Jeor for 70kg/175cm/30y male: 1649, x1.55 at level 3.
	assert.Equal(t, 1649, result.Energy.BMR.Value)
	assert.Equal(t, 2556, result.Energy.TDEE.Value)
	assert.Equal(t, 2056, result.Energy.TargetCalories)
	assert.Equal(t, 3, result.ActivityLevel)

	require.NotNil(t, result.Thresholds)
	assert.InDelta(t, float64(2056)*0.10/9, result.Thresholds.SaturatedFatG, 1e-9)
	assert.Equal(t, 36.0, result.Thresholds.AddedSugarG)
	assert.Equal(t, 38.0, result.Thresholds.FiberTargetG)
}

func TestDaySummarySuppressesEnergyWithoutBodyStats(t *testing.T) {
	f := setupSummaryTest(t, models.UserProfile{Username: "nostats", Timezone: "UTC"})
	date := localdate.Date{Year: 2026, Month: 5, Day: 1}

	f.logOn(t, "2026-05-01", calorieItem(300, 250, 360))

	result, err := f.summaries.DaySummary(context.Background(), f.user.ID, date)
	require.NoError(t, err)

	assert.Nil(t, result.Energy)
	assert.Nil(t, result.Thresholds)
	assert.InDelta(t, 300.0, result.Totals.Calories.Value, 1e-9)
}

func TestPeriodSummaryIncludesEmptyDays(t *testing.T) {
	f := setupSummaryTest(t, fullBodyProfile())

	f.logOn(t, "2026-05-01", calorieItem(2000, 1800, 2200))
	f.logOn(t, "2026-05-03", calorieItem(1800, 1600, 2000))

	end := localdate.Date{Year: 2026, Month: 5, Day: 3}
	result, err := f.summaries.PeriodSummary(context.Background(), f.user.ID, end, 3)
	require.NoError(t, err)

	require.Len(t, result.Days, 3)
	assert.Equal(t, "2026-05-01", result.Days[0].Date.String())
	assert.Equal(t, "2026-05-02", result.Days[1].Date.String())
	assert.Equal(t, "2026-05-03", result.Days[2].Date.String())
	assert.Zero(t, result.Days[1].Totals.Calories.Value)

	// The calorie mean runs over the whole window, empty day included.
	assert.Equal(t, 3, result.Stats.Calories.DaysTracked)
	assert.InDelta(t, 3800.0/3, result.Stats.Calories.Value, 1e-9)
}

func TestPeriodSummaryDeficitTracksTDEEDays(t *testing.T) {
	f := setupSummaryTest(t, fullBodyProfile())

	f.logOn(t, "2026-05-01", calorieItem(2000, 1800, 2200))

	end := localdate.Date{Year: 2026, Month: 5, Day: 2}
	result, err := f.summaries.PeriodSummary(context.Background(), f.user.ID, end, 2)
	require.NoError(t, err)

	// Full profile: every day has a TDEE, even the empty one.
	require.NotNil(t, result.Days[0].TDEE)
	require.NotNil(t, result.Days[1].TDEE)
	assert.Equal(t, 2, result.Stats.Deficit.DaysTracked)
}

func TestPeriodSummaryRejectsNonPositiveLength(t *testing.T) {
	f := setupSummaryTest(t, fullBodyProfile())

	_, err := f.summaries.PeriodSummary(context.Background(), f.user.ID, localdate.Date{Year: 2026, Month: 5, Day: 1}, 0)
	assert.ErrorIs(t, err, service.ErrInvalidPeriod)
}
