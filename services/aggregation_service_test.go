package services

import (
	"context"
	"testing"
	"time"

	"backend/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateSumsLogsAndMeals(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "Alice")
	svc := NewAggregationService(db, zerolog.Nop())

	day := time.Date(2026, 8, 28, 0, 0, 0, 0, time.Local)
	require.NoError(t, db.Create(&[]models.Log{
		{UserID: user.ID, Type: models.LogTypeWorkout, Value: 30, Date: day.Add(8 * time.Hour)},
		{UserID: user.ID, Type: models.LogTypeSleep, Value: 6.5, Date: day.Add(7 * time.Hour)},
		{UserID: user.ID, Type: models.LogTypeSteps, Value: 4200, Date: day.Add(20 * time.Hour)},
		{UserID: user.ID, Type: models.LogTypeHydration, Value: 5, Date: day.Add(12 * time.Hour)},
	}).Error)
	require.NoError(t, db.Create(&[]models.NutritionLog{
		{UserID: user.ID, Date: day.Add(9 * time.Hour), MealType: "breakfast", Calories: 450, Protein: 25, Carbs: 50, Fat: 15},
		{UserID: user.ID, Date: day.Add(13 * time.Hour), MealType: "lunch", Calories: 700, Protein: 45, Carbs: 80, Fat: 20},
	}).Error)

	require.NoError(t, svc.Aggregate(context.Background(), user.ID, day.Add(10*time.Hour)))

	var summary models.DailySummary
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&summary).Error)
	assert.True(t, day.Equal(summary.Date), "summary bucketed to %v, want %v", summary.Date, day)
	assert.Equal(t, 1150.0, summary.Calories)
	assert.Equal(t, 70.0, summary.Protein)
	assert.Equal(t, 1, summary.Workouts)
	assert.Equal(t, 6.5, summary.SleepHours)
	assert.Equal(t, 4200.0, summary.Steps)

	insights := summary.InsightList()
	assert.Contains(t, insights[0], "slept 6.5 hours")
	// Workouts logged, protein above 60g: only sleep and hydration fire.
	assert.Len(t, insights, 2)
}

func TestAggregateIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "Alice")
	svc := NewAggregationService(db, zerolog.Nop())

	day := time.Date(2026, 8, 28, 0, 0, 0, 0, time.Local)
	require.NoError(t, db.Create(&models.Log{
		UserID: user.ID, Type: models.LogTypeSleep, Value: 8, Date: day.Add(7 * time.Hour),
	}).Error)

	require.NoError(t, svc.Aggregate(context.Background(), user.ID, day))
	var first models.DailySummary
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&first).Error)

	require.NoError(t, svc.Aggregate(context.Background(), user.ID, day))

	var count int64
	require.NoError(t, db.Model(&models.DailySummary{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var second models.DailySummary
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&second).Error)
	assert.Equal(t, first.SleepHours, second.SleepHours)
	assert.Equal(t, first.Calories, second.Calories)
	assert.Equal(t, first.InsightList(), second.InsightList())
}

func TestAggregateOverwritesStaleTotalsOnRerun(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "Alice")
	svc := NewAggregationService(db, zerolog.Nop())

	day := time.Date(2026, 8, 28, 0, 0, 0, 0, time.Local)
	sleepLog := models.Log{UserID: user.ID, Type: models.LogTypeSleep, Value: 8, Date: day.Add(7 * time.Hour)}
	require.NoError(t, db.Create(&sleepLog).Error)
	require.NoError(t, svc.Aggregate(context.Background(), user.ID, day))

	// Source data changed (log removed); a re-run must not keep stale sums.
	require.NoError(t, db.Unscoped().Delete(&sleepLog).Error)
	require.NoError(t, svc.Aggregate(context.Background(), user.ID, day))

	var summary models.DailySummary
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&summary).Error)
	assert.Equal(t, 0.0, summary.SleepHours)
}

func TestAggregateWindowExcludesOtherDays(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "Alice")
	svc := NewAggregationService(db, zerolog.Nop())

	today := dayStart(time.Now())
	yesterday := today.AddDate(0, 0, -1)

	// Only a short sleep yesterday; today has no logs at all.
	require.NoError(t, db.Create(&models.Log{
		UserID: user.ID, Type: models.LogTypeSleep, Value: 5, Date: yesterday.Add(6 * time.Hour),
	}).Error)

	require.NoError(t, svc.Aggregate(context.Background(), user.ID, today))

	var summary models.DailySummary
	require.NoError(t, db.Where("user_id = ? AND date = ?", user.ID, today).First(&summary).Error)
	assert.Equal(t, 0.0, summary.SleepHours)

	insights := summary.InsightList()
	for _, msg := range insights {
		assert.NotContains(t, msg, "slept")
	}
	// A day with nothing logged still nudges on activity.
	assert.Contains(t, insights, "No workouts logged. Even a short walk counts toward your activity goal.")

	// The bucket that does contain the log gets the low-sleep note.
	require.NoError(t, svc.Aggregate(context.Background(), user.ID, yesterday))
	var ySummary models.DailySummary
	require.NoError(t, db.Where("user_id = ? AND date = ?", user.ID, yesterday).First(&ySummary).Error)
	assert.Equal(t, 5.0, ySummary.SleepHours)
	assert.Contains(t, ySummary.InsightList()[0], "slept 5.0 hours")
}

func TestAggregateAllUsersSkipsNobody(t *testing.T) {
	db := newTestDB(t)
	a := seedUser(t, db, "Alice")
	b := seedUser(t, db, "Bob")
	svc := NewAggregationService(db, zerolog.Nop())

	require.NoError(t, svc.AggregateAllUsers(context.Background(), time.Now()))

	var count int64
	require.NoError(t, db.Model(&models.DailySummary{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)

	for _, id := range []uint{a.ID, b.ID} {
		var s models.DailySummary
		require.NoError(t, db.Where("user_id = ?", id).First(&s).Error)
	}
}
