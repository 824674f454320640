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

func TestCronSpec(t *testing.T) {
	tests := []struct {
		clock   string
		want    string
		wantErr bool
	}{
		{clock: "00:15", want: "15 0 * * *"},
		{clock: "06:00", want: "0 6 * * *"},
		{clock: "23:59", want: "59 23 * * *"},
		{clock: "24:00", wantErr: true},
		{clock: "12:60", wantErr: true},
		{clock: "noon", wantErr: true},
		{clock: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.clock, func(t *testing.T) {
			got, err := cronSpec(tt.clock)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStartRejectsInvalidClockTimes(t *testing.T) {
	cfg := gatewayConfig()
	cfg.AggregationTime = "25:00"
	cfg.SuggestionTime = "06:00"

	s := NewScheduler(cfg, nil, nil, zerolog.Nop())
	require.Error(t, s.Start())
}

func TestRunAggregationTickRollsUpYesterday(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "Alice")

	yesterday := dayStart(time.Now()).AddDate(0, 0, -1)
	require.NoError(t, db.Create(&models.Log{
		UserID: user.ID, Type: models.LogTypeSleep, Value: 8, Date: yesterday.Add(7 * time.Hour),
	}).Error)

	cfg := gatewayConfig()
	cfg.AggregationTime = "00:15"
	cfg.SuggestionTime = "06:00"
	agg := NewAggregationService(db, zerolog.Nop())
	s := NewScheduler(cfg, agg, nil, zerolog.Nop())

	s.RunAggregationTick(context.Background())

	var summary models.DailySummary
	require.NoError(t, db.Where("user_id = ? AND date = ?", user.ID, yesterday).First(&summary).Error)
	assert.Equal(t, 8.0, summary.SleepHours)
}

func TestRunSuggestionTickExpiresBeforeGenerating(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "Alice")
	sugg := newSuggestionService(t, db, &scriptedProvider{reply: validSuggestionJSON})

	// An overdue batch from a previous day must not trip the dedup check.
	now := time.Now()
	require.NoError(t, db.Create(&models.Suggestion{
		UserID: user.ID, Title: "stale", Description: "d", Category: "sleep", Priority: "low",
		Status: models.SuggestionStatusActive, GeneratedAt: now.Add(-26 * time.Hour), ExpiresAt: now.Add(-2 * time.Hour),
	}).Error)

	cfg := gatewayConfig()
	cfg.AggregationTime = "00:15"
	cfg.SuggestionTime = "06:00"
	s := NewScheduler(cfg, NewAggregationService(db, zerolog.Nop()), sugg, zerolog.Nop())

	s.RunSuggestionTick(context.Background())

	var activeCount int64
	require.NoError(t, db.Model(&models.Suggestion{}).
		Where("user_id = ? AND status = ?", user.ID, models.SuggestionStatusActive).
		Count(&activeCount).Error)
	assert.EqualValues(t, 3, activeCount)

	var stale models.Suggestion
	require.NoError(t, db.Where("title = ?", "stale").First(&stale).Error)
	assert.Equal(t, models.SuggestionStatusDismissed, stale.Status)
}
