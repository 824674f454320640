package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"backend/models"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AggregationService rolls one user's raw logs and meals for a day
// into a DailySummary row.
type AggregationService struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewAggregationService(db *gorm.DB, log zerolog.Logger) *AggregationService {
	return &AggregationService{db: db, log: log}
}

// dayTotals is the intermediate rollup the insight rules run against.
type dayTotals struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64

	Workouts   int
	SleepHours float64
	Steps      float64
	Hydration  float64

	HasMeals     bool
	HasSleepLog  bool
	HasHydration bool
}

// insightRule inspects the rollup and optionally emits one insight.
// Rules must stay pure functions of the numbers.
type insightRule func(dayTotals) (string, bool)

var insightRules = []insightRule{
	func(t dayTotals) (string, bool) {
		msg := fmt.Sprintf("You slept %.1f hours, below the 7 hour target. Try winding down earlier tonight.", t.SleepHours)
		return msg, t.HasSleepLog && t.SleepHours < 7
	},
	func(t dayTotals) (string, bool) {
		return "No workouts logged. Even a short walk counts toward your activity goal.", t.Workouts == 0
	},
	func(t dayTotals) (string, bool) {
		msg := fmt.Sprintf("Protein came in at %.0fg, under the 60g baseline. Consider a protein-rich snack.", t.Protein)
		return msg, t.HasMeals && t.Protein < 60
	},
	func(t dayTotals) (string, bool) {
		msg := fmt.Sprintf("Hydration was %.0f glasses, short of 8. Keep a bottle within reach tomorrow.", t.Hydration)
		return msg, t.HasHydration && t.Hydration < 8
	},
}

func rollup(logs []models.Log, meals []models.NutritionLog) dayTotals {
	var t dayTotals
	for _, m := range meals {
		t.HasMeals = true
		t.Calories += m.Calories
		t.Protein += m.Protein
		t.Carbs += m.Carbs
		t.Fat += m.Fat
	}
	for _, l := range logs {
		switch l.Type {
		case models.LogTypeWorkout:
			t.Workouts++
		case models.LogTypeSleep:
			t.HasSleepLog = true
			t.SleepHours += l.Value
		case models.LogTypeSteps:
			t.Steps += l.Value
		case models.LogTypeHydration:
			t.HasHydration = true
			t.Hydration += l.Value
		}
	}
	return t
}

// Aggregate recomputes the summary for one user and one day. A day
// with no data is valid and yields zero totals; only store failures
// error. Safe to re-run: the write is an upsert on (user_id, date).
func (s *AggregationService) Aggregate(ctx context.Context, userID uint, day time.Time) error {
	start := dayStart(day)
	end := start.Add(24 * time.Hour)

	var logs []models.Log
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Find(&logs).Error; err != nil {
		return fmt.Errorf("%w: fetch logs: %v", ErrAggregation, err)
	}

	var meals []models.NutritionLog
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Find(&meals).Error; err != nil {
		return fmt.Errorf("%w: fetch meals: %v", ErrAggregation, err)
	}

	totals := rollup(logs, meals)

	insights := []string{}
	for _, rule := range insightRules {
		if msg, ok := rule(totals); ok {
			insights = append(insights, msg)
		}
	}
	rawInsights, err := json.Marshal(insights)
	if err != nil {
		return fmt.Errorf("%w: encode insights: %v", ErrAggregation, err)
	}

	// Assign with a map so zero values overwrite stale fields on re-runs.
	assign := map[string]interface{}{
		"user_id":     userID,
		"date":        start,
		"calories":    totals.Calories,
		"protein":     totals.Protein,
		"carbs":       totals.Carbs,
		"fat":         totals.Fat,
		"workouts":    totals.Workouts,
		"sleep_hours": totals.SleepHours,
		"steps":       totals.Steps,
		"insights":    datatypes.JSON(rawInsights),
	}

	var summary models.DailySummary
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, start).
		Assign(assign).
		FirstOrCreate(&summary).Error; err != nil {
		return fmt.Errorf("%w: upsert summary: %v", ErrAggregation, err)
	}
	return nil
}

// AggregateAllUsers sweeps every user for the given day. Per-user
// failures are logged and skipped; only failing to list users aborts.
func (s *AggregationService) AggregateAllUsers(ctx context.Context, day time.Time) error {
	var ids []uint
	if err := s.db.WithContext(ctx).Model(&models.User{}).Pluck("id", &ids).Error; err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	failed := 0
	for _, id := range ids {
		if err := s.Aggregate(ctx, id, day); err != nil {
			failed++
			s.log.Error().Err(err).Uint("user_id", id).Msg("aggregation failed")
		}
	}
	s.log.Info().
		Int("users", len(ids)).
		Int("failed", failed).
		Time("day", dayStart(day)).
		Msg("aggregation sweep finished")
	return nil
}
