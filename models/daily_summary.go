package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DailySummary is the per-(user, day) rollup written by the aggregation
// job. Date is truncated to local midnight; the unique index makes the
// job an idempotent upsert.
type DailySummary struct {
	gorm.Model
	UserID uint      `gorm:"not null;uniqueIndex:idx_summary_user_day"`
	Date   time.Time `gorm:"not null;uniqueIndex:idx_summary_user_day"`

	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64

	Workouts   int
	SleepHours float64
	Steps      float64

	// Insights is a JSON array of rule-derived strings.
	Insights datatypes.JSON
}

func (s *DailySummary) InsightList() []string {
	var out []string
	if len(s.Insights) == 0 {
		return out
	}
	_ = json.Unmarshal(s.Insights, &out)
	return out
}
