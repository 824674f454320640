package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	LogTypeWorkout   = "workout"
	LogTypeSleep     = "sleep"
	LogTypeMood      = "mood"
	LogTypeHydration = "hydration"
	LogTypeSteps     = "steps"
	LogTypeCustom    = "custom"
)

var logTypes = map[string]struct{}{
	LogTypeWorkout:   {},
	LogTypeSleep:     {},
	LogTypeMood:      {},
	LogTypeHydration: {},
	LogTypeSteps:     {},
	LogTypeCustom:    {},
}

func ValidLogType(t string) bool {
	_, ok := logTypes[t]
	return ok
}

// Log is one raw activity record. Immutable once created; the value's
// meaning depends on the type (sleep = hours, hydration = glasses,
// steps = count, workout = minutes).
type Log struct {
	gorm.Model
	UserID uint      `gorm:"index;not null"`
	Type   string    `gorm:"size:20;index;not null"`
	Value  float64
	Unit   string    `gorm:"size:20"`
	Note   string    `gorm:"type:text"`
	Date   time.Time `gorm:"index;not null"`
}
