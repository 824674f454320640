package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	SuggestionStatusActive    = "active"
	SuggestionStatusCompleted = "completed"
	SuggestionStatusDismissed = "dismissed"

	SuggestionPriorityHigh   = "high"
	SuggestionPriorityMedium = "medium"
	SuggestionPriorityLow    = "low"
)

var suggestionCategories = map[string]struct{}{
	"nutrition": {},
	"exercise":  {},
	"sleep":     {},
	"hydration": {},
	"wellness":  {},
	"recovery":  {},
}

func ValidSuggestionCategory(c string) bool {
	_, ok := suggestionCategories[c]
	return ok
}

func ValidSuggestionPriority(p string) bool {
	return p == SuggestionPriorityHigh || p == SuggestionPriorityMedium || p == SuggestionPriorityLow
}

// Suggestion is one AI-generated recommendation. Created active by the
// daily sweep; completed/dismissed are terminal. Indexes match the two
// query shapes: the per-user dedup check and the expiry sweep.
type Suggestion struct {
	gorm.Model
	UserID uint `gorm:"not null;index:idx_sugg_user_status,priority:1"`

	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`
	Category    string `gorm:"size:20"`
	Priority    string `gorm:"size:10"`
	Status      string `gorm:"size:10;index:idx_sugg_user_status,priority:2;index:idx_sugg_expiry,priority:1"`
	Emoji       string `gorm:"size:16"`
	ActionText  string
	DismissText string

	GeneratedAt time.Time `gorm:"index:idx_sugg_user_status,priority:3"`
	ExpiresAt   time.Time `gorm:"index:idx_sugg_expiry,priority:2"`
	CompletedAt *time.Time
	DismissedAt *time.Time
}
