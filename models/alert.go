package models

import "time"

// Alert is the persisted trail of in-app notifications (e.g. a new
// suggestion batch landing). Delivery goes over the realtime hub and
// push; this row is what the inbox screen reads.
type Alert struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index"`
	Kind      string    `gorm:"size:32"` // "suggestions.ready" | "info"
	Message   string    `gorm:"type:text"`
	CreatedAt time.Time
}
