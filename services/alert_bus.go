package services

import (
	"fmt"
	"time"

	"backend/models"

	"gorm.io/gorm"
)

// AlertBus fans one notification out to every delivery path: an inbox
// row, the websocket hub, and mobile push. Hub and push are optional;
// delivery is best effort and never blocks the caller's job.
type AlertBus struct {
	db *gorm.DB
	rt *RealtimeHub
	ps *PushService
}

func NewAlertBus(db *gorm.DB, rt *RealtimeHub, ps *PushService) *AlertBus {
	return &AlertBus{db: db, rt: rt, ps: ps}
}

// SuggestionsReady notifies a user that their daily batch landed.
func (b *AlertBus) SuggestionsReady(userID uint, count int) {
	msg := fmt.Sprintf("%d new suggestions are ready for you", count)
	a := &models.Alert{
		UserID:    userID,
		Kind:      "suggestions.ready",
		Message:   msg,
		CreatedAt: time.Now(),
	}
	_ = b.db.Create(a).Error

	if b.rt != nil {
		b.rt.Broadcast(userID, Event{
			Kind: "suggestions.ready",
			Data: map[string]any{"count": count},
		})
	}
	if b.ps != nil {
		b.ps.PushToUser(userID, "Daily suggestions ready", msg, map[string]string{
			"kind": "suggestions.ready",
		})
	}
}
