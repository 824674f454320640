package services

import (
	"errors"
	"time"

	"backend/config"
	"backend/models"
)

// CreateLog appends one raw activity record. Logs are immutable; there
// is no update path.
func CreateLog(userID uint, typ string, value float64, unit, note string, date time.Time) (*models.Log, error) {
	if !models.ValidLogType(typ) {
		return nil, errors.New("unknown log type")
	}
	if date.IsZero() {
		date = time.Now()
	}

	l := &models.Log{
		UserID: userID,
		Type:   typ,
		Value:  value,
		Unit:   unit,
		Note:   note,
		Date:   date,
	}
	if err := config.DB.Create(l).Error; err != nil {
		return nil, err
	}
	return l, nil
}

// ListLogs returns a user's logs in [from, to), optionally filtered by type.
func ListLogs(userID uint, from, to time.Time, typ string) ([]models.Log, error) {
	q := config.DB.Where("user_id = ? AND date >= ? AND date < ?", userID, from, to)
	if typ != "" {
		q = q.Where("type = ?", typ)
	}

	var logs []models.Log
	err := q.Order("date DESC").Find(&logs).Error
	return logs, err
}
