package controllers

import (
	"net/http"
	"time"

	"backend/services"

	"github.com/gin-gonic/gin"
)

func CreateLog(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var body struct {
		Type  string    `json:"type" binding:"required"`
		Value float64   `json:"value"`
		Unit  string    `json:"unit"`
		Note  string    `json:"note"`
		Date  time.Time `json:"date"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	l, err := services.CreateLog(userID, body.Type, body.Value, body.Unit, body.Note, body.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, l)
}

// ListLogs reads ?from=&to= as RFC3339 or YYYY-MM-DD; defaults to the
// last 7 days. ?type= filters by log type.
func ListLogs(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	from, to, err := parseRange(c, time.Now().AddDate(0, 0, -7), time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logs, err := services.ListLogs(userID, from, to, c.Query("type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

func parseRange(c *gin.Context, defFrom, defTo time.Time) (time.Time, time.Time, error) {
	from, to := defFrom, defTo
	if v := c.Query("from"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return from, to, err
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return from, to, err
		}
		to = t
	}
	return from, to, nil
}

func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", v, time.Local)
}
