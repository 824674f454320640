package controllers

import (
	"errors"
	"net/http"
	"time"

	"backend/config"
	"backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func summaryJSON(s models.DailySummary) gin.H {
	return gin.H{
		"date": s.Date.Format("2006-01-02"),
		"totals": gin.H{
			"calories": s.Calories,
			"protein":  s.Protein,
			"carbs":    s.Carbs,
			"fat":      s.Fat,
		},
		"logs": gin.H{
			"workouts":   s.Workouts,
			"sleepHours": s.SleepHours,
			"steps":      s.Steps,
		},
		"insights": s.InsightList(),
	}
}

// GetDailySummary returns the rollup for ?date= (default yesterday,
// the most recent closed bucket).
func GetDailySummary(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	day := time.Now().AddDate(0, 0, -1)
	if v := c.Query("date"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		day = t
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	var summary models.DailySummary
	err := config.DB.Where("user_id = ? AND date = ?", userID, start).First(&summary).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no summary for that day"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summaryJSON(summary))
}

// ListDailySummaries returns rollups in ?from=&to=, newest first.
func ListDailySummaries(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	from, to, err := parseRange(c, time.Now().AddDate(0, 0, -30), time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var summaries []models.DailySummary
	if err := config.DB.
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date DESC").
		Find(&summaries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]gin.H, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, summaryJSON(s))
	}
	c.JSON(http.StatusOK, gin.H{"summaries": out})
}
