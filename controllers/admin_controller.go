package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Operator endpoints to run the scheduled jobs on demand. Both jobs
// are idempotent, so a manual run is always safe.

func TriggerAggregation(c *gin.Context) {
	var body struct {
		Date string `json:"date"` // YYYY-MM-DD, default yesterday
	}
	_ = c.ShouldBindJSON(&body)

	day := time.Now().AddDate(0, 0, -1)
	if body.Date != "" {
		t, err := parseDate(body.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		day = t
	}

	if err := aggregationSvc.AggregateAllUsers(c.Request.Context(), day); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"day": day.Format("2006-01-02")})
}

func TriggerSuggestions(c *gin.Context) {
	report, err := suggestionSvc.GenerateForAllUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	failed := make([]gin.H, 0, len(report.Failed))
	for _, f := range report.Failed {
		failed = append(failed, gin.H{"userId": f.UserID, "error": f.Err.Error()})
	}
	c.JSON(http.StatusOK, gin.H{
		"succeeded": report.Succeeded,
		"failed":    failed,
	})
}

func TriggerExpiry(c *gin.Context) {
	count, err := suggestionSvc.ExpireStale(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"expired": count})
}
