package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func RegisterDevice(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	if pushSvc == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "push notifications are not configured"})
		return
	}

	var body struct {
		Platform string `json:"platform" binding:"required"`
		Token    string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dev, err := pushSvc.RegisterDevice(userID, body.Platform, body.Token)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"deviceId": dev.ID, "platform": dev.Platform})
}
