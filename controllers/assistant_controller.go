package controllers

import (
	"errors"
	"net/http"

	"backend/services"

	"github.com/gin-gonic/gin"
)

// AssistantChat relays a conversation to the AI gateway. The gateway
// handles window truncation and model fallback; this handler only
// validates roles.
func AssistantChat(c *gin.Context) {
	var body struct {
		Messages []services.ChatMessage `json:"messages" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(body.Messages) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "messages must not be empty"})
		return
	}
	for _, m := range body.Messages {
		switch m.Role {
		case services.RoleSystem, services.RoleUser, services.RoleAssistant:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role " + m.Role})
			return
		}
	}

	reply, err := gatewaySvc.Generate(c.Request.Context(), body.Messages)
	if errors.Is(err, services.ErrProviderUnavailable) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "assistant is unavailable right now"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
