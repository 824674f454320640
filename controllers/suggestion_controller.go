package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func ListSuggestions(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	suggestions, err := suggestionSvc.ListActive(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

func CompleteSuggestion(c *gin.Context) {
	transitionSuggestion(c, true)
}

func DismissSuggestion(c *gin.Context) {
	transitionSuggestion(c, false)
}

func transitionSuggestion(c *gin.Context, complete bool) {
	userID := c.MustGet("userID").(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid suggestion id"})
		return
	}

	if complete {
		err = suggestionSvc.Complete(c.Request.Context(), userID, uint(id))
	} else {
		err = suggestionSvc.Dismiss(c.Request.Context(), userID, uint(id))
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active suggestion with that id"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
