package controllers

import (
	"net/http"
	"time"

	"backend/services"

	"github.com/gin-gonic/gin"
)

func LogMeal(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var body struct {
		MealType string                          `json:"mealType" binding:"required"`
		Date     time.Time                       `json:"date"`
		Items    []services.NutritionItemRequest `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal, err := services.LogMeal(userID, body.MealType, body.Date, body.Items)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, meal)
}

func ListMeals(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	from, to, err := parseRange(c, time.Now().AddDate(0, 0, -7), time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meals, err := services.ListMeals(userID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": meals})
}
