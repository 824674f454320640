package controllers

import (
	"net/http"

	"backend/services"

	"github.com/gin-gonic/gin"
)

func GetProfile(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	user, err := services.GetProfile(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"email":            user.Email,
		"fullName":         user.FullName,
		"age":              user.Age,
		"heightCm":         user.HeightCm,
		"weightKg":         user.WeightKg,
		"healthConditions": user.HealthConditions,
		"fitnessGoals":     user.FitnessGoals,
		"onboarded":        user.Onboarded,
	})
}

func UpdateProfile(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var body services.ProfileUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := services.UpdateProfile(userID, body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"onboarded": user.Onboarded})
}

func UpsertGoals(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var body struct {
		Calories  float64 `json:"calories"`
		Protein   float64 `json:"protein"`
		Carbs     float64 `json:"carbs"`
		Fat       float64 `json:"fat"`
		Hydration float64 `json:"hydration"`
		Exercise  float64 `json:"exercise"`
		Sleep     float64 `json:"sleep"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.UpsertGoals(userID, body.Calories, body.Protein, body.Carbs, body.Fat, body.Hydration, body.Exercise, body.Sleep); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func GetGoals(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	goal, err := services.GetGoals(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, goal)
}
