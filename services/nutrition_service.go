package services

import (
	"errors"
	"strings"
	"time"

	"backend/config"
	"backend/models"
)

type NutritionItemRequest struct {
	Label    string  `json:"label"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// LogMeal records one meal, denormalizing item macros onto the parent
// row so rollups read a single table.
func LogMeal(userID uint, mealType string, date time.Time, items []NutritionItemRequest) (*models.NutritionLog, error) {
	switch strings.ToLower(mealType) {
	case "breakfast", "lunch", "dinner", "snack":
	default:
		return nil, errors.New("unknown meal type")
	}
	if len(items) == 0 {
		return nil, errors.New("meal needs at least one item")
	}
	if date.IsZero() {
		date = time.Now()
	}

	meal := &models.NutritionLog{
		UserID:   userID,
		Date:     date,
		MealType: strings.ToLower(mealType),
	}
	for _, it := range items {
		meal.Items = append(meal.Items, models.NutritionItem{
			Label:    it.Label,
			Quantity: it.Quantity,
			Unit:     it.Unit,
			Calories: it.Calories,
			Protein:  it.Protein,
			Carbs:    it.Carbs,
			Fat:      it.Fat,
		})
		meal.Calories += it.Calories
		meal.Protein += it.Protein
		meal.Carbs += it.Carbs
		meal.Fat += it.Fat
	}

	if err := config.DB.Create(meal).Error; err != nil {
		return nil, err
	}
	return meal, nil
}

// ListMeals returns a user's meals in [from, to) with their items.
func ListMeals(userID uint, from, to time.Time) ([]models.NutritionLog, error) {
	var meals []models.NutritionLog
	err := config.DB.
		Preload("Items").
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Order("date DESC").
		Find(&meals).Error
	return meals, err
}
