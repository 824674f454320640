package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NutritionLog is one meal with its macro totals denormalized onto the
// row so daily rollups never need to touch the items.
type NutritionLog struct {
	gorm.Model
	UserID   uint      `gorm:"index;not null"`
	Date     time.Time `gorm:"index;not null"`
	MealType string    `gorm:"size:20"` // breakfast|lunch|dinner|snack
	Items    []NutritionItem

	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64

	// Micronutrients kept as named columns so the rollup arithmetic
	// stays statically checkable.
	Sodium   float64
	Sugar    float64
	Fiber    float64
	Iron     float64
	Calcium  float64
	VitaminC float64

	// Extra holds nutrients we don't model yet.
	Extra datatypes.JSONMap
}

type NutritionItem struct {
	gorm.Model
	NutritionLogID uint `gorm:"index;not null"`

	Label    string `gorm:"not null"`
	Quantity float64
	Unit     string `gorm:"size:20"`
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
}
