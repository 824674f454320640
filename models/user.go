package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email            string `gorm:"uniqueIndex;not null"`
	Password         string `gorm:"not null"`
	FullName         string
	Age              int
	HeightCm         float64
	WeightKg         float64
	HealthConditions string
	FitnessGoals     string

	// Onboarded flips once the profile carries goals; only onboarded
	// users are picked up by the suggestion sweep.
	Onboarded bool `gorm:"index;default:false"`
}
