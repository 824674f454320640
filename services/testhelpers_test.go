package services

import (
	"testing"

	"backend/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Log{},
		&models.NutritionLog{},
		&models.NutritionItem{},
		&models.DailySummary{},
		&models.Suggestion{},
		&models.DailyGoal{},
		&models.Alert{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) models.User {
	t.Helper()

	u := models.User{
		Email:        name + "@example.com",
		Password:     "irrelevant",
		FullName:     name,
		FitnessGoals: "stay active",
		Onboarded:    true,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}
