package services

import (
	"errors"

	"backend/config"
	"backend/models"
	"backend/utils"

	"gorm.io/gorm"
)

func RegisterUser(email, password, fullName string) error {
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{
		Email:    email,
		Password: hashed,
		FullName: fullName,
	}
	return config.DB.Create(&user).Error
}

func AuthenticateUser(email, password string) (string, error) {
	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return "", errors.New("user not found")
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", errors.New("incorrect password")
	}

	return utils.GenerateJWT(user.ID, user.Email)
}

func GetProfile(userID uint) (*models.User, error) {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

type ProfileUpdate struct {
	FullName         string  `json:"fullName"`
	Age              int     `json:"age"`
	HeightCm         float64 `json:"heightCm"`
	WeightKg         float64 `json:"weightKg"`
	HealthConditions string  `json:"healthConditions"`
	FitnessGoals     string  `json:"fitnessGoals"`
}

// UpdateProfile saves the profile and flips Onboarded once the user
// has stated goals; the suggestion sweep only picks up onboarded users.
func UpdateProfile(userID uint, upd ProfileUpdate) (*models.User, error) {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return nil, err
	}

	user.FullName = upd.FullName
	user.Age = upd.Age
	user.HeightCm = upd.HeightCm
	user.WeightKg = upd.WeightKg
	user.HealthConditions = upd.HealthConditions
	user.FitnessGoals = upd.FitnessGoals
	if user.FitnessGoals != "" {
		user.Onboarded = true
	}

	if err := config.DB.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func UpsertGoals(userID uint, calories, protein, carbs, fat, hydration, exercise, sleep float64) error {
	var goal models.DailyGoal
	err := config.DB.Where("user_id = ?", userID).First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		goal = models.DailyGoal{
			UserID:    userID,
			Calories:  calories,
			Protein:   protein,
			Carbs:     carbs,
			Fat:       fat,
			Hydration: hydration,
			Exercise:  exercise,
			Sleep:     sleep,
		}
		return config.DB.Create(&goal).Error
	}
	if err != nil {
		return err
	}

	goal.Calories = calories
	goal.Protein = protein
	goal.Carbs = carbs
	goal.Fat = fat
	goal.Hydration = hydration
	goal.Exercise = exercise
	goal.Sleep = sleep

	return config.DB.Save(&goal).Error
}

func GetGoals(userID uint) (*models.DailyGoal, error) {
	var goal models.DailyGoal
	err := config.DB.Where("user_id = ?", userID).First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.DailyGoal{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &goal, nil
}
