package food

import (
	"time"

	"github.com/google/uuid"
)

// Food is a catalog row with per-serving values.
type Food struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Category           string    `json:"category"`
	CaloriesPerServing float64   `json:"calories_per_serving"`
	ServingSize        string    `json:"serving_size"`
	ProteinG           float64   `json:"protein_g"`
	CarbsG             float64   `json:"carbs_g"`
	FatG               float64   `json:"fat_g"`
	Description        string    `json:"description,omitempty"`
}

var MealTypes = []string{"breakfast", "lunch", "snack", "dinner"}

func ValidMealType(mealType string) bool {
	for _, m := range MealTypes {
		if m == mealType {
			return true
		}
	}
	return false
}

// FoodLog records a consumption event. TotalCalories is computed at
// insert time as servings times the catalog calories per serving.
type FoodLog struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	FoodID        uuid.UUID `json:"food_id"`
	FoodName      string    `json:"food_name"`
	Servings      float64   `json:"servings"`
	TotalCalories float64   `json:"total_calories"`
	MealType      string    `json:"meal_type"`
	Date          time.Time `json:"date"`
	CreatedAt     time.Time `json:"created_at"`
}

type LogFoodRequest struct {
	FoodID   string  `json:"food_id"`
	Servings float64 `json:"servings"`
	MealType string  `json:"meal_type"`
	Date     string  `json:"date"`
}

// DailyNutrition groups one day's logs by meal type.
type DailyNutrition struct {
	Date          string                `json:"date"`
	TotalCalories float64               `json:"total_calories"`
	Meals         map[string][]*FoodLog `json:"meals"`
}

type WaterLog struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	AmountMl float64   `json:"amount_ml"`
	Date     time.Time `json:"date"`
}

type LogWaterRequest struct {
	AmountMl float64 `json:"amount_ml"`
	Date     string  `json:"date"`
}

// DailyWater is a day's total intake in ml.
type DailyWater struct {
	Date    string  `json:"date"`
	TotalMl float64 `json:"total_ml"`
}
