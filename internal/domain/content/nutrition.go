package content

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
)

type NutritionPlan struct {
	ID             uint `gorm:"primaryKey"`
	Title          string
	Description    string
	Category       string `gorm:"index"`
	GoalTag        string `gorm:"column:goal_tag;index"`
	CaloriesPerDay int
	ImageURL       *string
	Tags           datatypes.JSONSlice[string]

	// Validated at the API boundary via ParseMeals/ParseMacros before they
	// ever reach these columns.
	Meals  datatypes.JSON
	Macros datatypes.JSON

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Meal struct {
	Name     string   `json:"name"`
	Calories int      `json:"calories"`
	Items    []string `json:"items"`
}

type Macros struct {
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// SavedNutritionPlan mirrors SavedWorkout for the nutrition library.
type SavedNutritionPlan struct {
	ID              uint `gorm:"primaryKey"`
	UserID          uint `gorm:"index:idx_saved_nutrition_user_id"`
	NutritionPlanID uint `gorm:"index:idx_saved_nutrition_plan_id"`
	NutritionPlan   NutritionPlan
	CreatedAt       time.Time
}

// ParseMeals rejects malformed meal JSON instead of storing it raw.
func ParseMeals(raw []byte) ([]Meal, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var meals []Meal
	if err := json.Unmarshal(raw, &meals); err != nil {
		return nil, errors.New("meals must be a JSON array of {name, calories, items}")
	}
	for _, m := range meals {
		if m.Name == "" {
			return nil, errors.New("every meal needs a name")
		}
		if m.Calories < 0 {
			return nil, errors.New("meal calories cannot be negative")
		}
	}
	return meals, nil
}

// ParseMacros rejects malformed macro JSON instead of storing it raw.
func ParseMacros(raw []byte) (*Macros, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var m Macros
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, errors.New("macros must be a JSON object of {protein_g, carbs_g, fat_g}")
	}
	if m.ProteinG < 0 || m.CarbsG < 0 || m.FatG < 0 {
		return nil, errors.New("macro values cannot be negative")
	}
	return &m, nil
}
