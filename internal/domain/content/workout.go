package content

import (
	"time"

	"gorm.io/datatypes"
)

type Workout struct {
	ID              uint `gorm:"primaryKey"`
	Title           string
	Description     string
	Category        string `gorm:"index"`
	Level           string `gorm:"index"` // "beginner" | "intermediate" | "advanced"
	GoalTag         string `gorm:"column:goal_tag;index"`
	DurationMinutes int
	VideoURL        *string
	ImageURL        *string
	Tags            datatypes.JSONSlice[string]

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SavedWorkout is the user<->workout bookmark join row. Uniqueness of
// (user, workout) is checked at the application layer before insert.
type SavedWorkout struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"index:idx_saved_workouts_user_id"`
	WorkoutID uint `gorm:"index:idx_saved_workouts_workout_id"`
	Workout   Workout
	CreatedAt time.Time
}
