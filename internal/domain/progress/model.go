package progress

import "time"

// DateLayout is the canonical yyyy-mm-dd day key for progress rows.
const DateLayout = "2006-01-02"

type UserGoal struct {
	ID                  uint `gorm:"primaryKey"`
	UserID              uint `gorm:"index:idx_user_goals_user_id"`
	DailyCalorieTarget  int
	WeeklyWorkoutTarget int
	TargetWeightKG      *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProgressLog is the current table shape. One row intended per (user, day);
// the handler upserts instead of relying on a database constraint.
type ProgressLog struct {
	ID               uint   `gorm:"primaryKey"`
	UserID           uint   `gorm:"index:idx_progress_logs_user_date"`
	Date             string `gorm:"index:idx_progress_logs_user_date"`
	CaloriesConsumed int
	WorkoutsDone     int
	Note             *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DailyProgress is the legacy table shape, kept readable for accounts that
// never migrated. New writes go to ProgressLog only.
type DailyProgress struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index:idx_daily_progress_user_date"`
	Date      string `gorm:"index:idx_daily_progress_user_date"`
	Calories  int
	Workouts  int
	CreatedAt time.Time
}
