package progress

import (
	"errors"
	"net/http"
	"time"

	"fitness-app/database"
	progressdomain "fitness-app/internal/domain/progress"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

// GET /progress/goal
func GetGoal(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var goal progressdomain.UserGoal
	err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusOK, gin.H{"goal": nil})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load goal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// PUT /progress/goal
// Most-recent row wins: update by id if one exists, insert otherwise.
// Goal history is not retained.
func UpsertGoal(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var input struct {
		DailyCalorieTarget  int      `json:"daily_calorie_target" binding:"required"`
		WeeklyWorkoutTarget int      `json:"weekly_workout_target" binding:"required"`
		TargetWeightKG      *float64 `json:"target_weight_kg"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.DailyCalorieTarget < 0 || input.WeeklyWorkoutTarget < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Targets cannot be negative"})
		return
	}

	var existing progressdomain.UserGoal
	err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&existing).Error

	switch {
	case err == nil:
		existing.DailyCalorieTarget = input.DailyCalorieTarget
		existing.WeeklyWorkoutTarget = input.WeeklyWorkoutTarget
		existing.TargetWeightKG = input.TargetWeightKG
		if err := database.DB.Save(&existing).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update goal"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": existing.ID})

	case errors.Is(err, gorm.ErrRecordNotFound):
		goal := progressdomain.UserGoal{
			UserID:              userID,
			DailyCalorieTarget:  input.DailyCalorieTarget,
			WeeklyWorkoutTarget: input.WeeklyWorkoutTarget,
			TargetWeightKG:      input.TargetWeightKG,
		}
		if err := database.DB.Create(&goal).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create goal"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": goal.ID})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load goal"})
	}
}

// PUT /progress/today
//
// Upsert keyed on (user, today). Record-not-found is the expected insert
// branch; any other fetch error surfaces to the caller.
func UpsertToday(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var input struct {
		CaloriesConsumed int     `json:"calories_consumed"`
		WorkoutsDone     int     `json:"workouts_done"`
		Note             *string `json:"note"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.CaloriesConsumed < 0 || input.WorkoutsDone < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Values cannot be negative"})
		return
	}

	today := time.Now().Format(progressdomain.DateLayout)

	var existing progressdomain.ProgressLog
	err := database.DB.
		Where("user_id = ? AND date = ?", userID, today).
		First(&existing).Error

	switch {
	case err == nil:
		existing.CaloriesConsumed = input.CaloriesConsumed
		existing.WorkoutsDone = input.WorkoutsDone
		existing.Note = input.Note
		if err := database.DB.Save(&existing).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update progress"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": existing.ID})

	case errors.Is(err, gorm.ErrRecordNotFound):
		row := progressdomain.ProgressLog{
			UserID:           userID,
			Date:             today,
			CaloriesConsumed: input.CaloriesConsumed,
			WorkoutsDone:     input.WorkoutsDone,
			Note:             input.Note,
		}
		if err := database.DB.Create(&row).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record progress"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": row.ID})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load progress"})
	}
}

// GET /progress/week
//
// Reads the current table shape first and falls back to the legacy
// daily_progress rows when the newer query returns nothing.
func GetWeeklySummary(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	now := time.Now()
	since := now.AddDate(0, 0, -6).Format(progressdomain.DateLayout)

	entries, err := weekEntries(userID, since)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load progress"})
		return
	}

	var goal progressdomain.UserGoal
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&goal).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load goal"})
		return
	}

	c.JSON(http.StatusOK, progressdomain.Summarize(now, entries, goal))
}

func weekEntries(userID uint, since string) ([]progressdomain.DayEntry, error) {
	var logs []progressdomain.ProgressLog
	if err := database.DB.
		Where("user_id = ? AND date >= ?", userID, since).
		Order("date ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}

	if len(logs) > 0 {
		entries := make([]progressdomain.DayEntry, 0, len(logs))
		for _, l := range logs {
			entries = append(entries, progressdomain.DayEntry{
				Date:     l.Date,
				Calories: l.CaloriesConsumed,
				Workouts: l.WorkoutsDone,
			})
		}
		return entries, nil
	}

	// legacy shape fallback for accounts that never migrated
	var legacy []progressdomain.DailyProgress
	if err := database.DB.
		Where("user_id = ? AND date >= ?", userID, since).
		Order("date ASC").
		Find(&legacy).Error; err != nil {
		return nil, err
	}

	entries := make([]progressdomain.DayEntry, 0, len(legacy))
	for _, l := range legacy {
		entries = append(entries, progressdomain.DayEntry{
			Date:     l.Date,
			Calories: l.Calories,
			Workouts: l.Workouts,
		})
	}
	return entries, nil
}
