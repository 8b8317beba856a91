package progress

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fitness-app/database"
	progressdomain "fitness-app/internal/domain/progress"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
}

func authedJSON(t *testing.T, userID uint, method string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, "/", &buf)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set("user_id", userID)
	return c, w
}

func TestUpsertGoalInsertsThenUpdates(t *testing.T) {
	setupTestDB(t)

	c, w := authedJSON(t, 1, http.MethodPut, gin.H{
		"daily_calorie_target":  2000,
		"weekly_workout_target": 4,
	})
	UpsertGoal(c)
	assert.Equal(t, http.StatusCreated, w.Code)

	c, w = authedJSON(t, 1, http.MethodPut, gin.H{
		"daily_calorie_target":  1800,
		"weekly_workout_target": 5,
	})
	UpsertGoal(c)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, database.DB.Model(&progressdomain.UserGoal{}).Where("user_id = ?", 1).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var goal progressdomain.UserGoal
	require.NoError(t, database.DB.Where("user_id = ?", 1).First(&goal).Error)
	assert.Equal(t, 1800, goal.DailyCalorieTarget)
	assert.Equal(t, 5, goal.WeeklyWorkoutTarget)
}

func TestUpsertGoalRejectsNegativeTargets(t *testing.T) {
	setupTestDB(t)

	c, w := authedJSON(t, 1, http.MethodPut, gin.H{
		"daily_calorie_target":  -100,
		"weekly_workout_target": 3,
	})
	UpsertGoal(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpsertTodaySecondWriteWins(t *testing.T) {
	setupTestDB(t)

	c, w := authedJSON(t, 7, http.MethodPut, gin.H{
		"calories_consumed": 600,
		"workouts_done":     1,
	})
	UpsertToday(c)
	assert.Equal(t, http.StatusCreated, w.Code)

	c, w = authedJSON(t, 7, http.MethodPut, gin.H{
		"calories_consumed": 1450,
		"workouts_done":     2,
	})
	UpsertToday(c)
	assert.Equal(t, http.StatusOK, w.Code)

	today := time.Now().Format(progressdomain.DateLayout)

	var rows []progressdomain.ProgressLog
	require.NoError(t, database.DB.Where("user_id = ? AND date = ?", 7, today).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, 1450, rows[0].CaloriesConsumed)
	assert.Equal(t, 2, rows[0].WorkoutsDone)
}

func TestUpsertTodayIsPerUser(t *testing.T) {
	setupTestDB(t)

	for _, userID := range []uint{1, 2} {
		c, w := authedJSON(t, userID, http.MethodPut, gin.H{
			"calories_consumed": 500,
			"workouts_done":     1,
		})
		UpsertToday(c)
		assert.Equal(t, http.StatusCreated, w.Code)
	}

	var count int64
	require.NoError(t, database.DB.Model(&progressdomain.ProgressLog{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestGetWeeklySummaryUsesCurrentRows(t *testing.T) {
	setupTestDB(t)

	today := time.Now().Format(progressdomain.DateLayout)
	yesterday := time.Now().AddDate(0, 0, -1).Format(progressdomain.DateLayout)

	require.NoError(t, database.DB.Create(&progressdomain.UserGoal{
		UserID: 3, DailyCalorieTarget: 2000, WeeklyWorkoutTarget: 4,
	}).Error)
	require.NoError(t, database.DB.Create(&progressdomain.ProgressLog{
		UserID: 3, Date: yesterday, CaloriesConsumed: 1900, WorkoutsDone: 1,
	}).Error)
	require.NoError(t, database.DB.Create(&progressdomain.ProgressLog{
		UserID: 3, Date: today, CaloriesConsumed: 1500, WorkoutsDone: 2,
	}).Error)

	c, w := authedJSON(t, 3, http.MethodGet, nil)
	GetWeeklySummary(c)
	require.Equal(t, http.StatusOK, w.Code)

	var summary progressdomain.WeeklySummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))

	assert.Equal(t, 1500, summary.CaloriesToday)
	assert.Equal(t, 500, summary.CaloriesRemaining)
	assert.Equal(t, 3, summary.WorkoutsThisWeek)
	assert.Equal(t, 1, summary.WorkoutsRemaining)
}

func TestGetWeeklySummaryFallsBackToLegacyRows(t *testing.T) {
	setupTestDB(t)

	today := time.Now().Format(progressdomain.DateLayout)

	require.NoError(t, database.DB.Create(&progressdomain.UserGoal{
		UserID: 4, DailyCalorieTarget: 1800, WeeklyWorkoutTarget: 3,
	}).Error)
	require.NoError(t, database.DB.Create(&progressdomain.DailyProgress{
		UserID: 4, Date: today, Calories: 900, Workouts: 1,
	}).Error)

	c, w := authedJSON(t, 4, http.MethodGet, nil)
	GetWeeklySummary(c)
	require.Equal(t, http.StatusOK, w.Code)

	var summary progressdomain.WeeklySummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))

	assert.Equal(t, 900, summary.CaloriesToday)
	assert.Equal(t, 1, summary.WorkoutsThisWeek)
}

func TestGetWeeklySummaryNoGoalNoRows(t *testing.T) {
	setupTestDB(t)

	c, w := authedJSON(t, 99, http.MethodGet, nil)
	GetWeeklySummary(c)
	require.Equal(t, http.StatusOK, w.Code)

	var summary progressdomain.WeeklySummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Zero(t, summary.CaloriePct)
	assert.Zero(t, summary.WorkoutsRemaining)
}
