package nutrition

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fitness-app/database"
	"fitness-app/internal/domain/access"
	"fitness-app/internal/domain/content"
	"fitness-app/internal/domain/subscriptions"
	usersdomain "fitness-app/internal/domain/users"

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

func seedPlans(t *testing.T, n int) {
	t.Helper()
	base := time.Now().Add(-time.Hour)
	for i := 1; i <= n; i++ {
		p := content.NutritionPlan{
			Title:          fmt.Sprintf("Plan %d", i),
			Category:       "cutting",
			CaloriesPerDay: 1800 + i*50,
			CreatedAt:      base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, database.DB.Create(&p).Error)
	}
}

func authedGet(t *testing.T, userID uint, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	c.Set("user_id", userID)
	return c, w
}

func TestListPlansFreeTierLocksBeyondLimit(t *testing.T) {
	setupTestDB(t)
	require.NoError(t, database.DB.Create(&usersdomain.User{Email: "free@x.test", Role: usersdomain.RoleUser}).Error)
	seedPlans(t, 8)

	c, w := authedGet(t, 1, "/nutrition")
	ListPlans(c)
	require.Equal(t, http.StatusOK, w.Code)

	var resp PlanListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Plans, 8)
	assert.Equal(t, access.FreeTierLimit, resp.Limit)

	unlocked := 0
	for _, card := range resp.Plans {
		if !card.Locked {
			unlocked++
		}
	}
	assert.Equal(t, access.FreeTierLimit, unlocked)
	assert.False(t, resp.Plans[0].Locked)
	assert.True(t, resp.Plans[7].Locked)
}

func TestListPlansPremiumUnlocksEverything(t *testing.T) {
	setupTestDB(t)
	require.NoError(t, database.DB.Create(&usersdomain.User{Email: "pro@x.test", Role: usersdomain.RoleUser}).Error)
	require.NoError(t, database.DB.Create(&subscriptions.Subscription{
		UserID: 1, PlanTag: subscriptions.TierPremium, IsActive: true,
	}).Error)
	seedPlans(t, 8)

	c, w := authedGet(t, 1, "/nutrition")
	ListPlans(c)
	require.Equal(t, http.StatusOK, w.Code)

	var resp PlanListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, access.Unlimited, resp.Limit)
	for _, card := range resp.Plans {
		assert.False(t, card.Locked)
	}
}

func TestGetPlanOutsideFreeWindowReturns402(t *testing.T) {
	setupTestDB(t)
	require.NoError(t, database.DB.Create(&usersdomain.User{Email: "free@x.test", Role: usersdomain.RoleUser}).Error)
	seedPlans(t, 4)

	// plan 1 is the oldest, outside the 3-item free window
	c, w := authedGet(t, 1, "/nutrition/1")
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	GetPlan(c)
	assert.Equal(t, http.StatusPaymentRequired, w.Code)

	// plan 4 is the newest and stays free
	c, w = authedGet(t, 1, "/nutrition/4")
	c.Params = gin.Params{{Key: "id", Value: "4"}}
	GetPlan(c)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSavePlanIsIdempotent(t *testing.T) {
	setupTestDB(t)
	require.NoError(t, database.DB.Create(&usersdomain.User{Email: "u@x.test", Role: usersdomain.RoleUser}).Error)
	seedPlans(t, 1)

	for i := 0; i < 2; i++ {
		c, w := authedGet(t, 1, "/nutrition/1/save")
		c.Params = gin.Params{{Key: "id", Value: "1"}}
		SavePlan(c)
		require.Equal(t, http.StatusOK, w.Code)
	}

	var count int64
	require.NoError(t, database.DB.Model(&content.SavedNutritionPlan{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
