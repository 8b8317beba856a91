package billing

import (
	"errors"
	"net/http"
	"time"

	"fitness-app/database"
	"fitness-app/internal/domain/subscriptions"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetSubscription reads the cached subscription row for the signed-in user.
// No row means the free tier; that is not an error.
func GetSubscription(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	var sub subscriptions.Subscription
	err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusOK, gin.H{
			"tier":   subscriptions.TierFree,
			"active": false,
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscription"})
		return
	}

	tier := subscriptions.TierFree
	if sub.Active(time.Now()) {
		tier = subscriptions.TierPremium
	}

	c.JSON(http.StatusOK, gin.H{
		"tier":          tier,
		"active":        sub.Active(time.Now()),
		"plan_tag":      sub.PlanTag,
		"started_at":    sub.StartedAt,
		"expires_at":    sub.ExpiresAt,
		"stripe_status": sub.StripeStatus,
	})
}
