package users

import (
	"net/http"
	"time"

	"fitness-app/database"
	"fitness-app/internal/domain/access"
	"fitness-app/internal/domain/subscriptions"
	"fitness-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CurrentSubscription loads the most recent subscription cache row for the
// user. A nil return means the free tier.
func CurrentSubscription(db *gorm.DB, userID uint) *subscriptions.Subscription {
	var sub subscriptions.Subscription
	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&sub).Error; err != nil {
		return nil
	}
	return &sub
}

func GetCurrentUser(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user users.User
	if err := database.DB.Preload("Profile").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	now := time.Now()
	sub := CurrentSubscription(database.DB, user.ID)
	policy := access.ComputePolicy(now, user, sub)

	resp := MeResponse{
		User: UserDTO{
			ID:         user.ID,
			Email:      user.Email,
			Role:       user.Role,
			IsVerified: user.IsVerified,
		},
		Access: AccessDTO{
			IsAdmin:          policy.IsAdmin,
			HasPremiumAccess: policy.HasPremiumAccess,
			WorkoutLimit:     policy.WorkoutLimit,
			NutritionLimit:   policy.NutritionLimit,
		},
	}

	if user.Profile != nil {
		resp.Profile = ProfileDTO{
			DisplayName: user.Profile.DisplayName,
			Gender:      user.Profile.Gender,
			HeightCM:    user.Profile.HeightCM,
			WeightKG:    user.Profile.WeightKG,
			GoalTag:     user.Profile.GoalTag,
			AvatarURL:   user.Profile.AvatarURL,
		}
	}

	if sub != nil {
		resp.Subscription = &SubscriptionDTO{
			PlanTag:   sub.PlanTag,
			IsActive:  sub.Active(now),
			ExpiresAt: sub.ExpiresAt,
		}
	}

	c.JSON(http.StatusOK, resp)
}

func UpdateProfile(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input struct {
		DisplayName *string  `json:"display_name"`
		Gender      *string  `json:"gender"`
		HeightCM    *float64 `json:"height_cm"`
		WeightKG    *float64 `json:"weight_kg"`
		GoalTag     *string  `json:"goal_tag"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var profile users.Profile
	if err := database.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	updates := map[string]interface{}{}
	if input.DisplayName != nil {
		if *input.DisplayName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Display name cannot be empty"})
			return
		}
		updates["display_name"] = *input.DisplayName
	}
	if input.Gender != nil {
		updates["gender"] = *input.Gender
	}
	if input.HeightCM != nil {
		updates["height_cm"] = *input.HeightCM
	}
	if input.WeightKG != nil {
		updates["weight_kg"] = *input.WeightKG
	}
	if input.GoalTag != nil {
		updates["goal_tag"] = *input.GoalTag
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := database.DB.Model(&profile).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}
