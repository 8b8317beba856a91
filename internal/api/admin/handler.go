package admin

import (
	"net/http"
	"strconv"
	"time"

	"fitness-app/database"
	"fitness-app/internal/domain/community"
	"fitness-app/internal/domain/content"
	"fitness-app/internal/domain/progress"
	"fitness-app/internal/domain/subscriptions"
	"fitness-app/internal/domain/users"
	"fitness-app/internal/infra/notify"

	"github.com/gin-gonic/gin"
)

type AdminUser struct {
	ID          uint    `json:"id"`
	Email       string  `json:"email"`
	DisplayName string  `json:"display_name"`
	Role        string  `json:"role"`
	IsVerified  bool    `json:"is_verified"`
	PlanTag     *string `json:"plan_tag,omitempty"`
	SubActive   bool    `json:"subscription_active"`
	CreatedAt   string  `json:"created_at"`
}

func AdminDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the admin console",
	})
}

func ListAllUsers(c *gin.Context) {
	var all []users.User
	if err := database.DB.Preload("Profile").Order("id ASC").Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	var subs []subscriptions.Subscription
	if err := database.DB.Order("created_at ASC").Find(&subs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscriptions"})
		return
	}
	// later rows win so each user maps to the most recent one
	subByUser := make(map[uint]subscriptions.Subscription, len(subs))
	for _, s := range subs {
		subByUser[s.UserID] = s
	}

	now := time.Now()
	adminUsers := []AdminUser{}
	for _, u := range all {
		row := AdminUser{
			ID:         u.ID,
			Email:      u.Email,
			Role:       u.Role,
			IsVerified: u.IsVerified,
			CreatedAt:  u.CreatedAt.Format("2006-01-02 15:04"),
		}
		if u.Profile != nil {
			row.DisplayName = u.Profile.DisplayName
		}
		if s, ok := subByUser[u.ID]; ok {
			row.PlanTag = &s.PlanTag
			row.SubActive = s.Active(now)
		}
		adminUsers = append(adminUsers, row)
	}

	c.JSON(http.StatusOK, adminUsers)
}

func GetUserDetails(c *gin.Context) {
	userID := c.Param("id")

	var user users.User
	if err := database.DB.Preload("Profile").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var subs []subscriptions.Subscription
	if err := database.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&subs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscriptions"})
		return
	}

	var postCount, commentCount int64
	database.DB.Model(&community.Post{}).Where("author_id = ?", userID).Count(&postCount)
	database.DB.Model(&community.Comment{}).Where("author_id = ?", userID).Count(&commentCount)

	c.JSON(http.StatusOK, gin.H{
		"user":          user,
		"subscriptions": subs,
		"post_count":    postCount,
		"comment_count": commentCount,
	})
}

func UpdateUserRole(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var input struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Role != users.RoleUser && input.Role != users.RoleAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
		return
	}

	if uint(id) == c.GetUint("user_id") {
		c.JSON(http.StatusConflict, gin.H{"error": "Cannot change your own role"})
		return
	}

	res := database.DB.Model(&users.User{}).Where("id = ?", id).Update("role", input.Role)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role updated"})
}

// DeleteUser removes the account plus everything keyed to it. Community
// content is hard-deleted; likes and comments the user left on other
// people's posts go too.
func DeleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	if uint(id) == c.GetUint("user_id") {
		c.JSON(http.StatusConflict, gin.H{"error": "Cannot delete your own account"})
		return
	}

	var user users.User
	if err := database.DB.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var ownPostIDs []uint
	database.DB.Model(&community.Post{}).Where("author_id = ?", id).Pluck("id", &ownPostIDs)

	steps := []error{
		database.DB.Where("author_id = ?", id).Delete(&community.Comment{}).Error,
		database.DB.Where("user_id = ?", id).Delete(&community.Like{}).Error,
	}
	if len(ownPostIDs) > 0 {
		steps = append(steps,
			database.DB.Where("post_id IN ?", ownPostIDs).Delete(&community.Comment{}).Error,
			database.DB.Where("post_id IN ?", ownPostIDs).Delete(&community.Like{}).Error,
			database.DB.Where("author_id = ?", id).Delete(&community.Post{}).Error,
		)
	}
	steps = append(steps,
		database.DB.Where("user_id = ?", id).Delete(&content.SavedWorkout{}).Error,
		database.DB.Where("user_id = ?", id).Delete(&content.SavedNutritionPlan{}).Error,
		database.DB.Where("user_id = ?", id).Delete(&progress.UserGoal{}).Error,
		database.DB.Where("user_id = ?", id).Delete(&progress.ProgressLog{}).Error,
		database.DB.Where("user_id = ?", id).Delete(&progress.DailyProgress{}).Error,
		database.DB.Where("user_id = ?", id).Delete(&subscriptions.Subscription{}).Error,
		database.DB.Where("user_id = ?", id).Delete(&users.VerificationToken{}).Error,
		database.DB.Where("user_id = ?", id).Delete(&users.Profile{}).Error,
		database.DB.Delete(&users.User{}, id).Error,
	)
	for _, stepErr := range steps {
		if stepErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
			return
		}
	}

	notify.Broadcast("community_posts", notify.ActionDelete)
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
