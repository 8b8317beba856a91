package nutrition

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"fitness-app/database"
	"fitness-app/internal/api/users"
	"fitness-app/internal/domain/access"
	"fitness-app/internal/domain/content"
	usersdomain "fitness-app/internal/domain/users"
	"fitness-app/internal/infra/notify"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

func currentPolicy(userID uint) access.Policy {
	var user usersdomain.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return access.ComputePolicy(time.Now(), usersdomain.User{Role: usersdomain.RoleUser}, nil)
	}
	sub := users.CurrentSubscription(database.DB, userID)
	return access.ComputePolicy(time.Now(), user, sub)
}

func toCard(p content.NutritionPlan, locked bool) PlanCardDTO {
	return PlanCardDTO{
		ID:             p.ID,
		Title:          p.Title,
		Category:       p.Category,
		GoalTag:        p.GoalTag,
		CaloriesPerDay: p.CaloriesPerDay,
		ImageURL:       p.ImageURL,
		Tags:           p.Tags,
		Locked:         locked,
	}
}

// GET /nutrition
func ListPlans(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	policy := currentPolicy(userID)

	q := database.DB.Model(&content.NutritionPlan{})
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}
	if goal := c.Query("goal"); goal != "" {
		q = q.Where("goal_tag = ?", goal)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var plans []content.NutritionPlan
	if err := q.Order("created_at DESC").Find(&plans).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load nutrition plans"})
		return
	}

	out := PlanListResponse{
		Plans: make([]PlanCardDTO, 0, len(plans)),
		Limit: policy.NutritionLimit,
	}
	for i, p := range plans {
		locked := policy.NutritionLimit != access.Unlimited && i >= policy.NutritionLimit
		out.Plans = append(out.Plans, toCard(p, locked))
	}

	c.JSON(http.StatusOK, out)
}

// GET /nutrition/:id
func GetPlan(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	policy := currentPolicy(userID)

	var plan content.NutritionPlan
	if err := database.DB.First(&plan, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Nutrition plan not found"})
		return
	}

	if policy.NutritionLimit != access.Unlimited && !withinFreeWindow(plan.ID, policy.NutritionLimit) {
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "Upgrade to premium to unlock this plan"})
		return
	}

	var saved int64
	database.DB.Model(&content.SavedNutritionPlan{}).
		Where("user_id = ? AND nutrition_plan_id = ?", userID, plan.ID).
		Count(&saved)

	c.JSON(http.StatusOK, PlanDetailDTO{
		PlanCardDTO: toCard(plan, false),
		Description: plan.Description,
		Meals:       json.RawMessage(plan.Meals),
		Macros:      json.RawMessage(plan.Macros),
		Saved:       saved > 0,
	})
}

func withinFreeWindow(planID uint, limit int) bool {
	var ids []uint
	if err := database.DB.Model(&content.NutritionPlan{}).
		Order("created_at DESC").
		Limit(limit).
		Pluck("id", &ids).Error; err != nil {
		return false
	}
	for _, id := range ids {
		if id == planID {
			return true
		}
	}
	return false
}

// POST /nutrition/:id/save
func SavePlan(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var plan content.NutritionPlan
	if err := database.DB.First(&plan, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Nutrition plan not found"})
		return
	}

	var existing int64
	database.DB.Model(&content.SavedNutritionPlan{}).
		Where("user_id = ? AND nutrition_plan_id = ?", userID, plan.ID).
		Count(&existing)
	if existing > 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Already saved"})
		return
	}

	saved := content.SavedNutritionPlan{UserID: userID, NutritionPlanID: plan.ID}
	if err := database.DB.Create(&saved).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save plan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Plan saved"})
}

// DELETE /nutrition/:id/save
func UnsavePlan(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := database.DB.
		Where("user_id = ? AND nutrition_plan_id = ?", userID, c.Param("id")).
		Delete(&content.SavedNutritionPlan{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unsave plan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Plan removed from saved"})
}

// GET /nutrition/saved
func ListSavedPlans(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var saved []content.SavedNutritionPlan
	if err := database.DB.Preload("NutritionPlan").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&saved).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load saved plans"})
		return
	}

	out := make([]PlanCardDTO, 0, len(saved))
	for _, s := range saved {
		out = append(out, toCard(s.NutritionPlan, false))
	}
	c.JSON(http.StatusOK, gin.H{"plans": out})
}

/* ---------------- admin CRUD ---------------- */

func planFromInput(input PlanInput) (content.NutritionPlan, string) {
	// free-text JSON fields are parsed-or-rejected before they hit the row
	if _, err := content.ParseMeals(input.Meals); err != nil {
		return content.NutritionPlan{}, err.Error()
	}
	if _, err := content.ParseMacros(input.Macros); err != nil {
		return content.NutritionPlan{}, err.Error()
	}

	return content.NutritionPlan{
		Title:          input.Title,
		Description:    input.Description,
		Category:       input.Category,
		GoalTag:        input.GoalTag,
		CaloriesPerDay: input.CaloriesPerDay,
		ImageURL:       input.ImageURL,
		Tags:           input.Tags,
		Meals:          datatypes.JSON(input.Meals),
		Macros:         datatypes.JSON(input.Macros),
	}, ""
}

// POST /admin/nutrition
func CreatePlan(c *gin.Context) {
	var input PlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, msg := planFromInput(input)
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	if err := database.DB.Create(&plan).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create nutrition plan"})
		return
	}

	notify.Broadcast("nutrition_plans", notify.ActionInsert)
	c.JSON(http.StatusCreated, gin.H{"id": plan.ID})
}

// PUT /admin/nutrition/:id
func UpdatePlan(c *gin.Context) {
	var input PlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var plan content.NutritionPlan
	if err := database.DB.First(&plan, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Nutrition plan not found"})
		return
	}

	updated, msg := planFromInput(input)
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	updated.ID = plan.ID
	updated.CreatedAt = plan.CreatedAt

	if err := database.DB.Save(&updated).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update nutrition plan"})
		return
	}

	notify.Broadcast("nutrition_plans", notify.ActionUpdate)
	c.JSON(http.StatusOK, gin.H{"message": "Nutrition plan updated"})
}

// DELETE /admin/nutrition/:id
// Same two-statement delete as workouts; the join cleanup is not atomic
// with the parent delete.
func DeletePlan(c *gin.Context) {
	var plan content.NutritionPlan
	if err := database.DB.First(&plan, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Nutrition plan not found"})
		return
	}

	if err := database.DB.Delete(&plan).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete nutrition plan"})
		return
	}

	if err := database.DB.Where("nutrition_plan_id = ?", plan.ID).Delete(&content.SavedNutritionPlan{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Plan deleted but saved references were not cleaned up"})
		return
	}

	notify.Broadcast("nutrition_plans", notify.ActionDelete)
	c.JSON(http.StatusOK, gin.H{"message": "Nutrition plan deleted"})
}
