package users

import "time"

type UserDTO struct {
	ID         uint   `json:"id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	IsVerified bool   `json:"is_verified"`
}

type ProfileDTO struct {
	DisplayName string   `json:"display_name"`
	Gender      *string  `json:"gender,omitempty"`
	HeightCM    *float64 `json:"height_cm,omitempty"`
	WeightKG    *float64 `json:"weight_kg,omitempty"`
	GoalTag     *string  `json:"goal_tag,omitempty"`
	AvatarURL   *string  `json:"avatar_url,omitempty"`
}

type SubscriptionDTO struct {
	PlanTag   string     `json:"plan_tag"`
	IsActive  bool       `json:"is_active"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

type AccessDTO struct {
	IsAdmin          bool `json:"is_admin"`
	HasPremiumAccess bool `json:"has_premium_access"`
	WorkoutLimit     int  `json:"workout_limit"`
	NutritionLimit   int  `json:"nutrition_limit"`
}

type MeResponse struct {
	User         UserDTO          `json:"user"`
	Profile      ProfileDTO       `json:"profile"`
	Subscription *SubscriptionDTO `json:"subscription,omitempty"`
	Access       AccessDTO        `json:"access"`
}
