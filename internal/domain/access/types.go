package access

// Unlimited is the sentinel limit for admins and premium subscribers.
const Unlimited = -1

// FreeTierLimit caps how many library items a free user can open.
const FreeTierLimit = 3

type Policy struct {
	IsAdmin          bool `json:"is_admin"`
	HasPremiumAccess bool `json:"has_premium_access"`
	WorkoutLimit     int  `json:"workout_limit"`
	NutritionLimit   int  `json:"nutrition_limit"`
}
