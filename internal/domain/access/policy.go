package access

import (
	"time"

	"fitness-app/internal/domain/subscriptions"
	"fitness-app/internal/domain/users"
)

// ComputePolicy derives the caller's content access from role + subscription.
// sub may be nil (no row, or the fetch failed upstream): that is the free
// tier, never an error.
func ComputePolicy(now time.Time, u users.User, sub *subscriptions.Subscription) Policy {
	if u.Role == users.RoleAdmin {
		return Policy{
			IsAdmin:          true,
			HasPremiumAccess: true,
			WorkoutLimit:     Unlimited,
			NutritionLimit:   Unlimited,
		}
	}

	if sub.Active(now) && sub.PlanTag == subscriptions.TierPremium {
		return Policy{
			HasPremiumAccess: true,
			WorkoutLimit:     Unlimited,
			NutritionLimit:   Unlimited,
		}
	}

	return Policy{
		WorkoutLimit:   FreeTierLimit,
		NutritionLimit: FreeTierLimit,
	}
}
