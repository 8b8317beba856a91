package access

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"fitness-app/internal/domain/subscriptions"
	"fitness-app/internal/domain/users"
)

func TestComputePolicyAdminBypassesLimits(t *testing.T) {
	now := time.Now()
	p := ComputePolicy(now, users.User{Role: users.RoleAdmin}, nil)

	assert.True(t, p.IsAdmin)
	assert.True(t, p.HasPremiumAccess)
	assert.Equal(t, Unlimited, p.WorkoutLimit)
	assert.Equal(t, Unlimited, p.NutritionLimit)
}

func TestComputePolicyPremiumSubscriber(t *testing.T) {
	now := time.Now()
	expiry := now.Add(24 * time.Hour)
	sub := &subscriptions.Subscription{
		PlanTag:   subscriptions.TierPremium,
		IsActive:  true,
		ExpiresAt: &expiry,
	}

	p := ComputePolicy(now, users.User{Role: users.RoleUser}, sub)

	assert.False(t, p.IsAdmin)
	assert.True(t, p.HasPremiumAccess)
	assert.Equal(t, Unlimited, p.WorkoutLimit)
	assert.Equal(t, Unlimited, p.NutritionLimit)
}

func TestComputePolicyExpiredSubscriptionFallsToFree(t *testing.T) {
	now := time.Now()
	expiry := now.Add(-time.Hour)
	sub := &subscriptions.Subscription{
		PlanTag:   subscriptions.TierPremium,
		IsActive:  true,
		ExpiresAt: &expiry,
	}

	p := ComputePolicy(now, users.User{Role: users.RoleUser}, sub)

	assert.False(t, p.HasPremiumAccess)
	assert.Equal(t, FreeTierLimit, p.WorkoutLimit)
}

func TestComputePolicyMissingSubscriptionDefaultsToFreeTier(t *testing.T) {
	p := ComputePolicy(time.Now(), users.User{Role: users.RoleUser}, nil)

	assert.False(t, p.IsAdmin)
	assert.False(t, p.HasPremiumAccess)
	assert.Equal(t, FreeTierLimit, p.WorkoutLimit)
	assert.Equal(t, FreeTierLimit, p.NutritionLimit)
}

func TestComputePolicyInactiveFlagIgnoresPlanTag(t *testing.T) {
	sub := &subscriptions.Subscription{PlanTag: subscriptions.TierPremium, IsActive: false}

	p := ComputePolicy(time.Now(), users.User{Role: users.RoleUser}, sub)

	assert.False(t, p.HasPremiumAccess)
	assert.Equal(t, FreeTierLimit, p.NutritionLimit)
}
