package subscriptions

import (
	"time"

	"fitness-app/internal/domain/users"
)

// Plan is the checkout allow-list: only price ids stored here can be bought.
type Plan struct {
	ID            uint `gorm:"primaryKey"`
	Name          string
	PriceEUR      float64
	StripePriceID string `gorm:"column:stripe_price_id;not null;uniqueIndex:idx_plans_stripe_price_id"`
	Interval      string
	Tier          string `gorm:"column:tier"` // "free" | "premium"
}

// Subscription is a local cache of the billing provider's state.
// Authority for truth lives in Stripe; webhooks refresh this row.
type Subscription struct {
	ID     uint       `gorm:"primaryKey"`
	UserID uint       `gorm:"index:idx_subscriptions_user_id"`
	User   users.User `gorm:"constraint:OnDelete:CASCADE"`

	PlanTag  string `gorm:"column:plan_tag"`
	IsActive bool

	StartedAt *time.Time
	ExpiresAt *time.Time

	StripeSubscriptionID *string `gorm:"uniqueIndex:idx_subscriptions_stripe_sub_id"`
	StripeStatus         *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	TierFree    = "free"
	TierPremium = "premium"
)

// Active reports whether the cached row still grants paid access at now.
func (s *Subscription) Active(now time.Time) bool {
	if s == nil || !s.IsActive {
		return false
	}
	if s.ExpiresAt != nil && now.After(*s.ExpiresAt) {
		return false
	}
	return true
}
