package stripewebhooks

import (
	"time"

	"fitness-app/database"
	"fitness-app/internal/domain/subscriptions"
	stripestatus "fitness-app/internal/infra/stripe"

	"github.com/stripe/stripe-go/v75"
)

func handleSubscriptionDeleted(sub *stripe.Subscription) error {
	if sub.ID == "" {
		return nil
	}

	var cached subscriptions.Subscription
	if err := database.DB.Where("stripe_subscription_id = ?", sub.ID).First(&cached).Error; err != nil {
		return nil
	}

	rawStatus := string(sub.Status)
	status := stripestatus.NormalizeStripeStatus(&rawStatus)
	periodEnd := time.Unix(sub.CurrentPeriodEnd, 0)

	cached.IsActive = false
	cached.StripeStatus = &status
	cached.ExpiresAt = &periodEnd

	return database.DB.Save(&cached).Error
}
