package stripewebhooks

import (
	"fmt"
	"strconv"
	"time"

	"fitness-app/database"
	"fitness-app/internal/domain/subscriptions"
	stripestatus "fitness-app/internal/infra/stripe"

	"github.com/stripe/stripe-go/v75"
)

func handleSubscriptionUpdated(sub *stripe.Subscription) error {
	if sub.ID == "" || sub.Items == nil || len(sub.Items.Data) == 0 || sub.Items.Data[0].Price == nil {
		return fmt.Errorf("subscription missing id/items/price")
	}

	activePriceID := sub.Items.Data[0].Price.ID
	periodEnd := time.Unix(sub.CurrentPeriodEnd, 0)
	rawStatus := string(sub.Status)
	status := stripestatus.NormalizeStripeStatus(&rawStatus)

	userID := userIDFromMetadata(sub.Metadata)
	if userID == 0 {
		var cached subscriptions.Subscription
		if err := database.DB.Where("stripe_subscription_id = ?", sub.ID).First(&cached).Error; err != nil {
			// acknowledge to avoid Stripe retries if we never saw this subscription
			return nil
		}
		userID = cached.UserID
	}

	var plan subscriptions.Plan
	if err := database.DB.Where("stripe_price_id = ?", activePriceID).First(&plan).Error; err != nil {
		return nil
	}

	return refreshSubscriptionCache(userID, sub.ID, plan.Tier, status, nil, &periodEnd)
}

func userIDFromMetadata(md map[string]string) uint {
	if md == nil {
		return 0
	}
	s := md["user_id"]
	if s == "" {
		return 0
	}
	uid, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return uint(uid)
}
