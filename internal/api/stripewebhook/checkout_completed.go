package stripewebhooks

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"fitness-app/database"
	"fitness-app/internal/domain/subscriptions"
	"fitness-app/internal/domain/users"
	stripestatus "fitness-app/internal/infra/stripe"

	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	"github.com/stripe/stripe-go/v75/subscription"
	"gorm.io/gorm"
)

func handleCheckoutSessionCompleted(session *stripe.CheckoutSession) error {
	fullSession, err := checkoutsession.Get(session.ID, &stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Expand: []*string{
				stripe.String("subscription"),
				stripe.String("customer"),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to fetch expanded checkout session: %w", err)
	}

	if fullSession.Subscription == nil || fullSession.Subscription.ID == "" {
		return errors.New("checkout session missing subscription")
	}
	subscriptionID := fullSession.Subscription.ID

	subData, err := subscription.Get(subscriptionID, nil)
	if err != nil || subData == nil || subData.Items == nil || len(subData.Items.Data) == 0 || subData.Items.Data[0].Price == nil {
		return fmt.Errorf("failed to fetch subscription items: %w", err)
	}

	userID, err := userIDFromSubscriptionOrRef(subData, fullSession.ClientReferenceID)
	if err != nil {
		return err
	}

	var user users.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	priceID := subData.Items.Data[0].Price.ID
	var plan subscriptions.Plan
	if err := database.DB.Where("stripe_price_id = ?", priceID).First(&plan).Error; err != nil {
		return fmt.Errorf("plan not found for stripe price_id=%s: %w", priceID, err)
	}

	if fullSession.Customer != nil && fullSession.Customer.ID != "" {
		if err := database.DB.Model(&users.User{}).
			Where("id = ?", user.ID).
			Update("stripe_customer_id", fullSession.Customer.ID).Error; err != nil {
			return fmt.Errorf("failed to store stripe customer: %w", err)
		}
	}

	rawStatus := string(subData.Status)
	status := stripestatus.NormalizeStripeStatus(&rawStatus)
	now := time.Now()
	periodEnd := time.Unix(subData.CurrentPeriodEnd, 0)

	return refreshSubscriptionCache(user.ID, subscriptionID, plan.Tier, status, &now, &periodEnd)
}

// refreshSubscriptionCache upserts the local cache row for a Stripe
// subscription id. Stripe remains the source of truth; this row only exists
// so access checks never call out to Stripe.
func refreshSubscriptionCache(userID uint, stripeSubID, planTag, status string, startedAt, expiresAt *time.Time) error {
	var cached subscriptions.Subscription
	err := database.DB.Where("stripe_subscription_id = ?", stripeSubID).First(&cached).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		cached = subscriptions.Subscription{
			UserID:               userID,
			StripeSubscriptionID: &stripeSubID,
		}
	case err != nil:
		return fmt.Errorf("load cached subscription %s: %w", stripeSubID, err)
	}

	cached.PlanTag = planTag
	cached.IsActive = stripestatus.GrantsAccess(status)
	cached.StripeStatus = &status
	if startedAt != nil {
		cached.StartedAt = startedAt
	}
	cached.ExpiresAt = expiresAt

	return database.DB.Save(&cached).Error
}

func userIDFromSubscriptionOrRef(sub *stripe.Subscription, clientRef string) (uint, error) {
	userIDStr := ""
	if sub.Metadata != nil {
		userIDStr = sub.Metadata["user_id"]
	}
	if userIDStr == "" {
		userIDStr = clientRef
	}
	if userIDStr == "" {
		return 0, errors.New("missing user_id (metadata.user_id or client_reference_id)")
	}

	uid64, err := strconv.ParseUint(userIDStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user_id %q: %w", userIDStr, err)
	}
	return uint(uid64), nil
}
