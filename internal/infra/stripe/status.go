package stripe

import "strings"

// Stripe-ish normalization used ONLY for the subscription cache row.
func NormalizeStripeStatus(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return "none"
	}
	switch strings.TrimSpace(*s) {
	case "active":
		return "active"
	case "trialing":
		return "trialing"
	case "past_due", "unpaid":
		return "past_due"
	case "canceled", "incomplete_expired":
		return "canceled"
	default:
		return strings.TrimSpace(*s)
	}
}

// GrantsAccess reports whether a normalized status keeps the cached
// subscription row active.
func GrantsAccess(status string) bool {
	return status == "active" || status == "trialing"
}
