package payment

import (
	"context"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/subscription"

	"github.com/muadel/muadel/ports"
)

// StripeEntitlements reports a user as privileged while they hold an
// active (or trialing) Stripe subscription. The userID passed to
// IsPrivileged is the Stripe customer ID recorded at signup.
type StripeEntitlements struct{}

// NewStripeEntitlements configures the Stripe client and returns the
// provider.
func NewStripeEntitlements(secretKey string) *StripeEntitlements {
	stripe.Key = secretKey
	return &StripeEntitlements{}
}

// IsPrivileged checks for an active subscription on the customer.
func (p *StripeEntitlements) IsPrivileged(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}

	params := &stripe.SubscriptionListParams{
		Customer: stripe.String(userID),
		Status:   stripe.String("all"),
	}
	params.Context = ctx
	params.Limit = stripe.Int64(10)

	it := subscription.List(params)
	for it.Next() {
		s := it.Subscription()
		if s.Status == stripe.SubscriptionStatusActive || s.Status == stripe.SubscriptionStatusTrialing {
			return true, nil
		}
	}
	if err := it.Err(); err != nil {
		return false, err
	}
	return false, nil
}

var _ ports.Entitlements = (*StripeEntitlements)(nil)
