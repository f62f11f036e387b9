// Package billing talks to the external subscription processor.
//
// The processor owns money; the app only owns the resulting status. Every
// status transition starts with a provider call here and is applied locally
// only after the call succeeds.
package billing

import "context"

// CheckoutSession is the provider-side handle created for an upgrade. URL is
// where the user completes payment; the IDs identify the billing subject
// afterwards.
type CheckoutSession struct {
	SessionID      string `json:"id"`
	URL            string `json:"url"`
	CustomerID     string `json:"customer"`
	SubscriptionID string `json:"subscription"`
}

// PaymentProvider abstracts the payment processor.
type PaymentProvider interface {
	// CreateCheckout starts a subscription checkout for the user.
	CreateCheckout(ctx context.Context, userID, email string) (*CheckoutSession, error)

	// Cancel ends an active subscription on the provider side.
	Cancel(ctx context.Context, subscriptionID string) error
}
