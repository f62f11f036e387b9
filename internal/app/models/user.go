package models

import "time"

// SubscriptionStatus is the single source of truth for entitlement. The
// values partition into a limited bucket (free, canceled) and an unlimited
// bucket (premium, active, trialing). "canceled" is kept distinct from
// "free" for display and history, but grants the same entitlements.
type SubscriptionStatus string

const (
	StatusFree     SubscriptionStatus = "free"
	StatusPremium  SubscriptionStatus = "premium"
	StatusActive   SubscriptionStatus = "active"
	StatusTrialing SubscriptionStatus = "trialing"
	StatusCanceled SubscriptionStatus = "canceled"
)

// UserAccount is the app user and its entitlement state. Status transitions
// happen only through the subscription service; nothing else writes it.
type UserAccount struct {
	UserID string
	Email  string

	Status SubscriptionStatus

	// CustomerID and SubscriptionID reference the external billing subject.
	// Empty until the first successful upgrade.
	CustomerID     string
	SubscriptionID string

	PreferredLanguage string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DemoUser returns the default identity used in the absence of real auth.
func DemoUser(now time.Time) *UserAccount {
	return &UserAccount{
		UserID:            "demo-user",
		Email:             "demo@pocketlegal.com",
		Status:            StatusFree,
		PreferredLanguage: "en",
		CreatedAt:         now.UTC(),
		UpdatedAt:         now.UTC(),
	}
}
