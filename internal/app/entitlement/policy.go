// Package entitlement holds the pure policy deciding what a subscription
// tier permits. Functions here have no state and no side effects; callers
// must re-evaluate them with live inputs on every attempt, because both the
// encounter count and the subscription status can change between calls.
package entitlement

import "github.com/pocketlegal/pocketlegal/internal/app/models"

// FreeEncounterLimit is the number of encounters a limited (free/canceled)
// account may keep. Deleting an encounter frees capacity.
const FreeEncounterLimit = 1

// HasPremiumAccess reports whether the status falls in the unlimited bucket.
// "canceled" deliberately does not: it is entitlement-equivalent to free.
func HasPremiumAccess(status models.SubscriptionStatus) bool {
	switch status {
	case models.StatusPremium, models.StatusActive, models.StatusTrialing:
		return true
	default:
		return false
	}
}

// CanCreateEncounter decides whether a new encounter may be created given the
// current subscription status and the live encounter count. The count must
// come from the encounter repository, not from a cached view.
func CanCreateEncounter(status models.SubscriptionStatus, currentCount int) bool {
	if HasPremiumAccess(status) {
		return true
	}
	return currentCount < FreeEncounterLimit
}

// RemainingFreeEncounters returns how many more encounters a limited account
// may create; never negative.
func RemainingFreeEncounters(currentCount int) int {
	if rem := FreeEncounterLimit - currentCount; rem > 0 {
		return rem
	}
	return 0
}
