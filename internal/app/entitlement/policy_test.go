package entitlement

import (
	"testing"

	"github.com/pocketlegal/pocketlegal/internal/app/models"
	"github.com/stretchr/testify/assert"
)

func TestHasPremiumAccess(t *testing.T) {
	tests := []struct {
		status models.SubscriptionStatus
		want   bool
	}{
		{models.StatusPremium, true},
		{models.StatusActive, true},
		{models.StatusTrialing, true},
		{models.StatusFree, false},
		{models.StatusCanceled, false},
		{models.SubscriptionStatus("past_due"), false},
		{models.SubscriptionStatus(""), false},
	}
	for _, tc := range tests {
		assert.Equalf(t, tc.want, HasPremiumAccess(tc.status), "status %q", tc.status)
	}
}

func TestCanCreateEncounter_UnlimitedIgnoresCount(t *testing.T) {
	for _, status := range []models.SubscriptionStatus{models.StatusPremium, models.StatusActive, models.StatusTrialing} {
		for _, count := range []int{0, 1, 5, 1000} {
			assert.Truef(t, CanCreateEncounter(status, count), "status=%s count=%d", status, count)
		}
	}
}

func TestCanCreateEncounter_FreeTierLimit(t *testing.T) {
	assert.True(t, CanCreateEncounter(models.StatusFree, 0))
	assert.False(t, CanCreateEncounter(models.StatusFree, 1))
	assert.False(t, CanCreateEncounter(models.StatusFree, 2))

	// canceled gates exactly like free
	assert.True(t, CanCreateEncounter(models.StatusCanceled, 0))
	assert.False(t, CanCreateEncounter(models.StatusCanceled, 1))
}

func TestCanCreateEncounter_DeletionRestoresCapacity(t *testing.T) {
	count := 1
	assert.False(t, CanCreateEncounter(models.StatusFree, count))

	// user deletes their single encounter
	count--
	assert.True(t, CanCreateEncounter(models.StatusFree, count))
}

func TestRemainingFreeEncounters(t *testing.T) {
	assert.Equal(t, 1, RemainingFreeEncounters(0))
	assert.Equal(t, 0, RemainingFreeEncounters(1))
	assert.Equal(t, 0, RemainingFreeEncounters(7))
}
