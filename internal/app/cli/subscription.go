package cli

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/pocketlegal/pocketlegal/internal/app/entitlement"
	"github.com/pocketlegal/pocketlegal/internal/common"
)

// Status prints the account tier and how many more encounters the user may
// save.
func (a *App) Status(ctx context.Context) error {
	printlnFn("User:        ", a.user.UserID)
	printlnFn("Email:       ", a.user.Email)
	printlnFn("Subscription:", string(a.user.Status))

	remaining, err := a.encounters.Remaining(ctx, a.user)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if remaining < 0 {
		printlnFn("Encounters:   unlimited")
	} else {
		printlnFn(fmt.Sprintf("Encounters:   %d of %d free slot(s) left", remaining, entitlement.FreeEncounterLimit))
	}
	return nil
}

// Upgrade starts a premium subscription through the payment provider.
func (a *App) Upgrade(ctx context.Context) error {
	checkout, err := a.subs.Upgrade(ctx, a.user.UserID)
	if err != nil {
		if errors.Is(err, common.ErrSubscriptionOperation) {
			printlnFn("Could not upgrade:", err.Error())
			return err
		}
		log.Printf("error: %v", err)
		return err
	}

	user, err := a.subs.CurrentUser(ctx, a.user.UserID)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	a.user = user

	printlnFn("Subscription active. Recordings now upload to durable storage.")
	if checkout.URL != "" {
		printlnFn("Manage your subscription at:", checkout.URL)
	}
	return nil
}

// CancelSubscription cancels the premium subscription. Already saved
// encounters stay; new ones fall under the free limit again.
func (a *App) CancelSubscription(ctx context.Context) error {
	if err := a.subs.Cancel(ctx, a.user.UserID); err != nil {
		if errors.Is(err, common.ErrSubscriptionOperation) {
			printlnFn("Could not cancel:", err.Error())
			return err
		}
		log.Printf("error: %v", err)
		return err
	}

	user, err := a.subs.CurrentUser(ctx, a.user.UserID)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	a.user = user

	printlnFn("Subscription canceled. Saved encounters are kept; the free limit applies to new ones.")
	return nil
}
