// Package common defines shared constants and sentinel errors used across
// PocketLegal components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Entitlement errors. Creating or saving an encounter was blocked by the
	// free-tier limit; recoverable by upgrading or deleting an encounter.
	ErrEntitlementDenied = errors.New("entitlement denied")

	// Capture errors.
	ErrDeviceAcquisition = errors.New("device acquisition failed")
	ErrCaptureState      = errors.New("invalid capture state")
	ErrCaptureBusy       = errors.New("capture already in progress")

	// Advisory errors. These never fail a local operation; they are surfaced
	// through the report channel as warnings.
	ErrLocationUnavailable = errors.New("location unavailable")
	ErrRemoteSync          = errors.New("remote sync failed")

	// Subscription errors. Upgrade/cancel did not complete; the subscription
	// status is left unchanged.
	ErrSubscriptionOperation = errors.New("subscription operation failed")

	// Generic/internal flow control.
	ErrInternal = errors.New("internal error")
)
