// Package storage routes finalized recording blobs to a destination.
//
// Durable storage is an S3-compatible bucket and is reserved for accounts
// with premium access. Every account can fall back to session-scoped local
// storage, so a finished recording is never lost because of a network or
// entitlement condition. The Router makes the placement decision; callers
// only see the resulting RecordingRef.
package storage
