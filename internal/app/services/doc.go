// Package services wires the encounter lifecycle together.
//
// Every mutation is local-first: it commits to the on-device database
// synchronously and is mirrored to the remote backend by a background
// reconciler. Remote failures never surface as operation errors; they are
// retried with backoff and, when exhausted, published as advisory events.
package services
