// Package remote mirrors the local database to the hosted Postgres backend.
//
// The remote copy is write-behind: every mutation commits locally first and a
// background reconciler pushes it here. Reads never come back through this
// package, so a failed or delayed push degrades durability, not the app.
package remote
