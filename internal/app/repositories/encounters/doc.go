// Package encounters provides the local persistence layer for documented
// encounters.
//
// The package defines a Repository interface for CRUD and query operations on
// Encounter models (see internal/app/models). A SQLite-backed implementation
// (SQLiteRepository) persists data using a dbx.DBTX (either *sql.DB or
// *sql.Tx).
//
// The local database is the source of truth for the app: listings, counts and
// the entitlement check all read from here, never from the remote copy.
// Listings are returned most recent first.
package encounters
