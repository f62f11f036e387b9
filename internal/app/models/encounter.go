// Package models defines the data model for documented encounters and the
// user account that owns them.
package models

import "time"

// EncounterType classifies an interaction kind. The set is extensible: values
// outside the predefined constants are stored as-is.
type EncounterType string

const (
	TypeTrafficStop   EncounterType = "traffic-stop"
	TypeQuestioning   EncounterType = "questioning"
	TypeSearchWarrant EncounterType = "search-warrant"
	TypeArrest        EncounterType = "arrest"
	TypeDetention     EncounterType = "detention"
	TypeHomeVisit     EncounterType = "home-visit"
)

// UnknownLocation is the placeholder address used when no location could be
// attached to an encounter.
const UnknownLocation = "Unknown location"

// Coordinates is an optional geographic fix. Accuracy is a radius in meters;
// zero means unreported.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy,omitempty"`
}

// Encounter is one documented interaction. ID, UserID and Timestamp are
// assigned at creation and never change afterwards; every other field is
// amended only through the repository update path, which also refreshes
// UpdatedAt.
type Encounter struct {
	// ID is unique within a user's collection, assigned at creation.
	ID string

	// UserID is the owning account.
	UserID string

	// Timestamp is the creation time in UTC.
	Timestamp time.Time

	// UpdatedAt tracks the last amendment in UTC.
	UpdatedAt time.Time

	Type        EncounterType
	Location    string
	Coordinates *Coordinates
	Notes       string

	// Recording references the captured media, if any.
	Recording *RecordingRef

	// Duration is the recording length in whole seconds.
	Duration int64
}

// EncounterPatch carries the amendable fields of an Encounter. Nil pointers
// leave the corresponding field untouched.
type EncounterPatch struct {
	Type        *EncounterType
	Location    *string
	Coordinates *Coordinates
	Notes       *string
	Recording   *RecordingRef
	Duration    *int64
}

// Apply merges the patch into e and refreshes UpdatedAt. Identity fields are
// never touched.
func (e *Encounter) Apply(p EncounterPatch, now time.Time) {
	if p.Type != nil {
		e.Type = *p.Type
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.Coordinates != nil {
		e.Coordinates = p.Coordinates
	}
	if p.Notes != nil {
		e.Notes = *p.Notes
	}
	if p.Recording != nil {
		e.Recording = p.Recording
	}
	if p.Duration != nil {
		e.Duration = *p.Duration
	}
	e.UpdatedAt = now.UTC()
}
