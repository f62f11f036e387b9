package models

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_MergesOnlyProvidedFields(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	e := Encounter{
		ID:        "e1",
		UserID:    "u1",
		Timestamp: created,
		Type:      TypeTrafficStop,
		Location:  "Downtown, Main St",
		Notes:     "initial",
	}

	notes := "amended"
	dur := int64(42)
	now := created.Add(time.Hour)
	e.Apply(EncounterPatch{Notes: &notes, Duration: &dur}, now)

	want := Encounter{
		ID:        "e1",
		UserID:    "u1",
		Timestamp: created,
		UpdatedAt: now,
		Type:      TypeTrafficStop,
		Location:  "Downtown, Main St",
		Notes:     "amended",
		Duration:  42,
	}
	if diff := cmp.Diff(want, e); diff != "" {
		t.Fatalf("unexpected encounter after patch (-want +got):\n%s", diff)
	}
}

func TestApply_NeverTouchesIdentity(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	e := Encounter{ID: "e1", UserID: "u1", Timestamp: created}

	typ := TypeArrest
	loc := "5th Ave"
	e.Apply(EncounterPatch{Type: &typ, Location: &loc}, created.Add(time.Minute))

	require.Equal(t, "e1", e.ID)
	require.Equal(t, "u1", e.UserID)
	require.Equal(t, created, e.Timestamp)
	assert.Equal(t, TypeArrest, e.Type)
	assert.Equal(t, "5th Ave", e.Location)
}

func TestRecordingRef_Durable(t *testing.T) {
	var nilRef *RecordingRef
	assert.False(t, nilRef.Durable())
	assert.False(t, (&RecordingRef{Kind: RefLocal, URI: "local://x"}).Durable())
	assert.True(t, (&RecordingRef{Kind: RefDurable, URI: "https://gw/abc", StorageKey: "abc"}).Durable())
}
