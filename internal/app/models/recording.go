package models

// RefKind tells whether a recording reference survives the session.
type RefKind string

const (
	// RefLocal is a session-scoped handle. The bytes live only in the running
	// process and are gone after restart. This is the free-tier behavior, not
	// a failure mode.
	RefLocal RefKind = "local"

	// RefDurable points at content-addressed remote storage.
	RefDurable RefKind = "durable"
)

// RecordingRef is an opaque reference to captured media.
type RecordingRef struct {
	Kind RefKind

	// URI is either a local handle ("local://<id>") or the durable gateway URL.
	URI string

	// StorageKey is the content-addressed key in remote storage, used for
	// unpinning on delete. Empty for local references.
	StorageKey string
}

// Durable reports whether the reference points at remote storage.
func (r *RecordingRef) Durable() bool {
	return r != nil && r.Kind == RefDurable
}
