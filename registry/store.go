// Package registry implements the per-owner content-pointer registry: an
// append-only index of file records keyed by owner address, with list
// retrieval scoped to the caller and a notification event per append.
package registry

// FileRecord is one content pointer owned by exactly one identity.
// Records are immutable after creation; their position in the owner's
// sequence reflects insertion order and never changes.
type FileRecord struct {
	// Owner is the authenticated identity that appended the record.
	Owner string

	// Pointer is the opaque content-store identifier. The registry never
	// inspects or validates its format.
	Pointer string

	// Name is the caller-supplied display name. Informational only, not
	// unique, not validated.
	Name string
}

// RecordStore is the injected persistence abstraction behind a Registry.
//
// Contract:
//   - Append is atomic: the record is either fully stored or not stored.
//   - Same-owner appends are serialized; appends for different owners may
//     proceed concurrently.
//   - List returns a consistent snapshot of the owner's records in append
//     order, and an empty slice for an owner with no records.
type RecordStore interface {
	// Append adds rec to the end of owner's sequence, creating the
	// sequence if absent.
	Append(owner string, rec *FileRecord) error

	// List returns all records appended by owner, in append order.
	List(owner string) ([]*FileRecord, error)
}
