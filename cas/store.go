// Package cas provides local content-addressed storage for shared file data.
//
// Content is identified by a pointer: a CIDv1 string using the "raw"
// multicodec and a sha2-256 multihash, so the pointer is fully determined
// by the stored bytes.
package cas

// Store provides content-addressed storage keyed by pointer.
//
// Contract:
//   - Put is idempotent: storing the same bytes twice yields the same
//     pointer and a single stored object.
//   - Stored objects are immutable.
//   - Get returns ErrNotFound when the pointer is absent.
type Store interface {
	// Put stores data and returns its pointer.
	Put(data []byte) (string, error)

	// Get retrieves the bytes for a pointer.
	Get(pointer string) ([]byte, error)

	// Has checks whether content exists for a pointer.
	Has(pointer string) (bool, error)
}
