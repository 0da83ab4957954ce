package registry

import "errors"

var (
	// ErrAuthRequired indicates no verified caller identity is bound to the
	// request context. Operations refuse rather than default to a shared
	// anonymous owner.
	ErrAuthRequired = errors.New("registry: authentication required")

	// ErrStorageFailure indicates the record store could not complete an
	// append. The record is not visible and no event is emitted.
	ErrStorageFailure = errors.New("registry: storage failure")

	// ErrNilStore indicates the registry was constructed without a record store.
	ErrNilStore = errors.New("registry: nil record store")

	// ErrNilRecord indicates a nil record was passed to a record store.
	ErrNilRecord = errors.New("registry: nil record")
)
