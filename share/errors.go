package share

import "errors"

var (
	// ErrNilCAS indicates the service was constructed without a content store.
	ErrNilCAS = errors.New("share: nil content store")

	// ErrNilRegistry indicates the service was constructed without a registry.
	ErrNilRegistry = errors.New("share: nil registry")

	// ErrUploadFailed indicates the content store rejected the bytes; the
	// registry append never ran.
	ErrUploadFailed = errors.New("share: content upload failed")
)
