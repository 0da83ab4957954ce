package cas

import "errors"

var (
	// ErrNotFound indicates no content exists for the given pointer.
	ErrNotFound = errors.New("cas: content not found")

	// ErrInvalidPointer indicates the pointer is not a valid CID string.
	ErrInvalidPointer = errors.New("cas: invalid content pointer")

	// ErrEmptyContent indicates an attempt to store empty content.
	ErrEmptyContent = errors.New("cas: content is empty")

	// ErrInvalidBaseDir indicates the base directory path is invalid.
	ErrInvalidBaseDir = errors.New("cas: invalid base directory")

	// ErrIOFailure indicates a file read/write error.
	ErrIOFailure = errors.New("cas: I/O failure")
)
