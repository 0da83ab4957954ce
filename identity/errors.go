package identity

import "errors"

var (
	// ErrNoCaller indicates no caller identity is bound to the context.
	ErrNoCaller = errors.New("identity: no caller bound to context")

	// ErrNilKey indicates a nil private or public key was supplied.
	ErrNilKey = errors.New("identity: nil key")

	// ErrBadSignature indicates signature verification failed.
	ErrBadSignature = errors.New("identity: signature verification failed")

	// ErrDecryptionFailed indicates wrong passphrase or corrupted key file data.
	ErrDecryptionFailed = errors.New("identity: key decryption failed (wrong passphrase or corrupted data)")

	// ErrKeyFileNotFound indicates the key file does not exist.
	ErrKeyFileNotFound = errors.New("identity: key file not found")

	// ErrKeyFileCorrupt indicates the key file is too short or malformed.
	ErrKeyFileCorrupt = errors.New("identity: key file corrupt")
)
