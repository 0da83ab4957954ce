package cas

import (
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// PointerForData returns the content pointer for data: a CIDv1 string with
// the "raw" multicodec and a sha2-256 multihash.
func PointerForData(data []byte) (string, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		// multihash.Sum only errors for unknown codes; SHA2_256 with default
		// length should be unreachable.
		return "", fmt.Errorf("cas: hash content: %w", err)
	}
	return cid.NewCidV1(cid.Raw, sum).String(), nil
}

// ValidatePointer checks that pointer parses as a CID. The registry never
// calls this; it only guards cas keys so arbitrary strings cannot become
// filesystem paths.
func ValidatePointer(pointer string) error {
	if pointer == "" {
		return fmt.Errorf("%w: empty", ErrInvalidPointer)
	}
	if _, err := cid.Decode(pointer); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidPointer, pointer, err)
	}
	return nil
}
