// Package identity implements caller identities for the registry.
//
// An identity is a secp256k1 keypair; its address string is the owner key
// under which the registry files records. The registry itself never touches
// keys — it reads the already-verified caller address from the request
// context (see context.go), exactly one per call.
package identity

import (
	"crypto/sha256"
	"fmt"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/bsv-blockchain/go-sdk/script"
)

// Identity is a caller keypair with its derived owner address.
type Identity struct {
	PrivateKey *ec.PrivateKey
	PublicKey  *ec.PublicKey
	Address    string
}

// New generates a fresh identity with a random private key.
// mainnet selects the address version byte.
func New(mainnet bool) (*Identity, error) {
	priv, err := ec.NewPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("identity: generate key: %w", err)
	}
	return FromPrivateKey(priv, mainnet)
}

// FromPrivateKey builds an identity around an existing private key.
func FromPrivateKey(priv *ec.PrivateKey, mainnet bool) (*Identity, error) {
	if priv == nil {
		return nil, fmt.Errorf("%w: private key", ErrNilKey)
	}
	pub := priv.PubKey()
	addr, err := script.NewAddressFromPublicKey(pub, mainnet)
	if err != nil {
		return nil, fmt.Errorf("identity: derive address: %w", err)
	}
	return &Identity{
		PrivateKey: priv,
		PublicKey:  pub,
		Address:    addr.AddressString,
	}, nil
}

// FromPrivateKeyBytes builds an identity from 32 raw private key bytes.
func FromPrivateKeyBytes(keyBytes []byte, mainnet bool) (*Identity, error) {
	if len(keyBytes) == 0 {
		return nil, fmt.Errorf("%w: private key bytes", ErrNilKey)
	}
	priv, _ := ec.PrivateKeyFromBytes(keyBytes)
	return FromPrivateKey(priv, mainnet)
}

// AddressFromPublicKey derives the owner address string for a public key.
// Verifiers use this to turn a proven key into the context caller.
func AddressFromPublicKey(pub *ec.PublicKey, mainnet bool) (string, error) {
	if pub == nil {
		return "", fmt.Errorf("%w: public key", ErrNilKey)
	}
	addr, err := script.NewAddressFromPublicKey(pub, mainnet)
	if err != nil {
		return "", fmt.Errorf("identity: derive address: %w", err)
	}
	return addr.AddressString, nil
}

// messageHash returns the double-SHA256 digest signed by Sign.
func messageHash(msg []byte) []byte {
	first := sha256.Sum256(msg)
	second := sha256.Sum256(first[:])
	return second[:]
}

// Sign signs msg (double-SHA256 then ECDSA) and returns the DER signature.
func (id *Identity) Sign(msg []byte) ([]byte, error) {
	if id == nil || id.PrivateKey == nil {
		return nil, fmt.Errorf("%w: private key", ErrNilKey)
	}
	sig, err := id.PrivateKey.Sign(messageHash(msg))
	if err != nil {
		return nil, fmt.Errorf("identity: sign: %w", err)
	}
	return sig.Serialize(), nil
}

// VerifyRequest checks a DER signature over msg against pubKeyBytes
// (compressed public key) and returns the caller address to bind into the
// request context. The registry never calls this; the boundary that
// authenticates requests does, then threads the address via WithCaller.
func VerifyRequest(msg, sigDER, pubKeyBytes []byte, mainnet bool) (string, error) {
	pub, err := ec.PublicKeyFromBytes(pubKeyBytes)
	if err != nil {
		return "", fmt.Errorf("%w: parse public key: %w", ErrBadSignature, err)
	}
	sig, err := ec.ParseDERSignature(sigDER)
	if err != nil {
		return "", fmt.Errorf("%w: parse signature: %w", ErrBadSignature, err)
	}
	if !sig.Verify(messageHash(msg), pub) {
		return "", ErrBadSignature
	}
	return AddressFromPublicKey(pub, mainnet)
}
