package identity

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/argon2"
)

const (
	// Argon2id parameters for key file encryption.
	Argon2Time        = 3
	Argon2Memory      = 64 * 1024 // 64 MB
	Argon2Parallelism = 4
	Argon2KeyLen      = 32

	// Encryption format sizes.
	SaltLen     = 16
	NonceLen    = 12
	ChecksumLen = 4
)

// EncryptKey encrypts raw private key bytes with Argon2id + AES-256-GCM.
//
// Output format: salt(16B) || nonce(12B) || AES-GCM(argon2id(passphrase,salt), nonce, key||checksum)
//
// The checksum is SHA256(key)[:4] for verifying correct decryption.
func EncryptKey(keyBytes []byte, passphrase string) ([]byte, error) {
	if len(keyBytes) == 0 {
		return nil, fmt.Errorf("%w: private key bytes", ErrNilKey)
	}

	salt := make([]byte, SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("identity: generate salt: %w", err)
	}

	derivedKey := argon2.IDKey(
		[]byte(passphrase),
		salt,
		Argon2Time,
		Argon2Memory,
		Argon2Parallelism,
		Argon2KeyLen,
	)

	keyHash := sha256.Sum256(keyBytes)
	checksum := keyHash[:ChecksumLen]

	plaintext := make([]byte, len(keyBytes)+ChecksumLen)
	copy(plaintext, keyBytes)
	copy(plaintext[len(keyBytes):], checksum)

	block, err := aes.NewCipher(derivedKey)
	if err != nil {
		return nil, fmt.Errorf("identity: AES cipher creation failed: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("identity: GCM creation failed: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("identity: generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)

	result := make([]byte, 0, SaltLen+NonceLen+len(ciphertext))
	result = append(result, salt...)
	result = append(result, nonce...)
	result = append(result, ciphertext...)

	return result, nil
}

// DecryptKey decrypts key file bytes produced by EncryptKey.
//
// Input format: salt(16B) || nonce(12B) || ciphertext
func DecryptKey(encrypted []byte, passphrase string) ([]byte, error) {
	minLen := SaltLen + NonceLen + ChecksumLen
	if len(encrypted) < minLen {
		return nil, ErrKeyFileCorrupt
	}

	salt := encrypted[:SaltLen]
	nonce := encrypted[SaltLen : SaltLen+NonceLen]
	ciphertext := encrypted[SaltLen+NonceLen:]

	derivedKey := argon2.IDKey(
		[]byte(passphrase),
		salt,
		Argon2Time,
		Argon2Memory,
		Argon2Parallelism,
		Argon2KeyLen,
	)

	block, err := aes.NewCipher(derivedKey)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	if len(plaintext) < ChecksumLen {
		return nil, ErrDecryptionFailed
	}

	keyBytes := plaintext[:len(plaintext)-ChecksumLen]
	storedChecksum := plaintext[len(plaintext)-ChecksumLen:]

	keyHash := sha256.Sum256(keyBytes)
	for i := 0; i < ChecksumLen; i++ {
		if storedChecksum[i] != keyHash[i] {
			return nil, ErrDecryptionFailed
		}
	}

	return keyBytes, nil
}

// SaveKeyFile encrypts the identity's private key and writes it to path.
// The parent directory is created if it does not exist.
func SaveKeyFile(path string, id *Identity, passphrase string) error {
	if id == nil || id.PrivateKey == nil {
		return fmt.Errorf("%w: private key", ErrNilKey)
	}
	encrypted, err := EncryptKey(id.PrivateKey.Serialize(), passphrase)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("identity: create key directory: %w", err)
	}
	if err := os.WriteFile(path, encrypted, 0600); err != nil {
		return fmt.Errorf("identity: write key file: %w", err)
	}
	return nil
}

// LoadKeyFile reads and decrypts the key file at path.
func LoadKeyFile(path, passphrase string, mainnet bool) (*Identity, error) {
	encrypted, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrKeyFileNotFound
		}
		return nil, fmt.Errorf("identity: read key file: %w", err)
	}
	keyBytes, err := DecryptKey(encrypted, passphrase)
	if err != nil {
		return nil, err
	}
	return FromPrivateKeyBytes(keyBytes, mainnet)
}
