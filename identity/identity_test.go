package identity

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Identity and address tests
// ---------------------------------------------------------------------------

func TestNew_DerivesAddress(t *testing.T) {
	id, err := New(true)
	require.NoError(t, err)
	require.NotNil(t, id.PrivateKey)
	require.NotNil(t, id.PublicKey)
	assert.NotEmpty(t, id.Address)

	// Same key, same address.
	again, err := FromPrivateKey(id.PrivateKey, true)
	require.NoError(t, err)
	assert.Equal(t, id.Address, again.Address)
}

func TestNew_DistinctAddresses(t *testing.T) {
	a, err := New(true)
	require.NoError(t, err)
	b, err := New(true)
	require.NoError(t, err)
	assert.NotEqual(t, a.Address, b.Address)
}

func TestFromPrivateKeyBytes_RoundTrip(t *testing.T) {
	id, err := New(true)
	require.NoError(t, err)

	restored, err := FromPrivateKeyBytes(id.PrivateKey.Serialize(), true)
	require.NoError(t, err)
	assert.Equal(t, id.Address, restored.Address)
}

func TestFromPrivateKey_Nil(t *testing.T) {
	_, err := FromPrivateKey(nil, true)
	assert.ErrorIs(t, err, ErrNilKey)
}

func TestAddressFromPublicKey_MatchesIdentity(t *testing.T) {
	id, err := New(true)
	require.NoError(t, err)

	addr, err := AddressFromPublicKey(id.PublicKey, true)
	require.NoError(t, err)
	assert.Equal(t, id.Address, addr)
}

// ---------------------------------------------------------------------------
// Sign / VerifyRequest tests
// ---------------------------------------------------------------------------

func TestSignAndVerifyRequest(t *testing.T) {
	id, err := New(true)
	require.NoError(t, err)

	msg := []byte("append bafy123 report.pdf")
	sig, err := id.Sign(msg)
	require.NoError(t, err)

	addr, err := VerifyRequest(msg, sig, id.PublicKey.Compressed(), true)
	require.NoError(t, err)
	assert.Equal(t, id.Address, addr)
}

func TestVerifyRequest_WrongMessage(t *testing.T) {
	id, err := New(true)
	require.NoError(t, err)

	sig, err := id.Sign([]byte("original"))
	require.NoError(t, err)

	_, err = VerifyRequest([]byte("tampered"), sig, id.PublicKey.Compressed(), true)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestVerifyRequest_WrongKey(t *testing.T) {
	signer, err := New(true)
	require.NoError(t, err)
	other, err := New(true)
	require.NoError(t, err)

	msg := []byte("hello")
	sig, err := signer.Sign(msg)
	require.NoError(t, err)

	_, err = VerifyRequest(msg, sig, other.PublicKey.Compressed(), true)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestVerifyRequest_GarbageInputs(t *testing.T) {
	id, err := New(true)
	require.NoError(t, err)

	_, err = VerifyRequest([]byte("msg"), []byte{0x01, 0x02}, id.PublicKey.Compressed(), true)
	assert.ErrorIs(t, err, ErrBadSignature)

	sig, err := id.Sign([]byte("msg"))
	require.NoError(t, err)
	_, err = VerifyRequest([]byte("msg"), sig, []byte{0xff}, true)
	assert.ErrorIs(t, err, ErrBadSignature)
}

// ---------------------------------------------------------------------------
// Context binding tests
// ---------------------------------------------------------------------------

func TestCallerFromContext(t *testing.T) {
	ctx := WithCaller(context.Background(), "1BitcoinAddr")
	addr, err := CallerFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1BitcoinAddr", addr)
}

func TestCallerFromContext_Unbound(t *testing.T) {
	_, err := CallerFromContext(context.Background())
	assert.ErrorIs(t, err, ErrNoCaller)
}

func TestCallerFromContext_EmptyAddress(t *testing.T) {
	ctx := WithCaller(context.Background(), "")
	_, err := CallerFromContext(ctx)
	assert.ErrorIs(t, err, ErrNoCaller)
}

// ---------------------------------------------------------------------------
// Key file tests
// ---------------------------------------------------------------------------

func TestEncryptDecryptKey_RoundTrip(t *testing.T) {
	id, err := New(true)
	require.NoError(t, err)
	keyBytes := id.PrivateKey.Serialize()

	encrypted, err := EncryptKey(keyBytes, "correct horse")
	require.NoError(t, err)
	assert.NotContains(t, string(encrypted), string(keyBytes))

	decrypted, err := DecryptKey(encrypted, "correct horse")
	require.NoError(t, err)
	assert.Equal(t, keyBytes, decrypted)
}

func TestDecryptKey_WrongPassphrase(t *testing.T) {
	encrypted, err := EncryptKey([]byte("some key material"), "right")
	require.NoError(t, err)

	_, err = DecryptKey(encrypted, "wrong")
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestDecryptKey_Truncated(t *testing.T) {
	_, err := DecryptKey([]byte{0x01, 0x02, 0x03}, "pw")
	assert.ErrorIs(t, err, ErrKeyFileCorrupt)
}

func TestSaveLoadKeyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keys", "owner.key")

	id, err := New(true)
	require.NoError(t, err)

	require.NoError(t, SaveKeyFile(path, id, "pw"))

	loaded, err := LoadKeyFile(path, "pw", true)
	require.NoError(t, err)
	assert.Equal(t, id.Address, loaded.Address)
}

func TestLoadKeyFile_NotFound(t *testing.T) {
	_, err := LoadKeyFile(filepath.Join(t.TempDir(), "missing.key"), "pw", true)
	assert.ErrorIs(t, err, ErrKeyFileNotFound)
}
