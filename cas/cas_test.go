package cas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempFileStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	return store
}

// ---------------------------------------------------------------------------
// Pointer tests
// ---------------------------------------------------------------------------

func TestPointerForData_Deterministic(t *testing.T) {
	p1, err := PointerForData([]byte("hello"))
	require.NoError(t, err)
	p2, err := PointerForData([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, p1, p2)

	p3, err := PointerForData([]byte("world"))
	require.NoError(t, err)
	assert.NotEqual(t, p1, p3)
}

func TestPointerForData_CIDv1Raw(t *testing.T) {
	p, err := PointerForData([]byte("hello"))
	require.NoError(t, err)
	// CIDv1 raw/sha2-256 strings are base32 and start with "baf".
	assert.True(t, len(p) > 3 && p[:3] == "baf", "unexpected pointer form: %s", p)
	assert.NoError(t, ValidatePointer(p))
}

func TestValidatePointer_Invalid(t *testing.T) {
	assert.ErrorIs(t, ValidatePointer(""), ErrInvalidPointer)
	assert.ErrorIs(t, ValidatePointer("not-a-cid"), ErrInvalidPointer)
	assert.ErrorIs(t, ValidatePointer("../../etc/passwd"), ErrInvalidPointer)
}

// ---------------------------------------------------------------------------
// FileStore tests
// ---------------------------------------------------------------------------

func TestFileStore_PutGetRoundTrip(t *testing.T) {
	store := tempFileStore(t)

	want := []byte("some file bytes")
	pointer, err := store.Put(want)
	require.NoError(t, err)

	wantPointer, err := PointerForData(want)
	require.NoError(t, err)
	assert.Equal(t, wantPointer, pointer)

	got, err := store.Get(pointer)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFileStore_PutIdempotent(t *testing.T) {
	store := tempFileStore(t)

	data := []byte("same bytes")
	p1, err := store.Put(data)
	require.NoError(t, err)
	p2, err := store.Put(data)
	require.NoError(t, err)
	assert.Equal(t, p1, p2)

	pointers, err := store.List()
	require.NoError(t, err)
	assert.Len(t, pointers, 1)
}

func TestFileStore_PutEmpty(t *testing.T) {
	store := tempFileStore(t)
	_, err := store.Put(nil)
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestFileStore_GetNotFound(t *testing.T) {
	store := tempFileStore(t)

	pointer, err := PointerForData([]byte("never stored"))
	require.NoError(t, err)

	_, err = store.Get(pointer)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_GetInvalidPointer(t *testing.T) {
	store := tempFileStore(t)
	_, err := store.Get("bogus")
	assert.ErrorIs(t, err, ErrInvalidPointer)
}

func TestFileStore_Has(t *testing.T) {
	store := tempFileStore(t)

	pointer, err := store.Put([]byte("present"))
	require.NoError(t, err)

	ok, err := store.Has(pointer)
	require.NoError(t, err)
	assert.True(t, ok)

	absent, err := PointerForData([]byte("absent"))
	require.NoError(t, err)
	ok, err = store.Has(absent)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_Delete(t *testing.T) {
	store := tempFileStore(t)

	pointer, err := store.Put([]byte("doomed"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(pointer))

	_, err = store.Get(pointer)
	assert.ErrorIs(t, err, ErrNotFound)

	err = store.Delete(pointer)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_List(t *testing.T) {
	store := tempFileStore(t)

	p1, err := store.Put([]byte("one"))
	require.NoError(t, err)
	p2, err := store.Put([]byte("two"))
	require.NoError(t, err)

	pointers, err := store.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{p1, p2}, pointers)
}

func TestNewFileStore_EmptyBaseDir(t *testing.T) {
	_, err := NewFileStore("")
	assert.ErrorIs(t, err, ErrInvalidBaseDir)
}
