package cas

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore implements Store using the local filesystem.
// Objects are stored at: {baseDir}/{shard}/{pointer}
// where shard is the last two characters of the pointer (CID strings share a
// common prefix, so leading characters would put everything in one shard).
type FileStore struct {
	baseDir string
	mu      sync.RWMutex
}

// Compile-time interface check.
var _ Store = (*FileStore)(nil)

// NewFileStore creates a new file-based content store.
// baseDir is typically "~/.filedger/blobs". The directory is created if it
// does not exist.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		return nil, ErrInvalidBaseDir
	}

	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}

	return &FileStore{
		baseDir: baseDir,
	}, nil
}

// PointerToPath converts a pointer to its filesystem path under baseDir.
func PointerToPath(baseDir, pointer string) string {
	shard := pointer[len(pointer)-2:]
	return filepath.Join(baseDir, shard, pointer)
}

// shardDir returns the shard directory path for a pointer.
func (fs *FileStore) shardDir(pointer string) string {
	return filepath.Join(fs.baseDir, pointer[len(pointer)-2:])
}

// filePath returns the full file path for a pointer.
func (fs *FileStore) filePath(pointer string) string {
	return PointerToPath(fs.baseDir, pointer)
}

// Put stores data and returns its pointer. Storing bytes that are already
// present is a no-op returning the same pointer.
func (fs *FileStore) Put(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyContent
	}

	pointer, err := PointerForData(data)
	if err != nil {
		return "", err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	path := fs.filePath(pointer)
	if _, err := os.Stat(path); err == nil {
		// Pointer is content-derived, so an existing object holds these bytes.
		return pointer, nil
	}

	if err := os.MkdirAll(fs.shardDir(pointer), 0700); err != nil {
		return "", fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("%w: %w", ErrIOFailure, err)
	}

	return pointer, nil
}

// Get retrieves the bytes for a pointer.
func (fs *FileStore) Get(pointer string) ([]byte, error) {
	if err := ValidatePointer(pointer); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	data, err := os.ReadFile(fs.filePath(pointer))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}

	return data, nil
}

// Has checks whether content exists for a pointer.
func (fs *FileStore) Has(pointer string) (bool, error) {
	if err := ValidatePointer(pointer); err != nil {
		return false, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	_, err := os.Stat(fs.filePath(pointer))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}

	return true, nil
}

// Delete removes content by pointer. Content-addressed storage tolerates
// unreferenced objects, so this exists only for maintenance.
func (fs *FileStore) Delete(pointer string) error {
	if err := ValidatePointer(pointer); err != nil {
		return err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	err := os.Remove(fs.filePath(pointer))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}

	return nil
}

// List returns all stored pointers by scanning the shard directories.
func (fs *FileStore) List() ([]string, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	var result []string

	entries, err := os.ReadDir(fs.baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		shardName := entry.Name()
		if len(shardName) != 2 {
			continue
		}

		files, err := os.ReadDir(filepath.Join(fs.baseDir, shardName))
		if err != nil {
			continue
		}

		for _, f := range files {
			if f.IsDir() {
				continue
			}
			if ValidatePointer(f.Name()) != nil {
				continue // skip foreign files
			}
			result = append(result, f.Name())
		}
	}

	return result, nil
}
