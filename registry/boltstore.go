package registry

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"
)

var bucketRecords = []byte("records")

// BoltStore is a durable RecordStore backed by a bbolt database.
// Each owner gets a sub-bucket under the records bucket; record keys are
// 8-byte big-endian sequence numbers, so cursor order is append order.
type BoltStore struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ RecordStore = (*BoltStore)(nil)

// OpenBoltStore opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("registry: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("registry: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketRecords); err != nil {
			return fmt.Errorf("boltstore: create bucket %q: %w", bucketRecords, err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("registry: create buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// seqKey encodes a sequence number as an 8-byte big-endian key so bbolt
// cursor order matches append order.
func seqKey(seq uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, seq)
	return k
}

// encodeGob serializes a value using gob encoding.
func encodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeGob deserializes gob-encoded data into a value.
func decodeGob(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

// Append adds rec to the end of owner's sequence. The owner's sub-bucket is
// created on first append; the whole operation is one bbolt write
// transaction, so a failed append leaves nothing behind.
func (s *BoltStore) Append(owner string, rec *FileRecord) error {
	if rec == nil {
		return fmt.Errorf("%w: file record", ErrNilRecord)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		ob, err := tx.Bucket(bucketRecords).CreateBucketIfNotExists([]byte(owner))
		if err != nil {
			return fmt.Errorf("boltstore: create owner bucket: %w", err)
		}

		seq, err := ob.NextSequence()
		if err != nil {
			return fmt.Errorf("boltstore: next sequence: %w", err)
		}

		data, err := encodeGob(rec)
		if err != nil {
			return fmt.Errorf("encode record: %w", err)
		}

		if err := ob.Put(seqKey(seq), data); err != nil {
			return fmt.Errorf("boltstore: put record: %w", err)
		}
		return nil
	})
}

// List returns all records appended by owner, in append order. An owner
// with no records yields an empty slice, never an error.
func (s *BoltStore) List(owner string) ([]*FileRecord, error) {
	records := []*FileRecord{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		ob := tx.Bucket(bucketRecords).Bucket([]byte(owner))
		if ob == nil {
			return nil
		}
		return ob.ForEach(func(k, v []byte) error {
			var rec FileRecord
			if err := decodeGob(v, &rec); err != nil {
				return fmt.Errorf("boltstore: decode record: %w", err)
			}
			records = append(records, &rec)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("registry: list records: %w", err)
	}
	return records, nil
}

// Count returns the number of records stored for owner.
func (s *BoltStore) Count(owner string) (uint64, error) {
	var count uint64
	err := s.db.View(func(tx *bbolt.Tx) error {
		ob := tx.Bucket(bucketRecords).Bucket([]byte(owner))
		if ob == nil {
			return nil
		}
		count = uint64(ob.Stats().KeyN)
		return nil
	})
	return count, err
}

// Owners returns all owner addresses that have appended at least one record.
func (s *BoltStore) Owners() ([]string, error) {
	var owners []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRecords).ForEachBucket(func(k []byte) error {
			owners = append(owners, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("registry: list owners: %w", err)
	}
	return owners, nil
}
