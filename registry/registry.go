package registry

import (
	"context"
	"fmt"

	"github.com/filedger/libfiledger-go/identity"
)

// Registry is the per-owner content-pointer registry.
//
// The caller identity is read exclusively from the request context
// (identity.WithCaller); it is never a parameter, so one caller cannot
// append to or list another owner's records. The record store is injected
// so the registry can be constructed and torn down per test.
type Registry struct {
	store    RecordStore
	notifier notifier
}

// New creates a Registry over the given record store.
func New(store RecordStore) (*Registry, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	return &Registry{store: store}, nil
}

// Subscribe registers a listener for append events. Listeners registered
// after an append do not see past events.
func (r *Registry) Subscribe(l Listener) {
	r.notifier.subscribe(l)
}

// Append records (pointer, name) under the caller's identity and returns
// the new record. The pointer and name are stored verbatim; empty strings
// are accepted.
//
// Returns ErrAuthRequired when no caller is bound to ctx, and
// ErrStorageFailure when persistence fails; in both cases nothing is stored
// and no event is emitted. On success exactly one event carrying
// (owner, pointer, name) is delivered to each listener before Append
// returns.
func (r *Registry) Append(ctx context.Context, pointer, name string) (*FileRecord, error) {
	owner, err := identity.CallerFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuthRequired, err)
	}

	rec := &FileRecord{
		Owner:   owner,
		Pointer: pointer,
		Name:    name,
	}

	if err := r.store.Append(owner, rec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	// The record is durable; notify after, never before.
	r.notifier.publish(Event{Owner: owner, Pointer: pointer, Name: name})

	return rec, nil
}

// List returns the caller's records in append order. A caller that has
// never appended receives an empty slice, not an error. Records of other
// owners are never returned.
func (r *Registry) List(ctx context.Context) ([]*FileRecord, error) {
	owner, err := identity.CallerFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuthRequired, err)
	}

	records, err := r.store.List(owner)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	if records == nil {
		records = []*FileRecord{}
	}
	return records, nil
}
