// Package share is the shared business logic layer: it composes the content
// store, the registry, and the gateway resolver into the upload/list/fetch
// operations that front-ends call.
package share

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/filedger/libfiledger-go/cas"
	"github.com/filedger/libfiledger-go/config"
	"github.com/filedger/libfiledger-go/gateway"
	"github.com/filedger/libfiledger-go/registry"
)

// Service wires the content store, registry, and resolver together.
// Callers authenticate by binding an owner address to the context
// (identity.WithCaller); every method passes that context through to the
// registry unchanged.
type Service struct {
	CAS      cas.Store
	Registry *registry.Registry
	Resolver *gateway.Resolver
	DNS      gateway.DNSResolver

	store *registry.BoltStore // owned when built by Open; closed by Close
}

// New creates a Service from already-constructed components.
// Resolver may be nil; Fetch then reads from the content store directly.
func New(store cas.Store, reg *registry.Registry, resolver *gateway.Resolver) (*Service, error) {
	if store == nil {
		return nil, ErrNilCAS
	}
	if reg == nil {
		return nil, ErrNilRegistry
	}
	return &Service{CAS: store, Registry: reg, Resolver: resolver}, nil
}

// Open builds a Service under cfg.DataDir: a bbolt-backed registry at
// {datadir}/registry.db, a blob store at {datadir}/blobs, a resolver using
// cfg.GatewayURL, and a DNSSEC-validating DNS resolver at cfg.DNSUpstream.
func Open(cfg config.Config) (*Service, error) {
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	blobs, err := cas.NewFileStore(filepath.Join(cfg.DataDir, "blobs"))
	if err != nil {
		return nil, fmt.Errorf("share: open blob store: %w", err)
	}

	recordStore, err := registry.OpenBoltStore(filepath.Join(cfg.DataDir, "registry.db"))
	if err != nil {
		return nil, fmt.Errorf("share: open registry store: %w", err)
	}

	reg, err := registry.New(recordStore)
	if err != nil {
		_ = recordStore.Close()
		return nil, err
	}

	resolver := gateway.NewResolver(blobs)
	resolver.Endpoints = []string{cfg.GatewayURL}

	return &Service{
		CAS:      blobs,
		Registry: reg,
		Resolver: resolver,
		DNS:      gateway.NewDNSSECResolver(cfg.DNSUpstream),
		store:    recordStore,
	}, nil
}

// Close releases resources owned by Open. A Service built with New owns
// nothing and Close is a no-op.
func (s *Service) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}

// Upload stores data in the content store and records the resulting pointer
// under the caller's identity. A failed store write blocks the append: no
// pointer, no record, no event. A failed append after a successful write
// leaves an orphaned blob, which content-addressed storage tolerates.
func (s *Service) Upload(ctx context.Context, name string, data []byte) (*registry.FileRecord, error) {
	pointer, err := s.CAS.Put(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	rec, err := s.Registry.Append(ctx, pointer, name)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// List returns the caller's records in append order.
func (s *Service) List(ctx context.Context) ([]*registry.FileRecord, error) {
	return s.Registry.List(ctx)
}

// Fetch resolves a pointer to bytes: through the resolver when configured
// (local store, then gateways), otherwise from the content store alone.
// Fetch requires no caller identity; holding a pointer is sufficient.
func (s *Service) Fetch(pointer string) ([]byte, error) {
	if s.Resolver != nil {
		return s.Resolver.Fetch(pointer)
	}
	return s.CAS.Get(pointer)
}

// ResolveDomain returns the content pointer a domain publishes under
// DNSLink. A Service built with New and no DNS resolver falls back to the
// system resolver.
func (s *Service) ResolveDomain(domain string) (string, error) {
	resolver := s.DNS
	if resolver == nil {
		resolver = gateway.DefaultDNSResolver
	}
	return gateway.ResolveDNSLinkWithResolver(domain, resolver)
}

// FetchDomain resolves a domain's DNSLink pointer and fetches its content.
func (s *Service) FetchDomain(domain string) ([]byte, error) {
	pointer, err := s.ResolveDomain(domain)
	if err != nil {
		return nil, err
	}
	return s.Fetch(pointer)
}
