// Package gateway resolves content pointers to bytes through external
// sources: the local content store first, then public HTTP gateways. It
// also discovers pointers published under DNSLink TXT records.
package gateway

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/filedger/libfiledger-go/cas"
)

// MaxContentResponseSize is the maximum allowed response body size for
// gateway fetches (1 GB). This prevents memory exhaustion from malicious
// endpoints.
const MaxContentResponseSize = 1 << 30

// GatewayURL builds the human-fetchable URL for a pointer on a gateway,
// by concatenating the base URL with the pointer.
func GatewayURL(base, pointer string) string {
	return strings.TrimSuffix(base, "/") + "/ipfs/" + pointer
}

// Resolver fetches content by pointer from multiple sources in priority
// order: local cas store -> HTTP gateway endpoints. Remote bytes are
// re-hashed against the pointer before being trusted.
type Resolver struct {
	Store     cas.Store    // local content-addressed storage; may be nil
	Endpoints []string     // gateway base URLs (e.g. "https://ipfs.io")
	Client    *http.Client // HTTP client for remote fetches; nil uses default
}

// NewResolver creates a Resolver over the given local store.
// Endpoints and Client can be set after creation.
func NewResolver(store cas.Store) *Resolver {
	return &Resolver{
		Store: store,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Fetch retrieves the bytes for pointer, trying sources in order:
//  1. Local store
//  2. Gateway endpoints (GET {base}/ipfs/{pointer})
//
// Returns the first verified result, ErrNotFound when every reachable
// source reports the pointer absent, or ErrUpstreamUnavailable when no
// source could be consulted successfully.
func (r *Resolver) Fetch(pointer string) ([]byte, error) {
	if err := cas.ValidatePointer(pointer); err != nil {
		return nil, err
	}

	// 1. Try local storage first.
	if r.Store != nil {
		data, err := r.Store.Get(pointer)
		if err == nil {
			return data, nil
		}
		// Only continue if not found; other errors are real failures.
		if !errors.Is(err, cas.ErrNotFound) {
			return nil, fmt.Errorf("gateway: local store: %w", err)
		}
	}

	if len(r.Endpoints) == 0 {
		return nil, fmt.Errorf("%w: pointer %s", ErrNotFound, pointer)
	}

	// 2. Try gateway endpoints.
	client := r.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	notFound := 0
	for _, ep := range r.Endpoints {
		data, err := r.fetchFromEndpoint(client, ep, pointer)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				notFound++
			}
			// Continue to the next endpoint on any error.
			continue
		}

		// Verify content before trusting a remote gateway.
		actual, err := cas.PointerForData(data)
		if err != nil || actual != pointer {
			continue
		}

		// Cache locally for future access.
		if r.Store != nil {
			_, _ = r.Store.Put(data) // best-effort cache
		}
		return data, nil
	}

	if notFound == len(r.Endpoints) {
		return nil, fmt.Errorf("%w: pointer %s", ErrNotFound, pointer)
	}
	return nil, fmt.Errorf("%w: pointer %s", ErrUpstreamUnavailable, pointer)
}

// fetchFromEndpoint fetches content from a single gateway endpoint.
func (r *Resolver) fetchFromEndpoint(client *http.Client, baseURL, pointer string) ([]byte, error) {
	url := GatewayURL(baseURL, pointer)

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("%w: endpoint %s: %w", ErrUpstreamUnavailable, baseURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: endpoint %s", ErrNotFound, baseURL)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: endpoint %s: HTTP %d", ErrUpstreamUnavailable, baseURL, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxContentResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: endpoint %s: read body: %w", ErrUpstreamUnavailable, baseURL, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: endpoint %s: empty response", ErrUpstreamUnavailable, baseURL)
	}

	return data, nil
}
