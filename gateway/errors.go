package gateway

import "errors"

var (
	// ErrUpstreamUnavailable indicates no source (local store or gateway
	// endpoint) could supply the content. The caller decides whether to
	// retry; the resolver does not.
	ErrUpstreamUnavailable = errors.New("gateway: upstream unavailable")

	// ErrNotFound indicates every reachable source reported the pointer absent.
	ErrNotFound = errors.New("gateway: content not found")

	// ErrDNSLookupFailed indicates a DNS query error.
	ErrDNSLookupFailed = errors.New("gateway: DNS lookup failed")

	// ErrDNSSECValidationFailed indicates the upstream resolver did not
	// authenticate the response (AD flag not set).
	ErrDNSSECValidationFailed = errors.New("gateway: DNSSEC validation failed")

	// ErrNoDNSLink indicates no dnslink TXT record was found for the domain.
	ErrNoDNSLink = errors.New("gateway: no dnslink record")
)
