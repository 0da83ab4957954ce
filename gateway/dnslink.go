package gateway

import (
	"fmt"
	"net"
	"strings"
)

// dnslinkPrefix is the TXT record prefix for DNSLink pointers,
// e.g. "dnslink=/ipfs/bafy...".
const dnslinkPrefix = "dnslink=/ipfs/"

// DNSResolver defines the interface for DNS lookups.
// This allows tests to mock DNS resolution.
type DNSResolver interface {
	// LookupTXT looks up TXT records for the given name.
	LookupTXT(name string) ([]string, error)
}

// defaultDNSResolver wraps the standard net package DNS functions.
type defaultDNSResolver struct{}

func (d *defaultDNSResolver) LookupTXT(name string) ([]string, error) {
	return net.LookupTXT(name)
}

// DefaultDNSResolver is the production DNS resolver using the net package.
var DefaultDNSResolver DNSResolver = &defaultDNSResolver{}

// ResolveDNSLink resolves the content pointer published for a domain.
// It looks up _dnslink.{domain} TXT records and extracts the pointer from
// the first record with the "dnslink=/ipfs/" prefix.
func ResolveDNSLink(domain string) (string, error) {
	return ResolveDNSLinkWithResolver(domain, DefaultDNSResolver)
}

// ResolveDNSLinkWithResolver resolves a DNSLink pointer using the provided
// DNS resolver.
func ResolveDNSLinkWithResolver(domain string, resolver DNSResolver) (string, error) {
	if domain == "" {
		return "", fmt.Errorf("%w: empty domain", ErrDNSLookupFailed)
	}

	name := "_dnslink." + domain
	txts, err := resolver.LookupTXT(name)
	if err != nil {
		return "", fmt.Errorf("%w: TXT lookup for %s: %w", ErrDNSLookupFailed, name, err)
	}

	for _, txt := range txts {
		if !strings.HasPrefix(txt, dnslinkPrefix) {
			continue
		}
		pointer := strings.TrimSpace(strings.TrimPrefix(txt, dnslinkPrefix))
		if pointer == "" {
			continue
		}
		return pointer, nil
	}

	return "", fmt.Errorf("%w: %s", ErrNoDNSLink, name)
}
