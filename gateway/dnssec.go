package gateway

import (
	"fmt"
	"strings"
	"time"

	"github.com/miekg/dns"
)

const (
	// defaultUpstream is the default recursive resolver for DNSSEC queries.
	defaultUpstream = "8.8.8.8:53"

	// dnssecTimeout is the timeout for DNSSEC queries.
	dnssecTimeout = 10 * time.Second

	// edns0BufSize is the EDNS0 UDP buffer size.
	edns0BufSize = 4096
)

// ExchangeFunc performs a single DNS round-trip against an upstream
// resolver address.
type ExchangeFunc func(msg *dns.Msg, upstream string) (*dns.Msg, error)

// DNSSECResolver implements DNSResolver with DNSSEC validation. The
// upstream recursive resolver performs the actual validation; a response
// is accepted only when its AD (Authenticated Data) flag is set.
type DNSSECResolver struct {
	// Upstream is the recursive resolver address (e.g., "8.8.8.8:53").
	Upstream string

	// Exchange performs the DNS round-trip. Nil uses a UDP client with
	// a 10 second timeout; tests substitute a canned exchange.
	Exchange ExchangeFunc
}

// NewDNSSECResolver creates a new DNSSECResolver.
// If upstream is empty, it defaults to "8.8.8.8:53".
func NewDNSSECResolver(upstream string) *DNSSECResolver {
	if upstream == "" {
		upstream = defaultUpstream
	}
	return &DNSSECResolver{Upstream: upstream}
}

// defaultExchange sends msg over UDP with the package timeout.
func defaultExchange(msg *dns.Msg, upstream string) (*dns.Msg, error) {
	client := &dns.Client{Timeout: dnssecTimeout}
	resp, _, err := client.Exchange(msg, upstream)
	return resp, err
}

// query sends a DNSSEC-OK query for (name, qtype) and enforces the AD flag
// on the response.
func (r *DNSSECResolver) query(name string, qtype uint16) (*dns.Msg, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(name), qtype)
	msg.RecursionDesired = true
	msg.SetEdns0(edns0BufSize, true) // DO flag: ask for DNSSEC records

	exchange := r.Exchange
	if exchange == nil {
		exchange = defaultExchange
	}

	resp, err := exchange(msg, r.Upstream)
	if err != nil {
		return nil, fmt.Errorf("%w: query %s %s: %w",
			ErrDNSLookupFailed, name, dns.TypeToString[qtype], err)
	}

	switch resp.Rcode {
	case dns.RcodeSuccess, dns.RcodeNameError:
		// NXDOMAIN still carries an authenticated denial.
	default:
		return nil, fmt.Errorf("%w: query %s %s: rcode %s",
			ErrDNSLookupFailed, name, dns.TypeToString[qtype],
			dns.RcodeToString[resp.Rcode])
	}

	if !resp.AuthenticatedData {
		return nil, fmt.Errorf("%w: AD flag not set for %s %s",
			ErrDNSSECValidationFailed, name, dns.TypeToString[qtype])
	}

	return resp, nil
}

// LookupTXT looks up TXT records with DNSSEC validation. TXT records split
// into multiple character strings are joined before being returned. A name
// with no TXT records yields an empty slice, not an error.
func (r *DNSSECResolver) LookupTXT(name string) ([]string, error) {
	resp, err := r.query(name, dns.TypeTXT)
	if err != nil {
		return nil, err
	}

	var txts []string
	for _, rr := range resp.Answer {
		if txt, ok := rr.(*dns.TXT); ok {
			txts = append(txts, strings.Join(txt.Txt, ""))
		}
	}

	return txts, nil
}
