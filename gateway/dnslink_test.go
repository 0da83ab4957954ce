package gateway

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockDNSResolver returns canned TXT records per name.
type mockDNSResolver struct {
	txts map[string][]string
	err  error
}

func (m *mockDNSResolver) LookupTXT(name string) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	txts, ok := m.txts[name]
	if !ok {
		return nil, errors.New("NXDOMAIN")
	}
	return txts, nil
}

func TestResolveDNSLink(t *testing.T) {
	resolver := &mockDNSResolver{txts: map[string][]string{
		"_dnslink.files.example.com": {
			"some-unrelated-record",
			"dnslink=/ipfs/bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi",
		},
	}}

	pointer, err := ResolveDNSLinkWithResolver("files.example.com", resolver)
	require.NoError(t, err)
	assert.Equal(t, "bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi", pointer)
}

func TestResolveDNSLink_EmptyDomain(t *testing.T) {
	_, err := ResolveDNSLinkWithResolver("", &mockDNSResolver{})
	assert.ErrorIs(t, err, ErrDNSLookupFailed)
}

func TestResolveDNSLink_LookupFailure(t *testing.T) {
	resolver := &mockDNSResolver{err: errors.New("timeout")}
	_, err := ResolveDNSLinkWithResolver("files.example.com", resolver)
	assert.ErrorIs(t, err, ErrDNSLookupFailed)
}

func TestResolveDNSLink_NoDNSLinkRecord(t *testing.T) {
	resolver := &mockDNSResolver{txts: map[string][]string{
		"_dnslink.files.example.com": {"v=spf1 -all", "dnslink=/ipfs/"},
	}}
	_, err := ResolveDNSLinkWithResolver("files.example.com", resolver)
	assert.ErrorIs(t, err, ErrNoDNSLink)
}
