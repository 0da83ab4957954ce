package identity

import "context"

// callerKey is the context key for the verified caller address.
type callerKey struct{}

// WithCaller returns a context carrying addr as the verified caller.
// Every registry call reads its owner from this binding and from nowhere
// else, so tests can impersonate any owner without a signing round-trip.
func WithCaller(ctx context.Context, addr string) context.Context {
	return context.WithValue(ctx, callerKey{}, addr)
}

// CallerFromContext returns the verified caller address bound to ctx.
// Returns ErrNoCaller when no identity is bound; callers must refuse
// rather than fall back to a shared anonymous owner.
func CallerFromContext(ctx context.Context) (string, error) {
	addr, ok := ctx.Value(callerKey{}).(string)
	if !ok || addr == "" {
		return "", ErrNoCaller
	}
	return addr, nil
}
