package identity

import "context"

type contextKey struct{}

// WithCallerID returns a context carrying the authenticated caller id.
func WithCallerID(ctx context.Context, callerID string) context.Context {
	return context.WithValue(ctx, contextKey{}, callerID)
}

// CallerID returns the authenticated caller id from the context.
// ok=false means the request carried no identity.
func CallerID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contextKey{}).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
