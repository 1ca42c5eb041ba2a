package auth

import "context"

type accountKey struct{}

// WithAccountID returns a context carrying the authenticated account.
func WithAccountID(ctx context.Context, accountID string) context.Context {
	return context.WithValue(ctx, accountKey{}, accountID)
}

// AccountIDFromContext returns the account stored by WithAccountID.
func AccountIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(accountKey{}).(string)
	return id, ok && id != ""
}
