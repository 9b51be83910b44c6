package domain

import "context"

// Principal is the authenticated caller as provided by the auth middleware.
type Principal struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the principal stored in ctx, if any.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// ActorID returns the user id of the principal in ctx, or nil for anonymous calls.
func ActorID(ctx context.Context) *string {
	p, ok := PrincipalFrom(ctx)
	if !ok {
		return nil
	}
	return StringPtr(p.UserID)
}
