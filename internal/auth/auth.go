package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// Principal identifies the authenticated user for the current request. The
// hosted identity provider terminates authentication upstream; the values
// arriving here are treated as opaque.
type Principal struct {
	UserID string
	Email  string
}

const (
	userIDHeader = "X-User-ID"
	emailHeader  = "X-User-Email"
)

type principalContextKey struct{}

// WithPrincipal returns a context carrying the request principal.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// FromContext returns the principal installed by the middleware.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalContextKey{}).(Principal)
	return p, ok
}

// RequireUserID returns the authenticated user id, or a 401 huma error when
// the middleware did not install one.
func RequireUserID(ctx context.Context) (string, error) {
	p, ok := FromContext(ctx)
	if !ok || p.UserID == "" {
		return "", huma.NewError(http.StatusUnauthorized, "missing user identity")
	}
	return p.UserID, nil
}

// NewMiddleware rejects requests without an identity header and installs the
// Principal on the context for everything else. The status endpoint stays
// open for load balancer probes.
func NewMiddleware(api huma.API) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if ctx.URL().Path == "/status" {
			next(ctx)
			return
		}

		userID := strings.TrimSpace(ctx.Header(userIDHeader))
		if userID == "" {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "missing user identity")
			return
		}

		principal := Principal{
			UserID: userID,
			Email:  strings.TrimSpace(ctx.Header(emailHeader)),
		}
		next(huma.WithValue(ctx, principalContextKey{}, principal))
	}
}
