package httpx

import (
	"context"

	"github.com/project-nt/auth/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyEmail  ctxKey = "email"
	CtxKeyClaims ctxKey = "claims"
)

// WithSession stores the authenticated session claims on ctx.
func WithSession(ctx context.Context, c jwtx.SessionClaims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyEmail, c.Email)
	return context.WithValue(ctx, CtxKeyClaims, c)
}

// SessionFromContext returns the claims placed by the session gate.
func SessionFromContext(ctx context.Context) (jwtx.SessionClaims, bool) {
	c, ok := ctx.Value(CtxKeyClaims).(jwtx.SessionClaims)
	return c, ok
}
