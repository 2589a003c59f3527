package http

import (
	"errors"
	"net/http"

	"github.com/project-nt/auth/internal/auth/service"
	"github.com/project-nt/auth/pkg/authsdk"
	"github.com/project-nt/auth/pkg/httpx"
	"github.com/project-nt/auth/pkg/slogx"
)

// SessionMiddleware admits requests carrying a valid session.
//
// A valid access cookie passes straight through. Otherwise the refresh
// cookie is used to mint a new access token, which is set as a cookie
// before the request proceeds; the refresh cookie is left as is. When the
// refresh token is invalid too, the browser is redirected to loginURL.
//
// The session claims are placed on the request context in both passing cases.
func SessionMiddleware(sessions *service.SessionService, cookies httpx.CookieConfig, loginURL string) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			claims, err := sessions.VerifyAccess(httpx.ReadCookie(r, httpx.AccessCookie))
			if err == nil {
				next.ServeHTTP(w, r.WithContext(httpx.WithSession(ctx, claims)))
				return
			}

			access, claims, err := sessions.Refresh(ctx, httpx.ReadCookie(r, httpx.RefreshCookie))
			switch {
			case err == nil:
				cookies.SetAccess(w, access, sessions.AccessTTL)
				slogx.FromContext(ctx).Debug("access token renewed", "email", claims.Email)
				next.ServeHTTP(w, r.WithContext(httpx.WithSession(ctx, claims)))
			case errors.Is(err, service.ErrInvalidToken):
				httpx.SeeOther(w, r, loginURL)
			default:
				slogx.FromContext(ctx).Error("session refresh failed", "err", err)
				authsdk.ErrServerError.WriteError(w)
			}
		})
	}
}
