package middleware

import (
	"net/http"
	"net/url"

	"github.com/fitstudio/reassess/internal/ctxkeys"
	"github.com/fitstudio/reassess/internal/service"
)

// SessionMiddleware checks for a session cookie and marks the request
// context authenticated if it verifies. Invalid cookies are cleared.
func SessionMiddleware(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(authService.SessionCookieName())
			if err != nil {
				// No cookie, continue anonymous
				next.ServeHTTP(w, r)
				return
			}

			err = authService.VerifySession(cookie.Value)
			if err != nil {
				// Invalid or expired token, clear cookie and continue anonymous
				authService.ClearSessionCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			ctx := ctxkeys.WithAuthenticated(r.Context())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin guards the report views. Anonymous callers are redirected to
// the login page with the originally requested URL preserved, so a
// successful login resumes there.
func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !ctxkeys.Authenticated(r.Context()) {
			dest := r.URL.Path
			if r.URL.RawQuery != "" {
				dest += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, "/login?next="+url.QueryEscape(dest), http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	}
}
