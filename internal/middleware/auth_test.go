package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitstudio/reassess/internal/ctxkeys"
	"github.com/fitstudio/reassess/internal/middleware"
	"github.com/fitstudio/reassess/internal/service"
)

func newAuth(t *testing.T) *service.AuthService {
	t.Helper()
	return service.NewAuthService("coach@example.com", "", "s3cret", "test-secret", time.Hour, false)
}

func protected() http.HandlerFunc {
	return middleware.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAdminRedirectsAnonymousWithDestination(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/clients/Ana/history", nil)
	rec := httptest.NewRecorder()

	protected().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?next=%2Fclients%2FAna%2Fhistory", rec.Header().Get("Location"))
}

func TestRequireAdminPreservesQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/clients?sort=name", nil)
	rec := httptest.NewRecorder()

	protected().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?next=%2Fclients%3Fsort%3Dname", rec.Header().Get("Location"))
}

func TestRequireAdminPassesAuthenticated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/clients", nil)
	req = req.WithContext(ctxkeys.WithAuthenticated(req.Context()))
	rec := httptest.NewRecorder()

	protected().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionMiddlewareMarksValidSession(t *testing.T) {
	auth := newAuth(t)
	token, err := auth.SessionToken()
	require.NoError(t, err)

	var authed bool
	h := middleware.SessionMiddleware(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authed = ctxkeys.Authenticated(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/clients", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName(), Value: token})
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, authed)
}

func TestSessionMiddlewareClearsInvalidCookie(t *testing.T) {
	auth := newAuth(t)

	var authed bool
	h := middleware.SessionMiddleware(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authed = ctxkeys.Authenticated(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/clients", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName(), Value: "garbage"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.False(t, authed)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
}

func TestSessionMiddlewareNoCookieStaysAnonymous(t *testing.T) {
	auth := newAuth(t)

	var authed bool
	h := middleware.SessionMiddleware(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authed = ctxkeys.Authenticated(r.Context())
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/clients", nil))
	assert.False(t, authed)
}
