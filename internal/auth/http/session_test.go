package http_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	authhttp "github.com/project-nt/auth/internal/auth/http"
	"github.com/project-nt/auth/internal/auth/service"
	"github.com/project-nt/auth/internal/auth/store/drivers/sqlite"
	"github.com/project-nt/auth/pkg/authsdk"
	"github.com/project-nt/auth/pkg/httpx"
	"github.com/project-nt/auth/pkg/jwtx"
)

func TestRegister(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/v1/auth/register", url.Values{
		"name":      {"Ada"},
		"email":     {"ada@example.com"},
		"password":  {"pw"},
		"type":      {"freelance"},
		"phone":     {"555"},
		"techs":     {"go"},
		"onOffline": {"offline"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))

	rec = s.do(t, http.MethodPost, "/v1/auth/register", url.Values{"email": {"ada@example.com"}, "password": {"x"}})
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, authsdk.ErrorCodeEmailTaken, decode[authsdk.ErrorResponse](t, rec).Error)

	rec = s.do(t, http.MethodPost, "/v1/auth/register", url.Values{"email": {"bob@example.com"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "ada@example.com", "pw", "555")

	rec := s.do(t, http.MethodPost, "/v1/auth/login", url.Values{"email": {"ada@example.com"}, "password": {"pw"}})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	body := decode[authsdk.LoginResponse](t, rec)
	access := findCookie(rec, httpx.AccessCookie)
	refresh := findCookie(rec, httpx.RefreshCookie)
	require.NotNil(t, access)
	require.NotNil(t, refresh)
	require.Equal(t, body.AccessToken, access.Value)
	require.Equal(t, body.RefreshToken, refresh.Value)
	require.True(t, access.HttpOnly)
	require.Equal(t, http.SameSiteLaxMode, access.SameSite)
	require.Equal(t, int((10 * time.Minute).Seconds()), access.MaxAge)
	require.Equal(t, int((24 * time.Hour).Seconds()), refresh.MaxAge)
}

func TestLogin_Failures(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "ada@example.com", "pw", "555")

	tests := []struct {
		name     string
		email    string
		password string
		code     string
	}{
		{"unknown user", "nobody@example.com", "pw", authsdk.ErrorCodeUserNotFound},
		{"wrong password", "ada@example.com", "nope", authsdk.ErrorCodeInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/v1/auth/login", url.Values{"email": {tt.email}, "password": {tt.password}})
			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.Equal(t, tt.code, decode[authsdk.ErrorResponse](t, rec).Error)
			require.Nil(t, findCookie(rec, httpx.AccessCookie))
		})
	}
}

func TestSession(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "ada@example.com", "pw", "555")
	access, _ := s.login(t, "ada@example.com", "pw")

	rec := s.do(t, http.MethodGet, "/v1/auth/session", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.False(t, decode[authsdk.SessionResponse](t, rec).LoggedIn)

	rec = s.do(t, http.MethodGet, "/v1/auth/session", nil, access)
	got := decode[authsdk.SessionResponse](t, rec)
	require.True(t, got.LoggedIn)
	require.NotNil(t, got.User)
	require.Equal(t, "ada@example.com", got.User.Email)
	require.Equal(t, "Ada", got.User.Name)

	// checkSession never refreshes.
	s.clock.Advance(11 * time.Minute)
	rec = s.do(t, http.MethodGet, "/v1/auth/session", nil, access)
	require.False(t, decode[authsdk.SessionResponse](t, rec).LoggedIn)
	require.Nil(t, findCookie(rec, httpx.AccessCookie))
}

func TestSessionGate(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "ada@example.com", "pw", "555")
	access, refresh := s.login(t, "ada@example.com", "pw")

	t.Run("valid access token", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/v1/auth/me", nil, access, refresh)
		require.Equal(t, http.StatusOK, rec.Code)
		me := decode[authsdk.ProfileResponse](t, rec)
		require.Equal(t, "ada@example.com", me.Email)
		require.NotNil(t, me.OnOff)
		require.Equal(t, "ON", *me.OnOff)
		require.Nil(t, findCookie(rec, httpx.AccessCookie))
	})

	t.Run("expired access renewed from refresh", func(t *testing.T) {
		s.clock.Advance(11 * time.Minute)

		rec := s.do(t, http.MethodGet, "/v1/auth/me", nil, access, refresh)
		require.Equal(t, http.StatusOK, rec.Code)

		renewed := findCookie(rec, httpx.AccessCookie)
		require.NotNil(t, renewed)
		require.NotEqual(t, access.Value, renewed.Value)
		require.Nil(t, findCookie(rec, httpx.RefreshCookie), "refresh cookie must be left untouched")

		rec = s.do(t, http.MethodGet, "/v1/auth/me", nil, renewed)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("both expired", func(t *testing.T) {
		s.clock.Advance(24 * time.Hour)

		rec := s.do(t, http.MethodGet, "/v1/auth/me", nil, access, refresh)
		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/login", rec.Header().Get("Location"))
	})

	t.Run("no cookies", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/v1/auth/me", nil)
		require.Equal(t, http.StatusSeeOther, rec.Code)
	})
}

func TestSessionGate_RefreshTokenAsAccess(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "ada@example.com", "pw", "555")
	_, stale := s.login(t, "ada@example.com", "pw")
	s.login(t, "ada@example.com", "pw")

	s.clock.Advance(11 * time.Minute)
	asAccess := &http.Cookie{Name: httpx.AccessCookie, Value: stale.Value}

	rec := s.do(t, http.MethodGet, "/v1/auth/me", nil, asAccess)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))

	rec = s.do(t, http.MethodGet, "/v1/auth/me", nil, asAccess, stale)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = s.do(t, http.MethodGet, "/v1/auth/session", nil, asAccess)
	require.Equal(t, http.StatusOK, rec.Code)
	require.False(t, decode[authsdk.SessionResponse](t, rec).LoggedIn)
}

func TestMe_AccountGone(t *testing.T) {
	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	h := &authhttp.MeHandler{UserService: &service.UserService{Store: st}, LoginURL: "/login"}

	t.Run("no account behind the session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
		req = req.WithContext(httpx.WithSession(req.Context(), jwtx.SessionClaims{Email: "ghost@example.com"}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/login", rec.Header().Get("Location"))
	})

	t.Run("no session on the context", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil))

		require.Equal(t, http.StatusSeeOther, rec.Code)
	})
}

func TestLogout(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "ada@example.com", "pw", "555")
	access, refresh := s.login(t, "ada@example.com", "pw")

	rec := s.do(t, http.MethodPost, "/v1/auth/logout", nil, access, refresh)
	require.Equal(t, http.StatusOK, rec.Code)

	for _, name := range []string{httpx.AccessCookie, httpx.RefreshCookie} {
		c := findCookie(rec, name)
		require.NotNil(t, c, name)
		require.Empty(t, c.Value)
		require.Negative(t, c.MaxAge)
	}

	// The refresh token no longer renews a session.
	s.clock.Advance(11 * time.Minute)
	rec = s.do(t, http.MethodGet, "/v1/auth/me", nil, access, refresh)
	require.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestLogout_WithoutSession(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/v1/auth/logout", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
