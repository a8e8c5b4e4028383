package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/poyobook/poyobook/internal/core/domain"
	"github.com/poyobook/poyobook/internal/core/ports"
)

type stubAuth struct {
	users map[string]*domain.User
}

func (s *stubAuth) Register(context.Context, ports.RegisterInput) (string, *domain.User, error) {
	return "", nil, nil
}

func (s *stubAuth) Login(context.Context, string, string) (string, *domain.User, error) {
	return "", nil, nil
}

func (s *stubAuth) Identify(_ context.Context, token string) (*domain.User, error) {
	if u, ok := s.users[token]; ok {
		return u, nil
	}
	return nil, domain.ErrInvalidToken
}

func (s *stubAuth) StartRecovery(context.Context, string) error { return nil }

func (s *stubAuth) VerifyRecovery(context.Context, string) (string, error) { return "", nil }

func (s *stubAuth) CompleteRecovery(context.Context, string, string) error { return nil }

func doRequest(t *testing.T, mw echo.MiddlewareFunc, cookie string) (*httptest.ResponseRecorder, echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: cookie})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var inner echo.Context
	err := mw(func(c echo.Context) error {
		inner = c
		return c.NoContent(http.StatusOK)
	})(c)
	return rec, inner, err
}

func TestIdentity_AttachesUserForValidSession(t *testing.T) {
	auth := &stubAuth{users: map[string]*domain.User{"good": {ID: 1, Username: "dino"}}}

	_, inner, err := doRequest(t, Identity(auth), "good")
	if err != nil {
		t.Fatalf("middleware: %v", err)
	}
	user := CurrentUser(inner)
	if user == nil || user.Username != "dino" {
		t.Fatalf("user not attached: %+v", user)
	}
}

func TestIdentity_AnonymousPassesThrough(t *testing.T) {
	auth := &stubAuth{users: map[string]*domain.User{}}

	for _, cookie := range []string{"", "forged"} {
		_, inner, err := doRequest(t, Identity(auth), cookie)
		if err != nil {
			t.Fatalf("cookie %q: %v", cookie, err)
		}
		if CurrentUser(inner) != nil {
			t.Fatalf("cookie %q: anonymous request got an identity", cookie)
		}
	}
}

func TestRequireAuth_RejectsAnonymous(t *testing.T) {
	_, _, err := doRequest(t, RequireAuth(), "")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestRequireAuth_ClearsStaleCookie(t *testing.T) {
	// A cookie was sent but Identity attached no user, so the session is
	// stale and must be expired on the way out.
	rec, _, err := doRequest(t, RequireAuth(), "stale")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}

	var cleared bool
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == SessionCookie && ck.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("stale session cookie not cleared")
	}
}

func TestRequireAuth_PassesAuthenticated(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(userContextKey, &domain.User{ID: 1})

	err := RequireAuth()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)
	if err != nil {
		t.Fatalf("authenticated request blocked: %v", err)
	}
}

func TestRequireApex_HostMatching(t *testing.T) {
	cases := []struct {
		host string
		pass bool
	}{
		{"example.com", true},
		{"EXAMPLE.com", true},
		{"example.com:8080", true},
		{"dino.example.com", false},
		{"evil.org", false},
	}
	for _, tc := range cases {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Host = tc.host
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := RequireApex("example.com")(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})(c)
		if tc.pass && err != nil {
			t.Fatalf("host %q: blocked: %v", tc.host, err)
		}
		if !tc.pass {
			he, ok := err.(*echo.HTTPError)
			if !ok || he.Code != http.StatusNotFound {
				t.Fatalf("host %q: expected 404, got %v", tc.host, err)
			}
		}
	}
}
