package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/poyobook/poyobook/internal/api"
	"github.com/poyobook/poyobook/internal/api/handler"
	"github.com/poyobook/poyobook/internal/api/middleware"
	"github.com/poyobook/poyobook/internal/core/domain"
	"github.com/poyobook/poyobook/internal/core/ports"
)

type stubAuthService struct {
	registerErr error
	loginErr    error

	lastRegister ports.RegisterInput
	lastLogin    string
	recovered    []string
}

func (s *stubAuthService) Register(_ context.Context, in ports.RegisterInput) (string, *domain.User, error) {
	if s.registerErr != nil {
		return "", nil, s.registerErr
	}
	s.lastRegister = in
	return "session-token", &domain.User{ID: 1, Username: in.Username, Email: in.Email}, nil
}

func (s *stubAuthService) Login(_ context.Context, login, _ string) (string, *domain.User, error) {
	if s.loginErr != nil {
		return "", nil, s.loginErr
	}
	s.lastLogin = login
	return "session-token", &domain.User{ID: 1, Username: login}, nil
}

func (s *stubAuthService) Identify(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrInvalidToken
}

func (s *stubAuthService) StartRecovery(_ context.Context, email string) error {
	s.recovered = append(s.recovered, email)
	return nil
}

func (s *stubAuthService) VerifyRecovery(context.Context, string) (string, error) {
	return "dino@example.com", nil
}

func (s *stubAuthService) CompleteRecovery(context.Context, string, string) error { return nil }

func newAuthTestServer(svc ports.AuthService) *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())

	h := handler.NewAuthHandler(svc)
	e.POST("/auth/register", h.Register)
	e.POST("/auth/login", h.Login)
	e.GET("/auth", h.Whoami)
	e.POST("/auth/recover", h.RecoverStart)
	return e
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookie {
			return ck
		}
	}
	return nil
}

func TestAuthHandler_Register(t *testing.T) {
	svc := &stubAuthService{}
	e := newAuthTestServer(svc)

	rec := postJSON(e, "/auth/register", `{"username":"dino","email":"dino@example.com","password":"hunter2hunter2"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
	}
	if svc.lastRegister.Username != "dino" {
		t.Fatalf("service not called: %+v", svc.lastRegister)
	}
	ck := sessionCookie(rec)
	if ck == nil || ck.Value != "session-token" || !ck.HttpOnly {
		t.Fatalf("session cookie not set: %+v", ck)
	}
	if !strings.Contains(rec.Body.String(), `"token":"session-token"`) {
		t.Fatalf("token missing from body: %s", rec.Body)
	}
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing email", `{"username":"dino","password":"hunter2hunter2"}`},
		{"bad email", `{"username":"dino","email":"nope","password":"hunter2hunter2"}`},
		{"short password", `{"username":"dino","email":"dino@example.com","password":"short"}`},
		{"symbols in username", `{"username":"di no!","email":"dino@example.com","password":"hunter2hunter2"}`},
		{"bad board type", `{"username":"dino","email":"dino@example.com","password":"hunter2hunter2","board_type":"wiki"}`},
	}
	for _, tc := range cases {
		svc := &stubAuthService{}
		rec := postJSON(newAuthTestServer(svc), "/auth/register", tc.body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", tc.name, rec.Code)
		}
		if svc.lastRegister.Username != "" {
			t.Fatalf("%s: invalid payload reached the service", tc.name)
		}
	}
}

func TestAuthHandler_RegisterReservedUsername(t *testing.T) {
	// A reserved name is a validation failure, not an authentication one.
	svc := &stubAuthService{registerErr: fmt.Errorf("%w: username is reserved", domain.ErrInvalidInput)}
	rec := postJSON(newAuthTestServer(svc), "/auth/register", `{"username":"admin","email":"dino@example.com","password":"hunter2hunter2"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), "username is reserved") {
		t.Fatalf("unexpected body: %s", rec.Body)
	}
}

func TestAuthHandler_RegisterConflict(t *testing.T) {
	svc := &stubAuthService{registerErr: domain.ErrUserExists}
	rec := postJSON(newAuthTestServer(svc), "/auth/register", `{"username":"dino","email":"dino@example.com","password":"hunter2hunter2"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body)
	}
}

func TestAuthHandler_RegisterCapacity(t *testing.T) {
	svc := &stubAuthService{registerErr: domain.ErrCapacityReached}
	rec := postJSON(newAuthTestServer(svc), "/auth/register", `{"username":"dino","email":"dino@example.com","password":"hunter2hunter2"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	svc := &stubAuthService{}
	rec := postJSON(newAuthTestServer(svc), "/auth/login", `{"login":"dino@example.com","password":"hunter2hunter2"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	if svc.lastLogin != "dino@example.com" {
		t.Fatalf("login field not forwarded: %q", svc.lastLogin)
	}
	if sessionCookie(rec) == nil {
		t.Fatal("session cookie not set")
	}
}

func TestAuthHandler_LoginRejected(t *testing.T) {
	svc := &stubAuthService{loginErr: domain.ErrInvalidCredentials}
	rec := postJSON(newAuthTestServer(svc), "/auth/login", `{"login":"dino","password":"wrongwrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body)
	}
	if sessionCookie(rec) != nil {
		t.Fatal("cookie set on failed login")
	}
}

func TestAuthHandler_WhoamiAnonymous(t *testing.T) {
	e := newAuthTestServer(&stubAuthService{})
	req := httptest.NewRequest(http.MethodGet, "/auth", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"authenticated":false`) {
		t.Fatalf("unexpected body: %s", rec.Body)
	}
}

func TestAuthHandler_RecoverStart(t *testing.T) {
	svc := &stubAuthService{}
	rec := postJSON(newAuthTestServer(svc), "/auth/recover", `{"email":"dino@example.com"}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body)
	}
	if len(svc.recovered) != 1 || svc.recovered[0] != "dino@example.com" {
		t.Fatalf("recovery not queued: %v", svc.recovered)
	}
}
