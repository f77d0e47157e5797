package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"kitchenos/internal/db/mock"
)

func TestIsHTMX(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if isHTMX(req) {
		t.Fatal("expected false when no HTMX headers present")
	}
	req.Header.Set("HX-Request", "true")
	if !isHTMX(req) {
		t.Fatal("expected true when HX-Request header present")
	}
}

func TestLoginWithJSONEstablishesSession(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := env.sessionContext(t)

	body := `{"email":"` + strings.ToUpper(mock.DemoEmail) + `","password":"` + mock.DemoPassword + `"}`
	req := newRequest(http.MethodPost, "/login", body, nil).WithContext(ctx)
	rr := serve(env.handler.Login, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var user loginResponse
	decodeBody(t, rr, &user)
	if user.Email != mock.DemoEmail || user.ID == "" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if !env.handler.ActiveSession(req) {
		t.Fatal("expected the session to be authenticated")
	}
}

func TestLoginWithJSONRejectsWrongPassword(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := env.sessionContext(t)

	req := newRequest(http.MethodPost, "/login", `{"email":"`+mock.DemoEmail+`","password":"yanlis"}`, nil).WithContext(ctx)
	rr := serve(env.handler.Login, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if env.handler.ActiveSession(req) {
		t.Fatal("expected no authenticated session after a failed login")
	}
}

func TestLoginWithFormRedirectsToApp(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := env.sessionContext(t)

	form := url.Values{"email": {mock.DemoEmail}, "password": {mock.DemoPassword}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode())).WithContext(ctx)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := serve(env.handler.Login, req)

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/app" {
		t.Fatalf("expected redirect to /app, got %q", loc)
	}
}

func TestLoginWithFormRendersErrorForUnknownUser(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := env.sessionContext(t)

	form := url.Values{"email": {"kimse@example.com"}, "password": {"x"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode())).WithContext(ctx)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := serve(env.handler.Login, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), messageInvalidCredentials) {
		t.Fatalf("expected error message in the form: %s", rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "kimse@example.com") {
		t.Fatalf("expected the email to be kept: %s", rr.Body.String())
	}
}

func TestLoginPageRedirectsActiveSession(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := env.sessionContext(t)
	env.sessions.Put(ctx, sessionAuthenticatedKey, true)
	env.sessions.Put(ctx, sessionUserIDKey, "user-1")

	rr := serve(env.handler.LoginPage, httptest.NewRequest(http.MethodGet, "/login", nil).WithContext(ctx))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect for an active session, got %d", rr.Code)
	}
}

func TestRequireAPIRejectsAnonymousRequests(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := env.sessionContext(t)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })
	rr := httptest.NewRecorder()
	env.handler.RequireAPI(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/outlets", nil).WithContext(ctx))

	if called {
		t.Fatal("expected the protected handler not to run")
	}
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected json error, got %q", ct)
	}
}

func TestRequireAuthenticationRedirectsToLogin(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := env.sessionContext(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })
	req := httptest.NewRequest(http.MethodGet, "/app", nil).WithContext(ctx)
	req.Header.Set("HX-Request", "true")
	rr := httptest.NewRecorder()
	env.handler.RequireAuthentication(next).ServeHTTP(rr, req)

	if rr.Header().Get("HX-Redirect") != "/login" {
		t.Fatalf("expected HX-Redirect to /login, got %q", rr.Header().Get("HX-Redirect"))
	}
}

func TestRequireAuthenticationAllowsActiveSession(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := env.sessionContext(t)
	env.sessions.Put(ctx, sessionAuthenticatedKey, true)
	env.sessions.Put(ctx, sessionUserIDKey, "user-1")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })
	rr := httptest.NewRecorder()
	env.handler.RequireAuthentication(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/app", nil).WithContext(ctx))

	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected protected handler to run, got %d", rr.Code)
	}
}

func TestLogoutDestroysSession(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := env.sessionContext(t)
	env.sessions.Put(ctx, sessionAuthenticatedKey, true)
	env.sessions.Put(ctx, sessionUserIDKey, "user-1")

	req := httptest.NewRequest(http.MethodPost, "/logout", nil).WithContext(ctx)
	rr := serve(env.handler.Logout, req)

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rr.Code)
	}
	if env.handler.ActiveSession(req) {
		t.Fatal("expected session to be cleared")
	}
}
