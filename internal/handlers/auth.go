package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	applog "kitchenos/internal/log"
	"kitchenos/internal/store"
	"kitchenos/models"
)

const (
	sessionAuthenticatedKey = "auth:authenticated"
	sessionLoginMessageKey  = "auth:message"
	sessionUserIDKey        = "auth:user:id"
	sessionUserEmailKey     = "auth:user:email"
	sessionUserNameKey      = "auth:user:name"
)

const (
	messageInvalidCredentials = "Gecersiz e-posta veya sifre."
	messageSignInFailed       = "Giris yapilamadi. Lutfen tekrar deneyin."
)

var errInvalidCredentials = errors.New("invalid credentials")

// authenticate verifies the credentials and establishes the session. The
// returned error is errInvalidCredentials for a wrong email or password.
func (h *Handler) authenticate(r *http.Request, email, password string) (*models.User, error) {
	user, err := h.store.FindUserByEmail(r.Context(), strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errInvalidCredentials
	}

	if err := h.establishSession(r.Context(), user); err != nil {
		return nil, err
	}
	return user, nil
}

func (h *Handler) establishSession(ctx context.Context, user *models.User) error {
	if h.sessions == nil {
		return errors.New("session manager not configured")
	}
	if err := h.sessions.RenewToken(ctx); err != nil {
		return err
	}
	h.sessions.Put(ctx, sessionAuthenticatedKey, true)
	h.sessions.Put(ctx, sessionUserIDKey, user.ID)
	h.sessions.Put(ctx, sessionUserEmailKey, user.Email)
	h.sessions.Put(ctx, sessionUserNameKey, user.Name)
	return nil
}

// ActiveSession reports whether the request carries an authenticated session.
func (h *Handler) ActiveSession(r *http.Request) bool {
	if h.sessions == nil {
		return false
	}
	return h.sessions.GetBool(r.Context(), sessionAuthenticatedKey) && h.sessions.GetString(r.Context(), sessionUserIDKey) != ""
}

// RequireAuthentication redirects anonymous visitors to the sign-in page.
func (h *Handler) RequireAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.ActiveSession(r) {
			applog.Debug(r.Context(), "unauthenticated page request", "path", r.URL.Path)
			redirectToLogin(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAPI rejects anonymous API calls with a 401 JSON error.
func (h *Handler) RequireAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.ActiveSession(r) {
			applog.Debug(r.Context(), "unauthenticated api request", "path", r.URL.Path)
			writeMessage(w, r, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Logout destroys the current session and redirects to the sign-in page.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if h.sessions != nil {
		if err := h.sessions.Destroy(r.Context()); err != nil {
			applog.Error(r.Context(), "failed to destroy session", "error", err)
		}
	}
	if wantsJSON(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	redirectToLogin(w, r)
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true" || r.Header.Get("HX-Boosted") == "true"
}

func wantsJSON(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
}

func redirectTo(w http.ResponseWriter, r *http.Request, path string) {
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	redirectTo(w, r, "/login")
}

func redirectToApp(w http.ResponseWriter, r *http.Request) {
	redirectTo(w, r, "/app")
}
