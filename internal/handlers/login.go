package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	applog "kitchenos/internal/log"
	"kitchenos/internal/views/pages"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// LoginPage renders the sign-in form, or sends signed-in users to the app.
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if h.ActiveSession(r) {
		applog.Debug(r.Context(), "active session detected, redirecting to app")
		redirectToApp(w, r)
		return
	}
	message := ""
	if h.sessions != nil {
		message = h.sessions.PopString(r.Context(), sessionLoginMessageKey)
	}
	h.renderLogin(w, r, http.StatusOK, message, "")
}

// Login processes a sign-in submitted as a form or as JSON. JSON callers get
// the user back or a 401; form callers are redirected or shown the form again.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if h.sessions == nil || h.store == nil {
		applog.Debug(r.Context(), "authentication dependencies unavailable", "hasSession", h.sessions != nil, "hasStore", h.store != nil)
		http.Error(w, "authentication not available", http.StatusServiceUnavailable)
		return
	}

	asJSON := strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
	var req loginRequest
	if asJSON {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			applog.Debug(r.Context(), "failed to parse login form", "error", err)
			http.Error(w, "invalid form submission", http.StatusBadRequest)
			return
		}
		req = loginRequest{Email: r.PostFormValue("email"), Password: r.PostFormValue("password")}
	}
	req.Email = strings.TrimSpace(req.Email)

	if req.Email == "" || req.Password == "" {
		if asJSON {
			writeMessage(w, r, http.StatusBadRequest, "email and password are required")
			return
		}
		h.renderLogin(w, r, http.StatusBadRequest, "E-posta ve sifre gerekli.", req.Email)
		return
	}

	user, err := h.authenticate(r, req.Email, req.Password)
	if err != nil {
		status, message := http.StatusUnauthorized, messageInvalidCredentials
		if !errors.Is(err, errInvalidCredentials) {
			applog.Error(r.Context(), "failed to sign in", "error", err)
			status, message = http.StatusInternalServerError, messageSignInFailed
		}
		applog.Debug(r.Context(), "authentication failed", "email", strings.ToLower(req.Email))
		if asJSON {
			writeMessage(w, r, status, message)
			return
		}
		h.renderLogin(w, r, status, message, req.Email)
		return
	}

	applog.Info(r.Context(), "user signed in", "user", user.ID)
	if asJSON {
		writeJSON(w, r, http.StatusOK, loginResponse{ID: user.ID, Email: user.Email, Name: user.Name})
		return
	}
	redirectToApp(w, r)
}

func (h *Handler) renderLogin(w http.ResponseWriter, r *http.Request, status int, message, email string) {
	var component templ.Component
	if isHTMX(r) {
		component = pages.LoginPartial(message, email)
	} else {
		component = pages.Login(message, email)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render login component", "error", err)
	}
}
