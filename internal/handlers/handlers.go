// Package handlers implements the HTTP endpoints of the back office: the
// sign-in flow, the dashboard, the JSON API and the report downloads.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	applog "kitchenos/internal/log"
	"kitchenos/internal/reports"
	"kitchenos/internal/store"
	"kitchenos/internal/validation"
)

const maxJSONBody = 1 << 20

var errMalformedJSON = errors.New("malformed JSON body")

// Options carries the dependencies of a Handler.
type Options struct {
	Store    store.Store
	Sessions *scs.SessionManager
	// Renderers maps each export format onto its generator.
	Renderers   map[reports.Format]reports.Renderer
	Location    *time.Location
	ProductName string
	Now         func() time.Time
}

// Handler serves every endpoint. Build it with New.
type Handler struct {
	store       store.Store
	sessions    *scs.SessionManager
	renderers   map[reports.Format]reports.Renderer
	location    *time.Location
	productName string
	now         func() time.Time
}

// New builds a Handler. Missing optional dependencies fall back to UTC,
// the wall clock and an empty renderer set.
func New(opts Options) *Handler {
	h := &Handler{
		store:       opts.Store,
		sessions:    opts.Sessions,
		renderers:   opts.Renderers,
		location:    opts.Location,
		productName: opts.ProductName,
		now:         opts.Now,
	}
	if h.renderers == nil {
		h.renderers = map[reports.Format]reports.Renderer{}
	}
	if h.location == nil {
		h.location = time.UTC
	}
	if h.now == nil {
		h.now = time.Now
	}
	return h
}

type errorResponse struct {
	Error    string            `json:"error"`
	Fields   map[string]string `json:"fields,omitempty"`
	Messages []string          `json:"messages,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(r.Context(), "failed to encode json response", "error", err)
	}
}

func writeMessage(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, r, status, errorResponse{Error: message})
}

// writeError maps err onto a status code and a JSON error body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		writeJSON(w, r, http.StatusUnprocessableEntity, errorResponse{
			Error:    "validation failed",
			Fields:   verr.Fields,
			Messages: verr.Messages,
		})
	case errors.Is(err, errMalformedJSON):
		writeMessage(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeMessage(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, store.ErrDuplicate):
		writeMessage(w, r, http.StatusConflict, "a record with the same value already exists")
	case errors.Is(err, store.ErrInUse):
		writeMessage(w, r, http.StatusConflict, "the record is still in use")
	case errors.Is(err, store.ErrInvalidReference):
		writeMessage(w, r, http.StatusUnprocessableEntity, "a referenced record does not exist")
	default:
		applog.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeMessage(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON reads a JSON body into dst, rejecting unknown trailing content.
func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", errMalformedJSON, err)
	}
	if decoder.More() {
		return fmt.Errorf("%w: unexpected data after object", errMalformedJSON)
	}
	return nil
}

// decodeForm decodes and validates a request form.
func decodeForm(r *http.Request, form any) error {
	if err := decodeJSON(r, form); err != nil {
		return err
	}
	return validation.Validate(form)
}

func idParam(r *http.Request) string {
	return strings.TrimSpace(chi.URLParam(r, "id"))
}

func queryValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

func (h *Handler) localNow() time.Time {
	return h.now().In(h.location)
}
