package handlers

import (
	"net/http"

	applog "kitchenos/internal/log"
	"kitchenos/internal/validation"
)

// ListOutlets returns every outlet with its recipe and category counts.
func (h *Handler) ListOutlets(w http.ResponseWriter, r *http.Request) {
	outlets, err := h.store.ListOutlets(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, outlets)
}

// GetOutlet returns one outlet.
func (h *Handler) GetOutlet(w http.ResponseWriter, r *http.Request) {
	outlet, err := h.store.GetOutlet(r.Context(), idParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, outlet)
}

// CreateOutlet adds an outlet.
func (h *Handler) CreateOutlet(w http.ResponseWriter, r *http.Request) {
	var form validation.OutletForm
	if err := decodeForm(r, &form); err != nil {
		writeError(w, r, err)
		return
	}
	outlet := form.Outlet()
	if err := h.store.CreateOutlet(r.Context(), &outlet); err != nil {
		writeError(w, r, err)
		return
	}
	applog.Info(r.Context(), "outlet created", "outlet", outlet.ID)
	writeJSON(w, r, http.StatusCreated, outlet)
}

// UpdateOutlet overwrites an outlet's editable fields.
func (h *Handler) UpdateOutlet(w http.ResponseWriter, r *http.Request) {
	var form validation.OutletForm
	if err := decodeForm(r, &form); err != nil {
		writeError(w, r, err)
		return
	}
	outlet, err := h.store.UpdateOutlet(r.Context(), idParam(r), form.Outlet())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, outlet)
}

// DeleteOutlet removes an outlet with its categories and recipes.
func (h *Handler) DeleteOutlet(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	if err := h.store.DeleteOutlet(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	applog.Info(r.Context(), "outlet deleted", "outlet", id)
	w.WriteHeader(http.StatusNoContent)
}
