package handlers

import (
	"net/http"

	"kitchenos/internal/validation"
)

// ListUnits returns the measurement vocabulary.
func (h *Handler) ListUnits(w http.ResponseWriter, r *http.Request) {
	units, err := h.store.ListUnits(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, units)
}

// CreateUnit adds a unit.
func (h *Handler) CreateUnit(w http.ResponseWriter, r *http.Request) {
	var form validation.UnitForm
	if err := decodeForm(r, &form); err != nil {
		writeError(w, r, err)
		return
	}
	unit := form.Unit()
	if err := h.store.CreateUnit(r.Context(), &unit); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, unit)
}

// UpdateUnit overwrites a unit.
func (h *Handler) UpdateUnit(w http.ResponseWriter, r *http.Request) {
	var form validation.UnitForm
	if err := decodeForm(r, &form); err != nil {
		writeError(w, r, err)
		return
	}
	unit, err := h.store.UpdateUnit(r.Context(), idParam(r), form.Unit())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, unit)
}

// DeleteUnit removes a unit.
func (h *Handler) DeleteUnit(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteUnit(r.Context(), idParam(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
