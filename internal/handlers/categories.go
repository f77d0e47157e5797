package handlers

import (
	"net/http"

	"kitchenos/internal/validation"
	"kitchenos/models"
)

type reorderRequest struct {
	IDs []string `json:"ids"`
}

// ListCategories returns an outlet's categories in display order.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	outletID := idParam(r)
	if _, err := h.store.GetOutlet(r.Context(), outletID); err != nil {
		writeError(w, r, err)
		return
	}
	categories, err := h.store.ListCategories(r.Context(), outletID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, categories)
}

// CreateCategory adds a category to an outlet. Without a sort_order it is
// appended after the existing ones.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var form validation.CategoryForm
	if err := decodeForm(r, &form); err != nil {
		writeError(w, r, err)
		return
	}
	category := models.Category{OutletID: idParam(r), Name: form.Name}
	if err := h.store.CreateCategory(r.Context(), &category, form.SortOrder); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, category)
}

// ReorderCategories assigns sort orders from the position of each id.
func (h *Handler) ReorderCategories(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	outletID := idParam(r)
	if err := h.store.ReorderCategories(r.Context(), outletID, req.IDs); err != nil {
		writeError(w, r, err)
		return
	}
	categories, err := h.store.ListCategories(r.Context(), outletID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, categories)
}

// UpdateCategory renames a category and optionally moves it.
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var form validation.CategoryForm
	if err := decodeForm(r, &form); err != nil {
		writeError(w, r, err)
		return
	}
	category, err := h.store.UpdateCategory(r.Context(), idParam(r), form.Name, form.SortOrder)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, category)
}

// DeleteCategory removes a category; its recipes become uncategorized.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteCategory(r.Context(), idParam(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
