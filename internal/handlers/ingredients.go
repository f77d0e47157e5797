package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	applog "kitchenos/internal/log"
	"kitchenos/internal/metrics"
	"kitchenos/internal/pricelist"
	"kitchenos/internal/store"
	"kitchenos/internal/validation"
)

const (
	maxUploadSize       = 10 << 20
	defaultSuggestLimit = 10
	maxSuggestLimit     = 50
)

type importResponse struct {
	pricelist.Summary
	Skipped []pricelist.RowError `json:"skipped"`
}

// ListIngredients returns the library, filtered by q.
func (h *Handler) ListIngredients(w http.ResponseWriter, r *http.Request) {
	ingredients, err := h.store.ListIngredients(r.Context(), store.IngredientFilter{Search: queryValue(r, "q")})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, ingredients)
}

// SuggestIngredients autocompletes ingredient names for recipe forms.
func (h *Handler) SuggestIngredients(w http.ResponseWriter, r *http.Request) {
	limit := defaultSuggestLimit
	if value, err := strconv.Atoi(queryValue(r, "limit")); err == nil && value > 0 {
		limit = min(value, maxSuggestLimit)
	}
	ingredients, err := h.store.SuggestIngredients(r.Context(), queryValue(r, "q"), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, ingredients)
}

// GetIngredient returns one library ingredient.
func (h *Handler) GetIngredient(w http.ResponseWriter, r *http.Request) {
	ingredient, err := h.store.GetIngredient(r.Context(), idParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, ingredient)
}

// CreateIngredient adds a library ingredient.
func (h *Handler) CreateIngredient(w http.ResponseWriter, r *http.Request) {
	var form validation.IngredientForm
	if err := decodeForm(r, &form); err != nil {
		writeError(w, r, err)
		return
	}
	ingredient := form.Ingredient()
	if err := h.store.CreateIngredient(r.Context(), &ingredient); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, ingredient)
}

// UpdateIngredient overwrites a library ingredient. Recipes pick up the new
// cost on their next calculation.
func (h *Handler) UpdateIngredient(w http.ResponseWriter, r *http.Request) {
	var form validation.IngredientForm
	if err := decodeForm(r, &form); err != nil {
		writeError(w, r, err)
		return
	}
	ingredient, err := h.store.UpdateIngredient(r.Context(), idParam(r), form.Ingredient())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, ingredient)
}

// DeleteIngredient removes an ingredient no recipe uses.
func (h *Handler) DeleteIngredient(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteIngredient(r.Context(), idParam(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ImportIngredients upserts a supplier price list uploaded as the multipart
// field "file" or as the raw request body.
func (h *Handler) ImportIngredients(w http.ResponseWriter, r *http.Request) {
	name, data, err := readUpload(w, r)
	if err != nil {
		applog.Debug(r.Context(), "failed to read price list upload", "error", err)
		writeMessage(w, r, http.StatusBadRequest, "could not read the uploaded file")
		return
	}

	parsed, err := pricelist.Parse(name, data)
	switch {
	case errors.Is(err, pricelist.ErrUnsupported):
		writeMessage(w, r, http.StatusUnsupportedMediaType, "upload a CSV or PDF price list")
		return
	case errors.Is(err, pricelist.ErrEmpty):
		writeJSON(w, r, http.StatusUnprocessableEntity, importResponse{
			Summary: pricelist.Summary{Failed: []pricelist.RowError{}},
			Skipped: nonNilRows(parsed.Skipped),
		})
		return
	case err != nil:
		applog.Warn(r.Context(), "failed to parse price list", "file", name, "error", err)
		writeMessage(w, r, http.StatusUnprocessableEntity, "the price list could not be parsed")
		return
	}

	summary, err := pricelist.Import(r.Context(), h.store, parsed.Entries)
	metrics.ObserveImport(summary.Created, summary.Updated, len(summary.Failed))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, importResponse{Summary: summary, Skipped: nonNilRows(parsed.Skipped)})
}

func readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		if !errors.Is(err, http.ErrNotMultipart) {
			return "", nil, err
		}
		data, err := io.ReadAll(r.Body)
		return queryValue(r, "filename"), data, err
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, fmt.Errorf("file field: %w", err)
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	return header.Filename, data, err
}

func nonNilRows(rows []pricelist.RowError) []pricelist.RowError {
	if rows == nil {
		return []pricelist.RowError{}
	}
	return rows
}
