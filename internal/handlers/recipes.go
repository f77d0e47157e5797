package handlers

import (
	"net/http"
	"strconv"

	"kitchenos/internal/costing"
	applog "kitchenos/internal/log"
	"kitchenos/internal/store"
	"kitchenos/internal/validation"
	"kitchenos/models"
)

// recipeResponse is a recipe with its computed cost breakdown.
type recipeResponse struct {
	models.Recipe
	Cost costing.Breakdown `json:"cost"`
}

func newRecipeResponse(recipe models.Recipe) recipeResponse {
	return recipeResponse{Recipe: recipe, Cost: costing.ForRecipe(recipe)}
}

func newRecipeResponses(recipes []models.Recipe) []recipeResponse {
	out := make([]recipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		out = append(out, newRecipeResponse(recipe))
	}
	return out
}

type nextNumberResponse struct {
	RecipeNo string `json:"recipe_no"`
}

// ListRecipes returns recipes filtered by outlet_id, category_id,
// uncategorized and q.
func (h *Handler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	filter := store.RecipeFilter{
		OutletID:   queryValue(r, "outlet_id"),
		CategoryID: queryValue(r, "category_id"),
		Search:     queryValue(r, "q"),
	}
	if value := queryValue(r, "uncategorized"); value != "" {
		filter.Uncategorized, _ = strconv.ParseBool(value)
	}
	h.listRecipes(w, r, filter)
}

// ListOutletRecipes returns the recipes of one outlet.
func (h *Handler) ListOutletRecipes(w http.ResponseWriter, r *http.Request) {
	outletID := idParam(r)
	if _, err := h.store.GetOutlet(r.Context(), outletID); err != nil {
		writeError(w, r, err)
		return
	}
	h.listRecipes(w, r, store.RecipeFilter{OutletID: outletID, Search: queryValue(r, "q")})
}

func (h *Handler) listRecipes(w http.ResponseWriter, r *http.Request, filter store.RecipeFilter) {
	recipes, err := h.store.ListRecipes(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, newRecipeResponses(recipes))
}

// GetRecipe returns one recipe with its lines and cost breakdown.
func (h *Handler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	recipe, err := h.store.GetRecipe(r.Context(), idParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, newRecipeResponse(*recipe))
}

// RecipeForm returns a stored recipe in the shape accepted by UpdateRecipe.
func (h *Handler) RecipeForm(w http.ResponseWriter, r *http.Request) {
	recipe, err := h.store.GetRecipe(r.Context(), idParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, validation.RecipeFormFrom(*recipe))
}

// NextRecipeNumber previews the number the next new recipe would receive.
func (h *Handler) NextRecipeNumber(w http.ResponseWriter, r *http.Request) {
	number, err := h.store.NextRecipeNumber(r.Context(), h.localNow())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, nextNumberResponse{RecipeNo: number})
}

// CreateRecipe saves a new recipe with its lines under an outlet. A blank
// recipe_no is assigned from the yearly sequence.
func (h *Handler) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	outletID := idParam(r)
	if _, err := h.store.GetOutlet(r.Context(), outletID); err != nil {
		writeError(w, r, err)
		return
	}
	var form validation.RecipeForm
	if err := decodeForm(r, &form); err != nil {
		writeError(w, r, err)
		return
	}
	recipe, err := h.store.SaveRecipe(r.Context(), form.Draft(outletID, ""))
	if err != nil {
		writeError(w, r, err)
		return
	}
	applog.Info(r.Context(), "recipe created", "recipe", recipe.ID, "recipeNo", recipe.RecipeNo)
	writeJSON(w, r, http.StatusCreated, newRecipeResponse(*recipe))
}

// UpdateRecipe overwrites a recipe and replaces all of its lines. A blank
// recipe_no keeps the current number.
func (h *Handler) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	existing, err := h.store.GetRecipe(r.Context(), idParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	var form validation.RecipeForm
	if err := decodeForm(r, &form); err != nil {
		writeError(w, r, err)
		return
	}
	recipe, err := h.store.SaveRecipe(r.Context(), form.Draft(existing.OutletID, existing.ID))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, newRecipeResponse(*recipe))
}

// DeleteRecipe removes a recipe and its lines.
func (h *Handler) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	if err := h.store.DeleteRecipe(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	applog.Info(r.Context(), "recipe deleted", "recipe", id)
	w.WriteHeader(http.StatusNoContent)
}
