package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"kitchenos/internal/store"
)

type recipePayload struct {
	ID         string  `json:"id"`
	RecipeNo   string  `json:"recipe_no"`
	Name       string  `json:"name"`
	CategoryID *string `json:"category_id"`
	Cost       struct {
		IngredientsCost string `json:"ingredients_cost"`
		TotalCost       string `json:"total_cost"`
		ProfitMargin    string `json:"profit_margin"`
	} `json:"cost"`
	Ingredients []struct {
		IngredientID string `json:"ingredient_id"`
		SortOrder    int    `json:"sort_order"`
	} `json:"ingredients"`
}

func countRecipes(t *testing.T, s store.Store, outletID string) int {
	t.Helper()
	recipes, err := s.ListRecipes(context.Background(), store.RecipeFilter{OutletID: outletID})
	if err != nil {
		t.Fatalf("list recipes: %v", err)
	}
	return len(recipes)
}

func TestCreateRecipeAssignsNumberAndCost(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	outlet := findOutlet(t, env.store, "Moda Pastanesi")
	flour := findIngredient(t, env.store, "Un")

	body := `{
		"name": "Kurabiye",
		"yield_amount": "20",
		"yield_unit": "adet",
		"sale_price": 200,
		"waste_percentage": "",
		"ingredients": [
			{"ingredient_id": "` + flour.ID + `", "quantity": "2", "unit": "kg"},
			{"ingredient_name": "Tarçın", "quantity": 0.1, "unit": "kg", "cost_per_unit": "400"}
		]
	}`
	rr := serve(env.handler.CreateRecipe, newRequest(http.MethodPost, "/", body, map[string]string{"id": outlet.ID}))
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var recipe recipePayload
	decodeBody(t, rr, &recipe)
	if !strings.HasPrefix(recipe.RecipeNo, "RCP-") {
		t.Fatalf("expected a generated recipe number, got %q", recipe.RecipeNo)
	}
	if len(recipe.Ingredients) != 2 || recipe.Ingredients[1].SortOrder != 1 {
		t.Fatalf("expected two ordered lines, got %+v", recipe.Ingredients)
	}
	// 2 × 28.50 + 0.1 × 400 = 97, plus the default 5% waste.
	if recipe.Cost.IngredientsCost != "97" || recipe.Cost.TotalCost != "101.85" {
		t.Fatalf("unexpected cost breakdown: %+v", recipe.Cost)
	}
	findIngredient(t, env.store, "Tarçın")
}

func TestCreateRecipeReportsLineErrors(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	outlet := findOutlet(t, env.store, "Moda Pastanesi")

	body := `{"name":"Lokma","yield_amount":1,"yield_unit":"tabak","ingredients":[{"ingredient_name":"Un","quantity":""}]}`
	rr := serve(env.handler.CreateRecipe, newRequest(http.MethodPost, "/", body, map[string]string{"id": outlet.ID}))
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
	var failure errorResponse
	decodeBody(t, rr, &failure)
	if _, ok := failure.Fields["ingredients[0].quantity"]; !ok {
		t.Fatalf("expected a nested field error, got %+v", failure.Fields)
	}
	if len(failure.Messages) == 0 || !strings.HasPrefix(failure.Messages[0], "Row 1 (quantity)") {
		t.Fatalf("expected a row message, got %+v", failure.Messages)
	}
}

func TestCreateRecipeRollsBackOnUnknownIngredient(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	outlet := findOutlet(t, env.store, "Moda Pastanesi")
	before := countRecipes(t, env.store, outlet.ID)

	body := `{"name":"Hayalet","yield_amount":1,"yield_unit":"kase","ingredients":[
		{"ingredient_name":"Kakao","quantity":1,"unit":"kg"},
		{"ingredient_id":"00000000-0000-0000-0000-000000000000","quantity":1}
	]}`
	rr := serve(env.handler.CreateRecipe, newRequest(http.MethodPost, "/", body, map[string]string{"id": outlet.ID}))
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rr.Code, rr.Body.String())
	}
	if after := countRecipes(t, env.store, outlet.ID); after != before {
		t.Fatalf("expected no recipe to be saved, had %d now %d", before, after)
	}
	ingredients, err := env.store.ListIngredients(context.Background(), store.IngredientFilter{Search: "kakao"})
	if err != nil {
		t.Fatalf("list ingredients: %v", err)
	}
	if len(ingredients) != 0 {
		t.Fatal("expected the auto-created ingredient to be rolled back")
	}
}

func TestCreateRecipeForUnknownOutlet(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	body := `{"name":"Yetim","yield_amount":1,"yield_unit":"kase"}`
	rr := serve(env.handler.CreateRecipe, newRequest(http.MethodPost, "/", body, map[string]string{"id": "missing"}))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestUpdateRecipeKeepsNumberAndReplacesLines(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	outlet := findOutlet(t, env.store, "Bistro Kadıköy")
	recipes, err := env.store.ListRecipes(context.Background(), store.RecipeFilter{OutletID: outlet.ID, Search: "pilav"})
	if err != nil || len(recipes) != 1 {
		t.Fatalf("expected the seeded pilav, got %d (%v)", len(recipes), err)
	}
	existing := recipes[0]
	rice := findIngredient(t, env.store, "Pirinç")

	body := `{"name":"Sade Pilav","yield_amount":"4","yield_unit":"porsiyon","category_id":"","ingredients":[{"ingredient_id":"` + rice.ID + `","quantity":"0.4"}]}`
	rr := serve(env.handler.UpdateRecipe, newRequest(http.MethodPut, "/", body, map[string]string{"id": existing.ID}))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var updated recipePayload
	decodeBody(t, rr, &updated)
	if updated.RecipeNo != existing.RecipeNo {
		t.Fatalf("expected recipe number %s to be kept, got %s", existing.RecipeNo, updated.RecipeNo)
	}
	if updated.CategoryID != nil {
		t.Fatalf("expected the recipe to become uncategorized, got %v", *updated.CategoryID)
	}
	if len(updated.Ingredients) != 1 {
		t.Fatalf("expected lines to be replaced, got %d", len(updated.Ingredients))
	}
}

func TestRecipeFormPrefillsEdit(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	recipes, err := env.store.ListRecipes(context.Background(), store.RecipeFilter{Search: "baklava"})
	if err != nil || len(recipes) != 1 {
		t.Fatalf("expected the seeded baklava, got %d (%v)", len(recipes), err)
	}

	rr := serve(env.handler.RecipeForm, newRequest(http.MethodGet, "/", "", map[string]string{"id": recipes[0].ID}))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var form struct {
		Name        string `json:"name"`
		Ingredients []struct {
			IngredientName string `json:"ingredient_name"`
		} `json:"ingredients"`
	}
	decodeBody(t, rr, &form)
	if form.Name != "Fıstıklı Baklava" || len(form.Ingredients) != 4 || form.Ingredients[0].IngredientName != "Un" {
		t.Fatalf("unexpected form: %+v", form)
	}
}

func TestListAndDeleteRecipes(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	outlet := findOutlet(t, env.store, "Bistro Kadıköy")

	rr := serve(env.handler.ListRecipes, newRequest(http.MethodGet, "/api/recipes?outlet_id="+outlet.ID+"&uncategorized=true", "", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var recipes []recipePayload
	decodeBody(t, rr, &recipes)
	if len(recipes) != 1 || recipes[0].Name != "Günün Tatlısı" {
		t.Fatalf("expected only the uncategorized dessert, got %+v", recipes)
	}
	if recipes[0].Cost.TotalCost == "" {
		t.Fatal("expected the cost breakdown to be embedded")
	}

	rr = serve(env.handler.DeleteRecipe, newRequest(http.MethodDelete, "/", "", map[string]string{"id": recipes[0].ID}))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
	rr = serve(env.handler.GetRecipe, newRequest(http.MethodGet, "/", "", map[string]string{"id": recipes[0].ID}))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rr.Code)
	}

	rr = serve(env.handler.ListOutletRecipes, newRequest(http.MethodGet, "/", "", map[string]string{"id": outlet.ID}))
	decodeBody(t, rr, &recipes)
	if len(recipes) != 3 {
		t.Fatalf("expected 3 remaining recipes, got %d", len(recipes))
	}
}

func TestNextRecipeNumber(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rr := serve(env.handler.NextRecipeNumber, newRequest(http.MethodGet, "/api/recipes/next-number", "", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var next nextNumberResponse
	decodeBody(t, rr, &next)
	if !strings.HasPrefix(next.RecipeNo, "RCP-2026-") {
		t.Fatalf("expected a number in the handler's year, got %q", next.RecipeNo)
	}
}
