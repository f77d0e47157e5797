package validation

import (
	"strings"

	"github.com/shopspring/decimal"

	"kitchenos/internal/store"
	"kitchenos/models"
)

// OutletForm is the accepted shape of an outlet create or update.
type OutletForm struct {
	Name     string `json:"name" validate:"min=2"`
	Type     string `json:"type"`
	Location string `json:"location"`
	Status   string `json:"status" validate:"omitempty,oneof=active inactive maintenance closed"`
}

func (f *OutletForm) normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Type = strings.TrimSpace(f.Type)
	f.Location = strings.TrimSpace(f.Location)
	f.Status = strings.TrimSpace(f.Status)
}

// Outlet maps a validated form onto the model.
func (f OutletForm) Outlet() models.Outlet {
	status, err := models.ParseOutletStatus(f.Status)
	if err != nil {
		status = models.OutletActive
	}
	return models.Outlet{Name: f.Name, Type: f.Type, Location: f.Location, Status: status}
}

// IngredientForm is the accepted shape of a library ingredient.
type IngredientForm struct {
	Name         string `json:"name" validate:"min=2"`
	IngredientNo string `json:"ingredient_no"`
	Category     string `json:"category"`
	BaseUnit     string `json:"base_unit" validate:"min=1"`
	CostPerUnit  *Number `json:"cost_per_unit" validate:"required,gte=0"`
	Supplier     string `json:"supplier"`
}

func (f *IngredientForm) normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.IngredientNo = strings.TrimSpace(f.IngredientNo)
	f.Category = strings.TrimSpace(f.Category)
	f.BaseUnit = strings.TrimSpace(f.BaseUnit)
	f.Supplier = strings.TrimSpace(f.Supplier)
	if f.CostPerUnit != nil && !f.CostPerUnit.Valid {
		f.CostPerUnit = nil
	}
}

// Ingredient maps a validated form onto the model.
func (f IngredientForm) Ingredient() models.Ingredient {
	return models.Ingredient{
		Name:         f.Name,
		IngredientNo: f.IngredientNo,
		Category:     f.Category,
		BaseUnit:     f.BaseUnit,
		CostPerUnit:  costOrZero(f.CostPerUnit),
		Supplier:     f.Supplier,
	}
}

func costOrZero(n *Number) decimal.Decimal {
	if cost := n.Ptr(); cost != nil {
		return *cost
	}
	return decimal.Zero
}

// CategoryForm is the accepted shape of a recipe category.
type CategoryForm struct {
	Name      string `json:"name" validate:"min=1"`
	SortOrder *int   `json:"sort_order" validate:"omitempty,gte=0"`
}

func (f *CategoryForm) normalize() {
	f.Name = strings.TrimSpace(f.Name)
}

// UnitForm is the accepted shape of a measurement unit.
type UnitForm struct {
	Name         string `json:"name" validate:"min=1"`
	Abbreviation string `json:"abbreviation" validate:"min=1"`
}

func (f *UnitForm) normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Abbreviation = strings.TrimSpace(f.Abbreviation)
}

// Unit maps a validated form onto the model.
func (f UnitForm) Unit() models.Unit {
	return models.Unit{Name: f.Name, Abbreviation: f.Abbreviation}
}

// RecipeLineForm is one ingredient line of a recipe form. A line references a
// library ingredient by id or names a new one to be created on save.
type RecipeLineForm struct {
	IngredientID   string `json:"ingredient_id"`
	IngredientName string `json:"ingredient_name" validate:"required_without=IngredientID"`
	Quantity       Number `json:"quantity" validate:"positive"`
	Unit           string `json:"unit"`
	PrepDetail     string `json:"prep_detail"`
	CostPerUnit    Number `json:"cost_per_unit"`
}

// RecipeForm is the accepted shape of a recipe with its nested lines.
type RecipeForm struct {
	RecipeNo        string           `json:"recipe_no" validate:"recipe_no"`
	Name            string           `json:"name" validate:"min=2"`
	CategoryID      *string          `json:"category_id"`
	CriticalDetails string           `json:"critical_details"`
	Instructions    string           `json:"instructions"`
	ImageURL        string           `json:"image_url" validate:"omitempty,url"`
	PrepTime        *int             `json:"prep_time" validate:"omitempty,gte=0"`
	Difficulty      *string          `json:"difficulty" validate:"omitempty,oneof=Easy Medium Hard"`
	YieldAmount     Number           `json:"yield_amount" validate:"gte=1"`
	YieldUnit       string           `json:"yield_unit" validate:"min=1"`
	SalePrice       *Number          `json:"sale_price" validate:"omitempty,gte=0"`
	WastePercentage *Number          `json:"waste_percentage" validate:"omitempty,gte=0,lte=100"`
	Status          string           `json:"status" validate:"omitempty,oneof=active inactive archived"`
	Allergens       models.Allergens `json:"allergens"`
	Ingredients     []RecipeLineForm `json:"ingredients" validate:"dive"`
}

func (f *RecipeForm) normalize() {
	f.RecipeNo = strings.TrimSpace(f.RecipeNo)
	f.Name = strings.TrimSpace(f.Name)
	f.CriticalDetails = strings.TrimSpace(f.CriticalDetails)
	f.Instructions = strings.TrimSpace(f.Instructions)
	f.ImageURL = strings.TrimSpace(f.ImageURL)
	f.YieldUnit = strings.TrimSpace(f.YieldUnit)
	f.Status = strings.TrimSpace(f.Status)
	if f.CategoryID != nil && strings.TrimSpace(*f.CategoryID) == "" {
		f.CategoryID = nil
	}
	if f.Difficulty != nil && strings.TrimSpace(*f.Difficulty) == "" {
		f.Difficulty = nil
	}
	if f.SalePrice != nil && !f.SalePrice.Valid {
		f.SalePrice = nil
	}
	if f.WastePercentage != nil && !f.WastePercentage.Valid {
		f.WastePercentage = nil
	}
	for i := range f.Ingredients {
		line := &f.Ingredients[i]
		line.IngredientID = strings.TrimSpace(line.IngredientID)
		line.IngredientName = strings.TrimSpace(line.IngredientName)
		line.Unit = strings.TrimSpace(line.Unit)
		line.PrepDetail = strings.TrimSpace(line.PrepDetail)
	}
}

// Draft maps a validated form onto the store's save input for the given
// outlet. recipeID is blank when creating.
func (f RecipeForm) Draft(outletID, recipeID string) store.RecipeDraft {
	recipe := models.Recipe{
		OutletID:        outletID,
		CategoryID:      f.CategoryID,
		RecipeNo:        f.RecipeNo,
		Name:            f.Name,
		Instructions:    f.Instructions,
		CriticalDetails: f.CriticalDetails,
		ImageURL:        f.ImageURL,
		PrepTime:        f.PrepTime,
		YieldAmount:     f.YieldAmount.Decimal,
		YieldUnit:       f.YieldUnit,
		WastePercentage: decimal.NewNullDecimal(models.DefaultWastePercentage),
		Allergens:       f.Allergens,
	}
	recipe.ID = recipeID
	if f.Difficulty != nil {
		if d, err := models.ParseDifficulty(*f.Difficulty); err == nil {
			recipe.Difficulty = d
		}
	}
	if sale := f.SalePrice.Ptr(); sale != nil {
		recipe.SalePrice = decimal.NewNullDecimal(*sale)
	}
	if waste := f.WastePercentage.Ptr(); waste != nil {
		recipe.WastePercentage = decimal.NewNullDecimal(*waste)
	}
	if status, err := models.ParseRecipeStatus(f.Status); err == nil {
		recipe.Status = status
	}

	lines := make([]store.LineDraft, 0, len(f.Ingredients))
	for _, line := range f.Ingredients {
		lines = append(lines, store.LineDraft{
			IngredientID:   line.IngredientID,
			IngredientName: line.IngredientName,
			Quantity:       line.Quantity.Decimal,
			Unit:           line.Unit,
			PrepDetail:     line.PrepDetail,
			CostPerUnit:    line.CostPerUnit.Decimal,
		})
	}
	return store.RecipeDraft{Recipe: recipe, Lines: lines}
}

// RecipeFormFrom maps a stored recipe with preloaded lines back onto the form
// shape used to prefill an edit.
func RecipeFormFrom(recipe models.Recipe) RecipeForm {
	form := RecipeForm{
		RecipeNo:        recipe.RecipeNo,
		Name:            recipe.Name,
		CategoryID:      recipe.CategoryID,
		CriticalDetails: recipe.CriticalDetails,
		Instructions:    recipe.Instructions,
		ImageURL:        recipe.ImageURL,
		PrepTime:        recipe.PrepTime,
		YieldAmount:     NewNumber(recipe.YieldAmount),
		YieldUnit:       recipe.YieldUnit,
		Status:          string(recipe.Status),
		Allergens:       recipe.Allergens,
	}
	if recipe.Difficulty != nil {
		d := string(*recipe.Difficulty)
		form.Difficulty = &d
	}
	if recipe.SalePrice.Valid {
		sale := NewNumber(recipe.SalePrice.Decimal)
		form.SalePrice = &sale
	}
	waste := NewNumber(recipe.Waste())
	form.WastePercentage = &waste

	form.Ingredients = make([]RecipeLineForm, 0, len(recipe.Ingredients))
	for _, ri := range recipe.Ingredients {
		line := RecipeLineForm{
			IngredientID: ri.IngredientID,
			Quantity:     NewNumber(ri.Quantity),
			Unit:         ri.Unit,
			PrepDetail:   ri.PrepDetail,
			CostPerUnit:  NewNumber(ri.UnitCost()),
		}
		if ri.Ingredient != nil {
			line.IngredientName = ri.Ingredient.Name
		}
		form.Ingredients = append(form.Ingredients, line)
	}
	return form
}
