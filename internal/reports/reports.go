// Package reports assembles the data behind every export. The workbook and
// document packages only lay out what is built here, so both formats show the
// same figures.
package reports

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"kitchenos/internal/costing"
	"kitchenos/internal/export"
	"kitchenos/models"
)

// Uncategorized labels recipes and ingredients without a category.
const Uncategorized = "Kategorisiz"

const defaultProductName = "Kitchen OS"

// Format is an export file format.
type Format string

const (
	PDF  Format = "pdf"
	XLSX Format = "xlsx"
)

// ParseFormat accepts "pdf" or "xlsx", case-insensitively.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case PDF:
		return PDF, nil
	case XLSX:
		return XLSX, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", value)
	}
}

// ContentType is the MIME type served for the format.
func (f Format) ContentType() string {
	if f == XLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/pdf"
}

// Kind names a report flavour.
type Kind string

const (
	KindOutlet      Kind = "outlet"
	KindMenu        Kind = "menu"
	KindRecipe      Kind = "recipe"
	KindIngredients Kind = "ingredients"
)

// Renderer turns assembled report data into a complete file. Implementations
// return bytes only after the whole file rendered successfully.
type Renderer interface {
	Outlet(report OutletReport) ([]byte, error)
	Menu(report OutletReport) ([]byte, error)
	Recipe(report RecipeReport) ([]byte, error)
	Ingredients(report IngredientLibrary) ([]byte, error)
}

// Meta is stamped on every report.
type Meta struct {
	GeneratedAt time.Time
	ReportID    string
	ProductName string
}

// NewMeta stamps a report generated at now.
func NewMeta(now time.Time, productName string) Meta {
	if strings.TrimSpace(productName) == "" {
		productName = defaultProductName
	}
	return Meta{GeneratedAt: now, ReportID: export.ReportID(now), ProductName: productName}
}

// Line is one costed ingredient line ready for display.
type Line struct {
	Name       string
	Quantity   decimal.Decimal
	Unit       string
	PrepDetail string
	UnitCost   decimal.Decimal
	Cost       decimal.Decimal
}

// PrepOrDash returns the preparation detail or "-".
func (l Line) PrepOrDash() string {
	return OrDash(l.PrepDetail)
}

// RecipeEntry is a recipe with its resolved category, display lines and cost breakdown.
type RecipeEntry struct {
	Recipe       models.Recipe
	CategoryName string
	Lines        []Line
	Cost         costing.Breakdown
	Allergens    []string
}

// NewRecipeEntry costs a recipe with preloaded lines. categoryName is blank for
// uncategorized recipes.
func NewRecipeEntry(recipe models.Recipe, categoryName string) RecipeEntry {
	entry := RecipeEntry{
		Recipe:       recipe,
		CategoryName: categoryName,
		Lines:        make([]Line, 0, len(recipe.Ingredients)),
		Cost:         costing.ForRecipe(recipe),
		Allergens:    export.ActiveAllergens(recipe.Allergens),
	}
	for _, ri := range recipe.Ingredients {
		line := costing.Line{Quantity: ri.Quantity, UnitCost: ri.UnitCost()}
		entry.Lines = append(entry.Lines, Line{
			Name:       ri.IngredientName(),
			Quantity:   ri.Quantity,
			Unit:       ri.DisplayUnit(),
			PrepDetail: ri.PrepDetail,
			UnitCost:   line.UnitCost,
			Cost:       line.Cost(),
		})
	}
	return entry
}

// CategoryLabel is the category name or Uncategorized.
func (e RecipeEntry) CategoryLabel() string {
	if e.CategoryName == "" {
		return Uncategorized
	}
	return e.CategoryName
}

// Difficulty is the display label of the difficulty or "-".
func (e RecipeEntry) Difficulty() string {
	return export.DifficultyLabel(e.Recipe.Difficulty)
}

// PrepTime renders the preparation time with the given unit suffix, or "-".
func (e RecipeEntry) PrepTime(suffix string) string {
	if e.Recipe.PrepTime == nil || *e.Recipe.PrepTime == 0 {
		return "-"
	}
	return fmt.Sprintf("%d %s", *e.Recipe.PrepTime, suffix)
}

// Yield renders "4 porsiyon".
func (e RecipeEntry) Yield() string {
	return export.YieldText(e.Recipe.YieldAmount, e.Recipe.YieldUnit)
}

// WasteText renders the waste percentage as typed, without rounding.
func (e RecipeEntry) WasteText() string {
	return e.Cost.WastePercentage.String()
}

// AllergenText joins the active allergen labels, or returns none.
func (e RecipeEntry) AllergenText(none string) string {
	if len(e.Allergens) == 0 {
		return none
	}
	return strings.Join(e.Allergens, ", ")
}

// CategoryGroup is a category with its recipes, in display order.
type CategoryGroup struct {
	Category models.Category
	Recipes  []RecipeEntry
}

// Stats are the outlet-level totals.
type Stats struct {
	Recipes     int
	Categories  int
	TotalCost   decimal.Decimal
	TotalSale   decimal.Decimal
	TotalProfit decimal.Decimal
}

// OutletReport feeds both the outlet report and the menu.
type OutletReport struct {
	Meta
	Outlet models.Outlet
	// Groups holds only categories that have recipes, in sort order.
	Groups        []CategoryGroup
	Uncategorized []RecipeEntry
	// Recipes lists every recipe in input order.
	Recipes []RecipeEntry
	Stats   Stats
	Usage   []UsageRow
}

// BuildOutlet groups recipes under their categories. Recipes without a
// category, or pointing at a category not in categories, are collected as
// uncategorized.
func BuildOutlet(outlet models.Outlet, categories []models.Category, recipes []models.Recipe, meta Meta) OutletReport {
	report := OutletReport{
		Meta:          meta,
		Outlet:        outlet,
		Uncategorized: []RecipeEntry{},
		Recipes:       make([]RecipeEntry, 0, len(recipes)),
	}

	names := make(map[string]string, len(categories))
	for _, category := range categories {
		names[category.ID] = category.Name
	}
	byCategory := make(map[string][]RecipeEntry, len(categories))
	for _, recipe := range recipes {
		var categoryID, categoryName string
		if recipe.CategoryID != nil {
			if name, ok := names[*recipe.CategoryID]; ok {
				categoryID, categoryName = *recipe.CategoryID, name
			}
		}
		entry := NewRecipeEntry(recipe, categoryName)
		report.Recipes = append(report.Recipes, entry)
		if categoryID == "" {
			report.Uncategorized = append(report.Uncategorized, entry)
			continue
		}
		byCategory[categoryID] = append(byCategory[categoryID], entry)
	}

	for _, category := range categories {
		if entries := byCategory[category.ID]; len(entries) > 0 {
			report.Groups = append(report.Groups, CategoryGroup{Category: category, Recipes: entries})
		}
	}

	report.Stats = summarize(report.Recipes, len(categories))
	report.Usage = UsageRollup(report.Recipes)
	return report
}

// BuildMenu assembles menu data. Menus use the outlet grouping without the
// statistics block.
func BuildMenu(outlet models.Outlet, categories []models.Category, recipes []models.Recipe, meta Meta) OutletReport {
	return BuildOutlet(outlet, categories, recipes, meta)
}

func summarize(entries []RecipeEntry, categories int) Stats {
	breakdowns := make([]costing.Breakdown, 0, len(entries))
	for _, entry := range entries {
		breakdowns = append(breakdowns, entry.Cost)
	}
	summary := costing.Summarize(breakdowns)
	return Stats{
		Recipes:     summary.Recipes,
		Categories:  categories,
		TotalCost:   summary.TotalCost,
		TotalSale:   summary.TotalSale,
		TotalProfit: summary.TotalProfit,
	}
}

// ReportFilename is the outlet report file name for the format.
func (r OutletReport) ReportFilename(format Format) string {
	return export.OutletReportFilename(r.Outlet.Name, r.GeneratedAt, string(format))
}

// MenuFilename is the menu file name for the format.
func (r OutletReport) MenuFilename(format Format) string {
	return export.MenuFilename(r.Outlet.Name, r.GeneratedAt, string(format))
}

// AllergenRow is one fixed allergen with its state on a recipe.
type AllergenRow struct {
	Label  string
	Active bool
}

// RecipeReport is the single-recipe export.
type RecipeReport struct {
	Meta
	Entry      RecipeEntry
	OutletName string
	// Allergens lists all fifteen allergens in fixed order.
	Allergens []AllergenRow
}

// BuildRecipe assembles a single-recipe report.
func BuildRecipe(recipe models.Recipe, outletName, categoryName string, meta Meta) RecipeReport {
	report := RecipeReport{
		Meta:       meta,
		Entry:      NewRecipeEntry(recipe, categoryName),
		OutletName: outletName,
	}
	for _, flag := range recipe.Allergens.Flags() {
		report.Allergens = append(report.Allergens, AllergenRow{Label: export.AllergenLabel(flag.Key), Active: flag.Active})
	}
	return report
}

// Filename is "<RecipeNo>_<Name>.<ext>".
func (r RecipeReport) Filename(format Format) string {
	return export.RecipeFilename(r.Entry.Recipe.RecipeNo, r.Entry.Recipe.Name, string(format))
}

// IngredientGroup is an ingredient category with its ingredients.
type IngredientGroup struct {
	Name        string
	Ingredients []models.Ingredient
}

// IngredientLibrary is the ingredient library export.
type IngredientLibrary struct {
	Meta
	Ingredients []models.Ingredient
	Groups      []IngredientGroup
}

// BuildIngredientLibrary groups ingredients by category in first-seen order.
func BuildIngredientLibrary(ingredients []models.Ingredient, meta Meta) IngredientLibrary {
	library := IngredientLibrary{Meta: meta, Ingredients: ingredients}
	index := make(map[string]int)
	for _, ingredient := range ingredients {
		name := ingredient.Category
		if strings.TrimSpace(name) == "" {
			name = Uncategorized
		}
		i, ok := index[name]
		if !ok {
			i = len(library.Groups)
			index[name] = i
			library.Groups = append(library.Groups, IngredientGroup{Name: name})
		}
		library.Groups[i].Ingredients = append(library.Groups[i].Ingredients, ingredient)
	}
	return library
}

// Filename is "Malzeme_Kutuphanesi_<Date>.<ext>".
func (l IngredientLibrary) Filename(format Format) string {
	return export.IngredientLibraryFilename(l.GeneratedAt, string(format))
}

// OrDash returns value, or "-" when it is blank.
func OrDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
