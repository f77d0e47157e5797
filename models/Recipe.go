package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Difficulty grades how demanding a recipe is to prepare.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Difficulties lists every difficulty in ascending order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ParseDifficulty converts raw input into a Difficulty. Blank input yields nil.
func ParseDifficulty(value string) (*Difficulty, error) {
	if value == "" {
		return nil, nil
	}
	for _, difficulty := range Difficulties {
		if string(difficulty) == value {
			d := difficulty
			return &d, nil
		}
	}
	return nil, fmt.Errorf("unknown difficulty %q", value)
}

// RecipeStatus is the publication state of a recipe.
type RecipeStatus string

const (
	RecipeActive   RecipeStatus = "active"
	RecipeInactive RecipeStatus = "inactive"
	RecipeArchived RecipeStatus = "archived"
)

// RecipeStatuses lists every recipe status in display order.
var RecipeStatuses = []RecipeStatus{RecipeActive, RecipeInactive, RecipeArchived}

// ParseRecipeStatus converts raw input into a RecipeStatus. Blank input maps to active.
func ParseRecipeStatus(value string) (RecipeStatus, error) {
	if value == "" {
		return RecipeActive, nil
	}
	for _, status := range RecipeStatuses {
		if string(status) == value {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown recipe status %q", value)
}

// DefaultWastePercentage applies whenever a recipe carries no waste percentage.
var DefaultWastePercentage = decimal.NewFromInt(5)

// Recipe is a costed preparation belonging to an outlet.
type Recipe struct {
	Base
	OutletID        string              `gorm:"type:uuid;not null;index" json:"outlet_id"`
	Outlet          *Outlet             `gorm:"foreignKey:OutletID" json:"outlet,omitempty"`
	CategoryID      *string             `gorm:"type:uuid;index" json:"category_id"`
	Category        *Category           `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	RecipeNo        string              `gorm:"uniqueIndex;not null" json:"recipe_no"`
	Name            string              `gorm:"not null" json:"name"`
	Instructions    string              `gorm:"type:text" json:"instructions"`
	CriticalDetails string              `gorm:"type:text" json:"critical_details"`
	ImageURL        string              `json:"image_url"`
	PrepTime        *int                `json:"prep_time"`
	Difficulty      *Difficulty         `gorm:"type:varchar(8)" json:"difficulty"`
	YieldAmount     decimal.Decimal     `gorm:"type:decimal(12,4);not null;default:1" json:"yield_amount"`
	YieldUnit       string              `gorm:"not null" json:"yield_unit"`
	SalePrice       decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"sale_price"`
	WastePercentage decimal.NullDecimal `gorm:"type:decimal(5,2)" json:"waste_percentage"`
	Allergens       Allergens           `gorm:"serializer:json" json:"allergens"`
	Status          RecipeStatus        `gorm:"type:varchar(16);not null;default:active" json:"status"`
	Ingredients     []RecipeIngredient  `gorm:"foreignKey:RecipeID" json:"ingredients,omitempty"`
}

// Waste returns the waste percentage, falling back to DefaultWastePercentage.
func (r Recipe) Waste() decimal.Decimal {
	if r.WastePercentage.Valid {
		return r.WastePercentage.Decimal
	}
	return DefaultWastePercentage
}

// CategoryName returns the joined category name or an empty string.
func (r Recipe) CategoryName() string {
	if r.Category == nil {
		return ""
	}
	return r.Category.Name
}

// RecipeIngredient is one ordered line of a recipe.
type RecipeIngredient struct {
	Base
	RecipeID     string          `gorm:"type:uuid;not null;index" json:"recipe_id"`
	IngredientID string          `gorm:"type:uuid;not null;index" json:"ingredient_id"`
	Ingredient   *Ingredient     `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
	Quantity     decimal.Decimal `gorm:"type:decimal(12,4);not null" json:"quantity"`
	Unit         string          `json:"unit"`
	PrepDetail   string          `json:"prep_detail"`
	SortOrder    int             `gorm:"not null;default:0" json:"sort_order"`
}

// UnitCost returns the referenced ingredient's cost per unit, zero when not loaded.
func (ri RecipeIngredient) UnitCost() decimal.Decimal {
	if ri.Ingredient == nil {
		return decimal.Zero
	}
	return ri.Ingredient.CostPerUnit
}

// IngredientName returns the referenced ingredient's name or "-".
func (ri RecipeIngredient) IngredientName() string {
	if ri.Ingredient == nil || ri.Ingredient.Name == "" {
		return "-"
	}
	return ri.Ingredient.Name
}

// DisplayUnit resolves the line unit, then the ingredient base unit, then "-".
func (ri RecipeIngredient) DisplayUnit() string {
	if ri.Unit != "" {
		return ri.Unit
	}
	if ri.Ingredient != nil && ri.Ingredient.BaseUnit != "" {
		return ri.Ingredient.BaseUnit
	}
	return "-"
}
