package models

import "github.com/shopspring/decimal"

// Ingredient is a raw material of the global price library.
type Ingredient struct {
	Base
	Name         string          `gorm:"not null;index" json:"name"`
	IngredientNo string          `json:"ingredient_no"`
	Category     string          `json:"category"`
	Supplier     string          `json:"supplier"`
	BaseUnit     string          `gorm:"not null" json:"base_unit"`
	CostPerUnit  decimal.Decimal `gorm:"type:decimal(12,4);not null;default:0" json:"cost_per_unit"`
}
