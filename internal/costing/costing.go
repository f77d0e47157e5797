// Package costing turns recipe ingredient lines into cost and margin figures.
// Every view and report derives its numbers from Calculate so that list
// roll-ups, detail pages and exports always agree.
package costing

import (
	"github.com/shopspring/decimal"

	"kitchenos/models"
)

var hundred = decimal.NewFromInt(100)

// Line is a resolved ingredient line: how much is used and what one unit costs.
type Line struct {
	Quantity decimal.Decimal
	UnitCost decimal.Decimal
}

// Cost returns quantity × unit cost.
func (l Line) Cost() decimal.Decimal {
	return l.Quantity.Mul(l.UnitCost)
}

// Input describes everything the calculator needs about a recipe.
type Input struct {
	Lines []Line
	// WastePercentage defaults to models.DefaultWastePercentage when nil.
	WastePercentage *decimal.Decimal
	// YieldAmount is treated as 1 when zero.
	YieldAmount decimal.Decimal
	// SalePrice is optional; a nil or zero price produces a zero margin.
	SalePrice *decimal.Decimal
}

// Breakdown is the computed cost structure of a recipe.
type Breakdown struct {
	IngredientsCost  decimal.Decimal  `json:"ingredients_cost"`
	WastePercentage  decimal.Decimal  `json:"waste_percentage"`
	WasteCost        decimal.Decimal  `json:"waste_cost"`
	TotalCost        decimal.Decimal  `json:"total_cost"`
	CostPerYieldUnit decimal.Decimal  `json:"cost_per_yield_unit"`
	SalePrice        *decimal.Decimal `json:"sale_price"`
	Profit           decimal.Decimal  `json:"profit"`
	ProfitMargin     decimal.Decimal  `json:"profit_margin"`
}

// Calculate computes the cost breakdown. It performs no validation: negative
// quantities or costs flow through the arithmetic unchanged.
func Calculate(in Input) Breakdown {
	ingredients := decimal.Zero
	for _, line := range in.Lines {
		ingredients = ingredients.Add(line.Cost())
	}

	waste := models.DefaultWastePercentage
	if in.WastePercentage != nil {
		waste = *in.WastePercentage
	}
	wasteCost := ingredients.Mul(waste.Shift(-2))
	total := ingredients.Add(wasteCost)

	yield := in.YieldAmount
	if yield.IsZero() {
		yield = decimal.NewFromInt(1)
	}

	sale := decimal.Zero
	if in.SalePrice != nil {
		sale = *in.SalePrice
	}

	return Breakdown{
		IngredientsCost:  ingredients,
		WastePercentage:  waste,
		WasteCost:        wasteCost,
		TotalCost:        total,
		CostPerYieldUnit: total.Div(yield),
		SalePrice:        in.SalePrice,
		Profit:           sale.Sub(total),
		ProfitMargin:     Margin(in.SalePrice, total),
	}
}

// Margin returns (sale − cost) / sale × 100, or zero when sale is nil or zero.
func Margin(sale *decimal.Decimal, cost decimal.Decimal) decimal.Decimal {
	if sale == nil || sale.IsZero() {
		return decimal.Zero
	}
	return sale.Sub(cost).Div(*sale).Mul(hundred)
}

// ForRecipe maps a recipe with preloaded ingredient lines onto Calculate.
// Lines whose ingredient is not loaded contribute a zero unit cost.
func ForRecipe(recipe models.Recipe) Breakdown {
	return Calculate(InputFor(recipe))
}

// InputFor builds the calculator input for a recipe.
func InputFor(recipe models.Recipe) Input {
	lines := make([]Line, 0, len(recipe.Ingredients))
	for _, ri := range recipe.Ingredients {
		lines = append(lines, Line{Quantity: ri.Quantity, UnitCost: ri.UnitCost()})
	}

	in := Input{
		Lines:       lines,
		YieldAmount: recipe.YieldAmount,
	}
	if recipe.WastePercentage.Valid {
		waste := recipe.WastePercentage.Decimal
		in.WastePercentage = &waste
	}
	if recipe.SalePrice.Valid {
		sale := recipe.SalePrice.Decimal
		in.SalePrice = &sale
	}
	return in
}

// Summary aggregates breakdowns across many recipes.
type Summary struct {
	Recipes            int             `json:"recipes"`
	TotalCost          decimal.Decimal `json:"total_cost"`
	TotalSale          decimal.Decimal `json:"total_sale"`
	TotalProfit        decimal.Decimal `json:"total_profit"`
	AverageCostPerUnit decimal.Decimal `json:"average_cost_per_unit"`
}

// Summarize rolls up a set of breakdowns.
func Summarize(breakdowns []Breakdown) Summary {
	summary := Summary{
		Recipes:            len(breakdowns),
		TotalCost:          decimal.Zero,
		TotalSale:          decimal.Zero,
		AverageCostPerUnit: decimal.Zero,
	}
	if len(breakdowns) == 0 {
		summary.TotalProfit = decimal.Zero
		return summary
	}

	perUnit := decimal.Zero
	for _, b := range breakdowns {
		summary.TotalCost = summary.TotalCost.Add(b.TotalCost)
		if b.SalePrice != nil {
			summary.TotalSale = summary.TotalSale.Add(*b.SalePrice)
		}
		perUnit = perUnit.Add(b.CostPerYieldUnit)
	}
	summary.TotalProfit = summary.TotalSale.Sub(summary.TotalCost)
	summary.AverageCostPerUnit = perUnit.Div(decimal.NewFromInt(int64(len(breakdowns))))
	return summary
}
