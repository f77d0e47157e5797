package reports

import "github.com/shopspring/decimal"

const unknownIngredient = "Bilinmeyen"

// UsageRow is the total quantity of one ingredient across recipes.
type UsageRow struct {
	Name     string
	Quantity decimal.Decimal
	Unit     string
	// MixedUnits is set when some lines used a different unit than Unit.
	// Their quantities are still summed.
	MixedUnits bool
}

// UsageRollup sums line quantities per ingredient name in first-seen order.
// The unit is taken from the first line of each ingredient.
func UsageRollup(entries []RecipeEntry) []UsageRow {
	rows := []UsageRow{}
	index := make(map[string]int)
	for _, entry := range entries {
		for _, line := range entry.Lines {
			key := line.Name
			if key == "-" {
				key = unknownIngredient
			}
			if i, ok := index[key]; ok {
				rows[i].Quantity = rows[i].Quantity.Add(line.Quantity)
				if line.Unit != rows[i].Unit {
					rows[i].MixedUnits = true
				}
				continue
			}
			index[key] = len(rows)
			rows = append(rows, UsageRow{Name: line.Name, Quantity: line.Quantity, Unit: line.Unit})
		}
	}
	return rows
}
