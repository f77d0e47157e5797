// Package document renders report data as A4 PDF documents with fpdf.
package document

import (
	"fmt"
	"strings"

	"kitchenos/internal/export"
	"kitchenos/internal/reports"
)

// Generator renders PDF documents. The zero value is ready to use.
type Generator struct{}

var _ reports.Renderer = Generator{}

// New returns a document generator.
func New() Generator {
	return Generator{}
}

// Outlet renders the outlet report: general information, statistics and
// every recipe grouped by category.
func (Generator) Outlet(report reports.OutletReport) ([]byte, error) {
	outlet := report.Outlet
	p := newPage(report.Meta, outlet.Name)
	y := p.header(outlet.Name, "Restoran Raporu")

	y = p.section("Genel Bilgiler", y)
	y = p.table(y, keyValues(40,
		[]string{"Restoran Adi", outlet.Name},
		[]string{"Tur", reports.OrDash(outlet.Type)},
		[]string{"Konum", reports.OrDash(outlet.Location)},
		[]string{"Durum", export.OutletStatusLabel(outlet.Status)},
		[]string{"Olusturulma", export.Date(outlet.CreatedAt)},
	)) + 10

	stats := report.Stats
	y = p.section("Istatistikler", y)
	y = p.table(y, keyValues(40,
		[]string{"Toplam Tarif", fmt.Sprint(stats.Recipes)},
		[]string{"Kategori Sayisi", fmt.Sprint(stats.Categories)},
		[]string{"Toplam Maliyet", export.Amount(stats.TotalCost)},
		[]string{"Toplam Satis", export.Amount(stats.TotalSale)},
		[]string{"Toplam Kar", export.Amount(stats.TotalProfit)},
	)) + 15

	p.categories(y, report)
	return p.bytes()
}

// Menu renders every recipe of the outlet grouped by category.
func (Generator) Menu(report reports.OutletReport) ([]byte, error) {
	p := newPage(report.Meta, report.Outlet.Name)
	y := p.header(report.Outlet.Name+" - Menu", "Detayli Tarif Listesi")
	p.categories(y, report)
	return p.bytes()
}

func (p *page) categories(y float64, report reports.OutletReport) float64 {
	for _, group := range report.Groups {
		y = p.checkPageBreak(y, 50)
		y = p.section(fmt.Sprintf("%s (%d tarif)", group.Category.Name, len(group.Recipes)), y)
		for _, entry := range group.Recipes {
			y = p.recipeBlock(y, entry)
		}
		y += 5
	}
	if len(report.Uncategorized) > 0 {
		y = p.checkPageBreak(y, 50)
		y = p.section(fmt.Sprintf("%s (%d tarif)", reports.Uncategorized, len(report.Uncategorized)), y)
		for _, entry := range report.Uncategorized {
			y = p.recipeBlock(y, entry)
		}
	}
	return y
}

func (p *page) recipeBlock(y float64, entry reports.RecipeEntry) float64 {
	recipe := entry.Recipe
	cost := entry.Cost
	y = p.checkPageBreak(y, 80)

	p.fillRect(pageMargin, y-3, p.width-2*pageMargin, 12, light)
	p.font("", 11, dark)
	p.write(18, y+4, recipe.RecipeNo+" - "+recipe.Name)
	p.font("", 8, secondary)
	meta := strings.Join([]string{entry.CategoryLabel(), entry.Difficulty(), entry.PrepTime("dk"), entry.Yield()}, "  |  ")
	p.writeRight(p.width-18, y+4, meta)
	y += 16

	if len(entry.Lines) > 0 {
		p.font("", 9, dark)
		p.write(pageMargin, y, "Malzemeler:")
		y += 5

		rows := make([][]string, 0, len(entry.Lines))
		for _, line := range entry.Lines {
			rows = append(rows, []string{line.Name, export.Number(line.Quantity, 2), line.Unit, line.PrepOrDash(), export.Amount(line.Cost)})
		}
		y = p.table(y, table{
			columns: []column{
				{title: "Malzeme"},
				{title: "Miktar", width: 18, align: "C"},
				{title: "Birim", width: 15, align: "C"},
				{title: "Hazirlik", width: 30},
				{title: "Maliyet", width: 25, align: "R"},
			},
			rows:     rows,
			fontSize: 8,
			padding:  2,
			head:     secondary,
		}) + 5

		y = p.checkPageBreak(y, lineBreakSpace)
		p.font("", 8, dark)
		p.write(pageMargin, y, fmt.Sprintf("Malzeme: %s | Fire (%%%s): %s | Toplam: %s | Satis: %s | Kar Marji: %s",
			export.Amount(cost.IngredientsCost),
			entry.WasteText(),
			export.Amount(cost.WasteCost),
			export.Amount(cost.TotalCost),
			export.Currency(cost.SalePrice),
			export.Percentage(cost.ProfitMargin),
		))
		y += 6
	}

	if len(entry.Allergens) > 0 {
		y = p.checkPageBreak(y, lineBreakSpace)
		p.font("", 8, danger)
		p.write(pageMargin, y, "Alerjenler: "+entry.AllergenText(""))
		y += 6
	}

	if recipe.Instructions != "" {
		y = p.checkPageBreak(y, 30)
		p.font("", 8, dark)
		p.write(pageMargin, y, "Hazirlanis:")
		y = p.paragraph(recipe.Instructions, y+4, p.width-32, 3.5) + 3
	}

	if recipe.CriticalDetails != "" {
		y = p.checkPageBreak(y, 20)
		p.font("", 8, warning)
		p.write(pageMargin, y, "Kritik Detaylar:")
		p.font("", 8, dark)
		y = p.paragraph(recipe.CriticalDetails, y+4, p.width-32, 3.5) + 3
	}

	return y + 8
}

// Recipe renders a single recipe with its cost analysis.
func (Generator) Recipe(report reports.RecipeReport) ([]byte, error) {
	entry := report.Entry
	recipe := entry.Recipe
	cost := entry.Cost

	p := newPage(report.Meta, recipe.Name)
	y := p.header(recipe.Name, "Tarif No: "+recipe.RecipeNo)

	y = p.section("Tarif Bilgileri", y)
	y = p.table(y, keyValues(40,
		[]string{"Tarif No", recipe.RecipeNo},
		[]string{"Tarif Adi", recipe.Name},
		[]string{"Restoran", reports.OrDash(report.OutletName)},
		[]string{"Kategori", reports.OrDash(entry.CategoryName)},
		[]string{"Zorluk", entry.Difficulty()},
		[]string{"Hazirlik Suresi", entry.PrepTime("dakika")},
		[]string{"Porsiyon", entry.Yield()},
		[]string{"Fire Orani", export.Percentage(cost.WastePercentage)},
		[]string{"Durum", export.RecipeStatusLabel(recipe.Status)},
	)) + 10

	if len(entry.Lines) > 0 {
		y = p.section("Malzemeler", y)
		rows := make([][]string, 0, len(entry.Lines))
		for _, line := range entry.Lines {
			rows = append(rows, []string{
				line.Name,
				export.Number(line.Quantity, 2),
				line.Unit,
				line.PrepOrDash(),
				export.Amount(line.UnitCost),
				export.Amount(line.Cost),
			})
		}
		y = p.table(y, table{
			columns: []column{
				{title: "Malzeme"},
				{title: "Miktar"},
				{title: "Birim"},
				{title: "Hazirlik"},
				{title: "Birim Fiyat", align: "R"},
				{title: "Toplam", align: "R"},
			},
			rows:     rows,
			fontSize: 9,
			padding:  3,
			head:     primary,
		}) + 10

		y = p.checkPageBreak(y, 60)
		y = p.subsection("Maliyet Analizi", y)
		analysis := keyValues(50,
			[]string{"Malzeme Maliyeti", export.Amount(cost.IngredientsCost)},
			[]string{fmt.Sprintf("Fire Maliyeti (%%%s)", entry.WasteText()), export.Amount(cost.WasteCost)},
			[]string{"Toplam Maliyet", export.Amount(cost.TotalCost)},
			[]string{"Satis Fiyati", export.Currency(cost.SalePrice)},
			[]string{"Kar", export.Amount(cost.Profit)},
			[]string{"Kar Marji", export.Percentage(cost.ProfitMargin)},
		)
		analysis.columns[1].align = "R"
		y = p.table(y, analysis) + 10
	}

	if len(entry.Allergens) > 0 {
		y = p.checkPageBreak(y, 30)
		y = p.subsection("Alerjenler", y)
		p.font("", 10, danger)
		p.write(pageMargin, y, entry.AllergenText(""))
		y += 10
	}

	if recipe.Instructions != "" {
		y = p.checkPageBreak(y, 40)
		y = p.section("Hazirlanis", y)
		p.font("", 9, dark)
		y = p.paragraph(recipe.Instructions, y, 180, 4) + 10
	}

	if recipe.CriticalDetails != "" {
		y = p.checkPageBreak(y, 30)
		y = p.subsection("Kritik Detaylar", y)
		p.font("", 9, dark)
		p.paragraph(recipe.CriticalDetails, y, 180, 4)
	}

	return p.bytes()
}

// Ingredients renders the ingredient library, one table per category.
func (Generator) Ingredients(library reports.IngredientLibrary) ([]byte, error) {
	p := newPage(library.Meta, "Malzeme Kutuphanesi")
	y := p.header("Malzeme Kutuphanesi", fmt.Sprintf("%d malzeme", len(library.Ingredients)))

	for _, group := range library.Groups {
		y = p.checkPageBreak(y, 40)
		y = p.section(fmt.Sprintf("%s (%d malzeme)", group.Name, len(group.Ingredients)), y)

		rows := make([][]string, 0, len(group.Ingredients))
		for _, ingredient := range group.Ingredients {
			rows = append(rows, []string{
				reports.OrDash(ingredient.IngredientNo),
				ingredient.Name,
				ingredient.BaseUnit,
				export.Amount(ingredient.CostPerUnit),
				reports.OrDash(ingredient.Supplier),
			})
		}
		y = p.table(y, table{
			columns: []column{
				{title: "No", width: 20},
				{title: "Malzeme Adi"},
				{title: "Birim", width: 18},
				{title: "Birim Fiyat", width: 28, align: "R"},
				{title: "Tedarikci", width: 35},
			},
			rows:     rows,
			fontSize: 9,
			padding:  2,
			head:     secondary,
		}) + 10
	}

	return p.bytes()
}
