// Package workbook renders report data as xlsx workbooks with excelize.
package workbook

import (
	"kitchenos/internal/export"
	"kitchenos/internal/reports"
)

const separator = "----------------------------------------"

// Generator renders xlsx workbooks. The zero value is ready to use.
type Generator struct{}

var _ reports.Renderer = Generator{}

// New returns a workbook generator.
func New() Generator {
	return Generator{}
}

func render(sheets ...*sheet) ([]byte, error) {
	b, err := newBook()
	if err != nil {
		return nil, err
	}
	for _, s := range sheets {
		if err := b.write(s); err != nil {
			b.close()
			return nil, err
		}
	}
	return b.bytes()
}

// Outlet renders the outlet workbook: summary, flat recipe list, one sheet per
// category, uncategorized recipes and the ingredient usage rollup.
func (Generator) Outlet(report reports.OutletReport) ([]byte, error) {
	sheets := []*sheet{outletSummary(report), recipeList(report)}
	for _, group := range report.Groups {
		s := newSheet(group.Category.Name, 25, 15, 12, 25, 18)
		for _, entry := range group.Recipes {
			outletRecipeBlock(s, entry)
		}
		sheets = append(sheets, s)
	}
	if len(report.Uncategorized) > 0 {
		s := newSheet(reports.Uncategorized, 25, 15, 12, 25, 18)
		for _, entry := range report.Uncategorized {
			uncategorizedBlock(s, entry)
		}
		sheets = append(sheets, s)
	}
	sheets = append(sheets, usageSheet(report.Usage))
	return render(sheets...)
}

func outletSummary(report reports.OutletReport) *sheet {
	s := newSheet("Ozet", 25, 45)
	outlet := report.Outlet
	s.title("RESTORAN RAPORU")
	s.blank()
	s.heading("Genel Bilgiler")
	s.pair("Restoran Adi", outlet.Name)
	s.pair("Tur", reports.OrDash(outlet.Type))
	s.pair("Konum", reports.OrDash(outlet.Location))
	s.pair("Durum", export.OutletStatusLabel(outlet.Status))
	s.pair("Olusturulma Tarihi", export.Date(outlet.CreatedAt))
	s.blank()
	s.heading("Istatistikler")
	s.pair("Toplam Tarif", report.Stats.Recipes)
	s.pair("Kategori Sayisi", report.Stats.Categories)
	s.pair("Toplam Maliyet", export.Amount(report.Stats.TotalCost))
	s.pair("Toplam Satis", export.Amount(report.Stats.TotalSale))
	s.pair("Toplam Kar", export.Amount(report.Stats.TotalProfit))
	s.blank()
	s.pair("Rapor Tarihi", export.Date(report.GeneratedAt))
	return s
}

func recipeList(report reports.OutletReport) *sheet {
	s := newSheet("Tum Tarifler", 12, 35, 20, 10, 12, 18, 8, 18, 18, 18, 12)
	s.header("Tarif No", "Tarif Adi", "Kategori", "Zorluk", "Hazirlik (dk)",
		"Porsiyon", "Fire %", "Satis Fiyati", "Maliyet", "Kar", "Kar Marji")
	for _, entry := range report.Recipes {
		var prep any = "-"
		if p := entry.Recipe.PrepTime; p != nil && *p != 0 {
			prep = *p
		}
		s.row(
			entry.Recipe.RecipeNo,
			entry.Recipe.Name,
			entry.CategoryLabel(),
			entry.Difficulty(),
			prep,
			entry.Yield(),
			entry.Cost.WastePercentage.InexactFloat64(),
			export.Currency(entry.Cost.SalePrice),
			export.Amount(entry.Cost.TotalCost),
			export.Amount(entry.Cost.Profit),
			export.Percentage(entry.Cost.ProfitMargin),
		)
	}
	return s
}

func outletRecipeBlock(s *sheet, entry reports.RecipeEntry) {
	s.blank()
	s.heading("TARIF: " + entry.Recipe.Name)
	s.pair("Tarif No", entry.Recipe.RecipeNo)
	s.pair("Zorluk", entry.Difficulty())
	s.pair("Hazirlik Suresi", entry.PrepTime("dk"))
	s.pair("Porsiyon", entry.Yield())
	s.pair("Fire Orani", "%"+entry.WasteText())
	s.pair("Satis Fiyati", export.Currency(entry.Cost.SalePrice))
	s.pair("Maliyet", export.Amount(entry.Cost.TotalCost))
	s.pair("Kar Marji", export.Percentage(entry.Cost.ProfitMargin))
	s.pair("Alerjenler", entry.AllergenText("Yok"))

	if len(entry.Lines) > 0 {
		s.blank()
		s.heading("Malzemeler:")
		s.header("Malzeme", "Miktar", "Birim", "Hazirlik", "Maliyet")
		for _, line := range entry.Lines {
			s.row(line.Name, export.Number(line.Quantity, 2), line.Unit, line.PrepOrDash(), export.Amount(line.Cost))
		}
	}
	textBlock(s, "Hazirlanis:", entry.Recipe.Instructions)
	textBlock(s, "Kritik Detaylar:", entry.Recipe.CriticalDetails)
	s.blank()
	s.row(separator)
}

func uncategorizedBlock(s *sheet, entry reports.RecipeEntry) {
	s.blank()
	s.heading("TARIF: " + entry.Recipe.Name)
	s.pair("Tarif No", entry.Recipe.RecipeNo)
	s.pair("Satis Fiyati", export.Currency(entry.Cost.SalePrice))
	s.pair("Maliyet", export.Amount(entry.Cost.TotalCost))
	if len(entry.Lines) > 0 {
		s.blank()
		s.heading("Malzemeler:")
		for _, line := range entry.Lines {
			s.row(line.Name, export.Number(line.Quantity, 2), line.Unit)
		}
	}
	s.row(separator)
}

func textBlock(s *sheet, label, text string) {
	if text == "" {
		return
	}
	s.blank()
	s.heading(label)
	s.row(text)
}

func usageSheet(rows []reports.UsageRow) *sheet {
	s := newSheet("Malzeme Ozeti", 30, 18, 12, 20)
	s.header("Malzeme Adi", "Toplam Miktar", "Birim", "Not")
	for _, usage := range rows {
		cells := []any{usage.Name, export.Number(usage.Quantity, 2), usage.Unit}
		if usage.MixedUnits {
			cells = append(cells, "Farkli birimler toplandi")
		}
		s.row(cells...)
	}
	return s
}

// Menu renders the menu workbook: an overview sheet and one detailed sheet per
// category, without costs in the ingredient tables.
func (Generator) Menu(report reports.OutletReport) ([]byte, error) {
	overview := newSheet("Menu Ozet", 18, 12, 35, 10, 18, 18, 12)
	overview.header("Kategori", "Tarif No", "Tarif Adi", "Zorluk", "Satis", "Maliyet", "Kar Marji")
	addOverview := func(entry reports.RecipeEntry) {
		overview.row(
			entry.CategoryLabel(),
			entry.Recipe.RecipeNo,
			entry.Recipe.Name,
			entry.Difficulty(),
			export.Currency(entry.Cost.SalePrice),
			export.Amount(entry.Cost.TotalCost),
			export.Percentage(entry.Cost.ProfitMargin),
		)
	}
	for _, group := range report.Groups {
		for _, entry := range group.Recipes {
			addOverview(entry)
		}
	}
	for _, entry := range report.Uncategorized {
		addOverview(entry)
	}

	sheets := []*sheet{overview}
	for _, group := range report.Groups {
		s := newSheet(group.Category.Name, 25, 15, 12, 25)
		for _, entry := range group.Recipes {
			menuRecipeBlock(s, entry)
		}
		sheets = append(sheets, s)
	}
	return render(sheets...)
}

func menuRecipeBlock(s *sheet, entry reports.RecipeEntry) {
	s.blank()
	s.heading("TARIF: " + entry.Recipe.Name)
	s.pair("Tarif No", entry.Recipe.RecipeNo)
	s.pair("Zorluk", entry.Difficulty())
	s.pair("Porsiyon", entry.Yield())
	s.pair("Satis Fiyati", export.Currency(entry.Cost.SalePrice))
	s.pair("Maliyet", export.Amount(entry.Cost.TotalCost))
	s.pair("Alerjenler", entry.AllergenText("Yok"))
	if len(entry.Lines) > 0 {
		s.blank()
		s.heading("Malzemeler:")
		s.header("Malzeme", "Miktar", "Birim", "Hazirlik")
		for _, line := range entry.Lines {
			s.row(line.Name, export.Number(line.Quantity, 2), line.Unit, line.PrepOrDash())
		}
	}
	textBlock(s, "Hazirlanis:", entry.Recipe.Instructions)
	s.row(separator)
}

// Recipe renders the single-recipe workbook: details, ingredient lines and the
// full allergen matrix.
func (Generator) Recipe(report reports.RecipeReport) ([]byte, error) {
	entry := report.Entry
	recipe := entry.Recipe
	cost := entry.Cost

	info := newSheet("Tarif Bilgileri", 25, 60)
	info.title("TARIF RAPORU")
	info.blank()
	info.heading("Genel Bilgiler")
	info.pair("Tarif No", recipe.RecipeNo)
	info.pair("Tarif Adi", recipe.Name)
	info.pair("Restoran", reports.OrDash(report.OutletName))
	info.pair("Kategori", reports.OrDash(entry.CategoryName))
	info.pair("Zorluk", entry.Difficulty())
	info.pair("Hazirlik Suresi", entry.PrepTime("dakika"))
	info.pair("Porsiyon", entry.Yield())
	info.pair("Fire Orani", export.Percentage(cost.WastePercentage))
	info.pair("Durum", export.RecipeStatusLabel(recipe.Status))
	info.blank()
	info.heading("Maliyet Analizi")
	info.pair("Malzeme Maliyeti", export.Amount(cost.IngredientsCost))
	info.pair("Fire Maliyeti", export.Amount(cost.WasteCost))
	info.pair("Toplam Maliyet", export.Amount(cost.TotalCost))
	info.pair("Satis Fiyati", export.Currency(cost.SalePrice))
	info.pair("Kar", export.Amount(cost.Profit))
	info.pair("Kar Marji", export.Percentage(cost.ProfitMargin))
	info.blank()
	info.heading("Hazirlanis")
	info.row(reports.OrDash(recipe.Instructions))
	info.blank()
	info.heading("Kritik Detaylar")
	info.row(reports.OrDash(recipe.CriticalDetails))

	sheets := []*sheet{info}
	if len(entry.Lines) > 0 {
		lines := newSheet("Malzemeler", 28, 12, 12, 28, 18, 18)
		lines.header("Malzeme", "Miktar", "Birim", "Hazirlik", "Birim Fiyat", "Toplam")
		for _, line := range entry.Lines {
			lines.row(line.Name, export.Number(line.Quantity, 2), line.Unit, line.PrepOrDash(),
				export.Amount(line.UnitCost), export.Amount(line.Cost))
		}
		sheets = append(sheets, lines)
	}

	allergens := newSheet("Alerjenler", 28, 15)
	allergens.header("Alerjen", "Durum")
	for _, flag := range report.Allergens {
		state := "Hayir"
		if flag.Active {
			state = "EVET"
		}
		allergens.row(flag.Label, state)
	}
	sheets = append(sheets, allergens)
	return render(sheets...)
}

// Ingredients renders the ingredient library: every ingredient on one sheet
// plus one sheet per ingredient category.
func (Generator) Ingredients(library reports.IngredientLibrary) ([]byte, error) {
	all := newSheet("Tum Malzemeler", 15, 32, 22, 12, 18, 28)
	all.header("Malzeme No", "Malzeme Adi", "Kategori", "Birim", "Birim Fiyat", "Tedarikci")
	for _, ingredient := range library.Ingredients {
		all.row(
			reports.OrDash(ingredient.IngredientNo),
			ingredient.Name,
			reports.OrDash(ingredient.Category),
			ingredient.BaseUnit,
			export.Amount(ingredient.CostPerUnit),
			reports.OrDash(ingredient.Supplier),
		)
	}

	sheets := []*sheet{all}
	for _, group := range library.Groups {
		s := newSheet(group.Name, 15, 32, 12, 18, 28)
		s.header("No", "Malzeme Adi", "Birim", "Fiyat", "Tedarikci")
		for _, ingredient := range group.Ingredients {
			s.row(
				reports.OrDash(ingredient.IngredientNo),
				ingredient.Name,
				ingredient.BaseUnit,
				export.Amount(ingredient.CostPerUnit),
				reports.OrDash(ingredient.Supplier),
			)
		}
		sheets = append(sheets, s)
	}
	return render(sheets...)
}
