package workbook

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"kitchenos/internal/reports"
	"kitchenos/models"
)

var generatedAt = time.Date(2026, time.October, 18, 14, 5, 0, 0, time.UTC)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func ingredient(name, unit, cost string) *models.Ingredient {
	return &models.Ingredient{Name: name, BaseUnit: unit, CostPerUnit: dec(cost)}
}

func line(ing *models.Ingredient, qty, unit string) models.RecipeIngredient {
	return models.RecipeIngredient{Ingredient: ing, Quantity: dec(qty), Unit: unit}
}

func recipe(no, name string, categoryID *string, lines ...models.RecipeIngredient) models.Recipe {
	r := models.Recipe{
		RecipeNo:        no,
		Name:            name,
		CategoryID:      categoryID,
		YieldAmount:     decimal.NewFromInt(4),
		YieldUnit:       "porsiyon",
		WastePercentage: decimal.NewNullDecimal(decimal.Zero),
		SalePrice:       decimal.NewNullDecimal(dec("50")),
		Ingredients:     lines,
	}
	r.ID = no
	return r
}

func category(id, name string) models.Category {
	c := models.Category{Name: name}
	c.ID = id
	return c
}

func open(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func rows(t *testing.T, f *excelize.File, sheet string) [][]string {
	t.Helper()
	out, err := f.GetRows(sheet)
	require.NoError(t, err)
	return out
}

// rowsAfter returns the rows following the first row equal to header, up to
// the next blank row.
func rowsAfter(all [][]string, header ...string) [][]string {
	for i, r := range all {
		if strings.Join(r, "|") != strings.Join(header, "|") {
			continue
		}
		var out [][]string
		for _, next := range all[i+1:] {
			if len(next) == 0 {
				break
			}
			out = append(out, next)
		}
		return out
	}
	return nil
}

func value(all [][]string, label string) string {
	for _, r := range all {
		if len(r) >= 2 && r[0] == label {
			return r[1]
		}
	}
	return ""
}

func outletFixture() reports.OutletReport {
	flour := ingredient("Un", "kg", "20")
	sugar := ingredient("Seker", "kg", "10")
	soups := "c1"
	outlet := models.Outlet{Name: "Bistro", Status: models.OutletActive}
	recipes := []models.Recipe{
		recipe("RCP-2026-001", "Mercimek", &soups, line(flour, "0.5", "kg"), line(sugar, "0.25", "kg")),
		recipe("RCP-2026-002", "Kek", nil, line(flour, "250", "g")),
	}
	categories := []models.Category{category("c1", "Corbalar"), category("c2", "Bos")}
	return reports.BuildOutlet(outlet, categories, recipes, reports.NewMeta(generatedAt, ""))
}

func TestOutletWorkbook(t *testing.T) {
	t.Parallel()

	data, err := New().Outlet(outletFixture())
	require.NoError(t, err)
	f := open(t, data)

	assert.Equal(t, []string{"Ozet", "Tum Tarifler", "Corbalar", "Kategorisiz", "Malzeme Ozeti"}, f.GetSheetList())

	summary := rows(t, f, "Ozet")
	assert.Equal(t, "RESTORAN RAPORU", summary[0][0])
	assert.Equal(t, "Bistro", value(summary, "Restoran Adi"))
	assert.Equal(t, "2", value(summary, "Toplam Tarif"))
	assert.Equal(t, "18 Ekim 2026", value(summary, "Rapor Tarihi"))

	list := rows(t, f, "Tum Tarifler")
	require.Len(t, list, 3)
	assert.Equal(t, "Tarif No", list[0][0])
	assert.Equal(t, "RCP-2026-001", list[1][0])
	assert.Equal(t, "Kategorisiz", list[2][2])
	assert.Equal(t, "-", list[1][4])

	soups := rows(t, f, "Corbalar")
	assert.Contains(t, soups, []string{"TARIF: Mercimek"})
	assert.Equal(t, "%0", value(soups, "Fire Orani"))
	assert.Equal(t, "Yok", value(soups, "Alerjenler"))
	lines := rowsAfter(soups, "Malzeme", "Miktar", "Birim", "Hazirlik", "Maliyet")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"Un", "0,50", "kg", "-", "10,00 TL"}, lines[0])
	assert.Equal(t, []string{"Seker", "0,25", "kg", "-", "2,50 TL"}, lines[1])

	uncategorized := rows(t, f, "Kategorisiz")
	assert.Contains(t, uncategorized, []string{"TARIF: Kek"})
	assert.Contains(t, uncategorized, []string{"Un", "250,00", "g"})
}

func TestOutletWorkbookUsageFlagsMixedUnits(t *testing.T) {
	t.Parallel()

	data, err := New().Outlet(outletFixture())
	require.NoError(t, err)
	usage := rows(t, open(t, data), "Malzeme Ozeti")

	require.Len(t, usage, 3)
	assert.Equal(t, []string{"Malzeme Adi", "Toplam Miktar", "Birim", "Not"}, usage[0])
	assert.Equal(t, []string{"Un", "250,50", "kg", "Farkli birimler toplandi"}, usage[1])
	assert.Equal(t, []string{"Seker", "0,25", "kg"}, usage[2])
}

func TestMenuWorkbook(t *testing.T) {
	t.Parallel()

	data, err := New().Menu(outletFixture())
	require.NoError(t, err)
	f := open(t, data)

	assert.Equal(t, []string{"Menu Ozet", "Corbalar"}, f.GetSheetList())
	overview := rows(t, f, "Menu Ozet")
	require.Len(t, overview, 3)
	assert.Equal(t, "Corbalar", overview[1][0])
	assert.Equal(t, "Kategorisiz", overview[2][0])
	assert.Equal(t, "50,00 TL", overview[2][4])

	lines := rowsAfter(rows(t, f, "Corbalar"), "Malzeme", "Miktar", "Birim", "Hazirlik")
	require.Len(t, lines, 2)
	assert.Len(t, lines[0], 4)
}

func TestRecipeWorkbook(t *testing.T) {
	t.Parallel()

	r := recipe("RCP-2026-007", "Baklava", nil, line(ingredient("Fistik", "kg", "400"), "0.5", ""))
	r.WastePercentage = decimal.NewNullDecimal(dec("10"))
	r.Allergens = models.Allergens{Nuts: true}
	report := reports.BuildRecipe(r, "Bistro", "Tatlilar", reports.NewMeta(generatedAt, ""))

	data, err := New().Recipe(report)
	require.NoError(t, err)
	f := open(t, data)

	assert.Equal(t, []string{"Tarif Bilgileri", "Malzemeler", "Alerjenler"}, f.GetSheetList())

	info := rows(t, f, "Tarif Bilgileri")
	assert.Equal(t, "Bistro", value(info, "Restoran"))
	assert.Equal(t, "%10,0", value(info, "Fire Orani"))
	assert.Equal(t, "200,00 TL", value(info, "Malzeme Maliyeti"))
	assert.Equal(t, "20,00 TL", value(info, "Fire Maliyeti"))
	assert.Equal(t, "220,00 TL", value(info, "Toplam Maliyet"))
	assert.Contains(t, value(info, "Kar"), "170,00 TL")

	lines := rows(t, f, "Malzemeler")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"Fistik", "0,50", "kg", "-", "400,00 TL", "200,00 TL"}, lines[1])

	allergens := rows(t, f, "Alerjenler")
	require.Len(t, allergens, 16)
	active := 0
	for _, r := range allergens[1:] {
		if r[1] == "EVET" {
			active++
			continue
		}
		assert.Equal(t, "Hayir", r[1])
	}
	assert.Equal(t, 1, active)
}

func TestRecipeWorkbookWithoutLines(t *testing.T) {
	t.Parallel()

	report := reports.BuildRecipe(recipe("RCP-2026-008", "Su", nil), "", "", reports.NewMeta(generatedAt, ""))
	data, err := New().Recipe(report)
	require.NoError(t, err)
	f := open(t, data)

	assert.Equal(t, []string{"Tarif Bilgileri", "Alerjenler"}, f.GetSheetList())
	info := rows(t, f, "Tarif Bilgileri")
	assert.Equal(t, "-", value(info, "Restoran"))
	assert.Equal(t, "-", value(info, "Kategori"))
}

func TestIngredientsWorkbook(t *testing.T) {
	t.Parallel()

	ingredients := []models.Ingredient{
		{Name: "Un", BaseUnit: "kg", CostPerUnit: dec("20"), Category: "Kuru Gida"},
		{Name: "Tuz", BaseUnit: "kg", CostPerUnit: dec("5")},
		{Name: "Pirinc", BaseUnit: "kg", CostPerUnit: dec("45"), Category: "Kuru Gida", Supplier: "Anadolu"},
	}
	data, err := New().Ingredients(reports.BuildIngredientLibrary(ingredients, reports.NewMeta(generatedAt, "")))
	require.NoError(t, err)
	f := open(t, data)

	assert.Equal(t, []string{"Tum Malzemeler", "Kuru Gida", "Kategorisiz"}, f.GetSheetList())
	all := rows(t, f, "Tum Malzemeler")
	require.Len(t, all, 4)
	assert.Equal(t, []string{"-", "Tuz", "-", "kg", "5,00 TL", "-"}, all[2])

	dry := rows(t, f, "Kuru Gida")
	require.Len(t, dry, 3)
	assert.Equal(t, []string{"-", "Pirinc", "kg", "45,00 TL", "Anadolu"}, dry[2])
}

func TestSheetNamesStayUnique(t *testing.T) {
	t.Parallel()

	b, err := newBook()
	require.NoError(t, err)
	long := strings.Repeat("Ana Yemekler ", 4)
	for _, name := range []string{"Tatlilar", "tatlilar", "Tat/li?lar", long, long, "[]"} {
		require.NoError(t, b.write(newSheet(name)))
	}
	data, err := b.bytes()
	require.NoError(t, err)

	names := open(t, data).GetSheetList()
	require.Len(t, names, 6)
	assert.Equal(t, "Tatlilar", names[0])
	assert.Equal(t, "tatlilar (2)", names[1])
	assert.Equal(t, "Tatlilar (3)", names[2])
	assert.Equal(t, "Sayfa", names[5])
	assert.NotEqual(t, names[3], names[4])
	for _, name := range names {
		assert.LessOrEqual(t, len([]rune(name)), 31)
	}
}
