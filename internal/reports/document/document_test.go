package document

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitchenos/internal/reports"
	"kitchenos/models"
)

var generatedAt = time.Date(2026, time.October, 18, 14, 5, 0, 0, time.UTC)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

// pagesText reads a rendered document back, one string per page.
func pagesText(t *testing.T, data []byte) []string {
	t.Helper()
	require.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	out := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		require.NoError(t, err)
		out = append(out, text)
	}
	return out
}

func recipe(no, name string, categoryID *string, lines ...models.RecipeIngredient) models.Recipe {
	r := models.Recipe{
		RecipeNo:        no,
		Name:            name,
		CategoryID:      categoryID,
		YieldAmount:     decimal.NewFromInt(4),
		YieldUnit:       "porsiyon",
		WastePercentage: decimal.NewNullDecimal(dec("5")),
		SalePrice:       decimal.NewNullDecimal(dec("120")),
		Ingredients:     lines,
	}
	r.ID = no
	return r
}

func line(name, unit, cost, qty string) models.RecipeIngredient {
	return models.RecipeIngredient{
		Ingredient: &models.Ingredient{Name: name, BaseUnit: unit, CostPerUnit: dec(cost)},
		Quantity:   dec(qty),
	}
}

func outletReport() reports.OutletReport {
	soups := "c1"
	mains := models.Category{Name: "Ana Yemekler"}
	mains.ID = "c2"
	empty := models.Category{Name: "Bos Kategori"}
	empty.ID = "c3"
	soupCategory := models.Category{Name: "Çorbalar"}
	soupCategory.ID = soups

	lentil := recipe("RCP-2026-001", "Mercimek Çorbası", &soups, line("Kırmızı Mercimek", "kg", "60", "0.5"))
	lentil.Instructions = "Mercimekleri yıkayın ve haşlayın."
	lentil.Allergens = models.Allergens{Celery: true}
	kebab := recipe("RCP-2026-002", "Şiş Köfte", nil, line("Dana Kıyma", "kg", "450", "0.2"))

	outlet := models.Outlet{Name: "Bistro Kadıköy", Type: "Restoran", Status: models.OutletActive}
	return reports.BuildOutlet(outlet, []models.Category{soupCategory, mains, empty}, []models.Recipe{lentil, kebab}, reports.NewMeta(generatedAt, ""))
}

func TestOutletDocument(t *testing.T) {
	t.Parallel()

	data, err := New().Outlet(outletReport())
	require.NoError(t, err)
	pages := pagesText(t, data)
	require.NotEmpty(t, pages)
	text := strings.Join(pages, "\n")

	for _, want := range []string{
		"Bistro Kadikoy",
		"Restoran Raporu",
		"Rapor: RPT-20261018-1405",
		"Genel Bilgiler",
		"Istatistikler",
		"Corbalar (1 tarif)",
		"Kategorisiz (1 tarif)",
		"RCP-2026-001 - Mercimek Corbasi",
		"Kirmizi Mercimek",
		"Hazirlanis:",
		"Sis Kofte",
		"Kitchen OS",
	} {
		assert.Contains(t, text, want)
	}
	assert.NotContains(t, text, "Ana Yemekler (")
	assert.NotContains(t, text, "Bos Kategori")
	assert.Contains(t, pages[0], fmt.Sprintf("Sayfa 1 / %d", len(pages)))
}

func TestMenuDocument(t *testing.T) {
	t.Parallel()

	data, err := New().Menu(outletReport())
	require.NoError(t, err)
	text := strings.Join(pagesText(t, data), "\n")

	assert.Contains(t, text, "Bistro Kadikoy - Menu")
	assert.Contains(t, text, "Detayli Tarif Listesi")
	assert.Contains(t, text, "Corbalar (1 tarif)")
	assert.NotContains(t, text, "Istatistikler")
}

func TestRecipeDocument(t *testing.T) {
	t.Parallel()

	r := recipe("RCP-2026-010", "Baklava", nil, line("Antep Fıstığı", "kg", "800", "0.25"))
	r.CriticalDetails = "Şerbet soğuk olmalı."
	r.Allergens = models.Allergens{Nuts: true, Gluten: true}
	report := reports.BuildRecipe(r, "Bistro", "Tatlılar", reports.NewMeta(generatedAt, "Mutfak"))

	data, err := New().Recipe(report)
	require.NoError(t, err)
	pages := pagesText(t, data)
	text := strings.Join(pages, "\n")

	for _, want := range []string{
		"Tarif No: RCP-2026-010",
		"Tarif Bilgileri",
		"Tatlilar",
		"Antep Fistigi",
		"Maliyet Analizi",
		"Kritik Detaylar",
		"Serbet soguk olmali.",
		"Mutfak",
		"Alerjenler",
	} {
		assert.Contains(t, text, want)
	}
	assert.Len(t, pages, 1)
	assert.Contains(t, pages[0], "Sayfa 1 / 1")
}

func TestIngredientsDocumentRepeatsHeaderAcrossPages(t *testing.T) {
	t.Parallel()

	ingredients := make([]models.Ingredient, 0, 120)
	for i := 0; i < 120; i++ {
		ingredients = append(ingredients, models.Ingredient{
			IngredientNo: fmt.Sprintf("ING-%03d", i),
			Name:         fmt.Sprintf("Malzeme %d", i),
			Category:     "Kuru Gida",
			BaseUnit:     "kg",
			CostPerUnit:  dec("12.5"),
		})
	}
	ingredients = append(ingredients, models.Ingredient{Name: "Tuz", BaseUnit: "kg", CostPerUnit: dec("3")})

	library := reports.BuildIngredientLibrary(ingredients, reports.NewMeta(generatedAt, ""))
	data, err := New().Ingredients(library)
	require.NoError(t, err)
	pages := pagesText(t, data)

	require.Greater(t, len(pages), 1)
	for i, page := range pages {
		assert.Contains(t, page, "Malzeme Adi", "page %d", i+1)
		assert.Contains(t, page, fmt.Sprintf("Sayfa %d / %d", i+1, len(pages)))
	}
	text := strings.Join(pages, "\n")
	assert.Contains(t, text, "121 malzeme")
	assert.Contains(t, text, "Kuru Gida (120 malzeme)")
	assert.Contains(t, text, "Kategorisiz (1 malzeme)")
	assert.Contains(t, text, "ING-119")
}

func TestRecipeBlockKeepsSummaryClearOfFooter(t *testing.T) {
	t.Parallel()

	lentil := recipe("RCP-2026-001", "Mercimek Çorbası", nil,
		line("Kırmızı Mercimek", "kg", "60", "0.5"),
		line("Soğan", "kg", "18", "0.1"),
		line("Tereyağı", "kg", "340", "0.05"),
	)
	lentil.Allergens = models.Allergens{Celery: true, Milk: true}
	entry := reports.NewRecipeEntry(lentil, "")

	footerBaseline := 10 / ptToMM
	bodyFloor := bottomLimit / ptToMM
	for start := contentTop; start <= 297-80; start++ {
		p := newPage(reports.NewMeta(generatedAt, "Kitchen OS"), "Test")
		p.recipeBlock(start, entry)
		data, err := p.bytes()
		require.NoError(t, err)

		reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
		require.NoError(t, err)
		for i := 1; i <= reader.NumPage(); i++ {
			for _, glyph := range reader.Page(i).Content().Text {
				if glyph.Y >= bodyFloor {
					continue
				}
				assert.InDelta(t, footerBaseline, glyph.Y, 1, "start %.0f: %q drawn in the footer band", start, glyph.S)
			}
		}
	}
}

func TestTableWidthsShareRemainder(t *testing.T) {
	t.Parallel()

	tbl := table{columns: []column{{width: 20}, {}, {width: 30}, {}}}
	assert.Equal(t, []float64{20, 66, 30, 66}, tbl.widths(182))
}
