// Package pages renders the server-side HTML pages: sign-in and the
// back-office dashboard. Everything else is served as JSON.
package pages

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"kitchenos/internal/export"
	"kitchenos/internal/store"
	"kitchenos/internal/views/components"
	"kitchenos/internal/views/layout"
)

const defaultSection = "outlets"

// DashboardData is everything the dashboard shows.
type DashboardData struct {
	ProductName string
	UserName    string
	Stats       store.DashboardStats
	Outlets     []store.OutletSummary
}

var navigation = []components.SidebarLink{
	{Label: "Restoranlar", Path: "/app", Section: defaultSection},
	{Label: "Malzeme Kutuphanesi (PDF)", Path: "/api/ingredients/export.pdf", Section: "ingredients"},
	{Label: "Malzeme Kutuphanesi (Excel)", Path: "/api/ingredients/export.xlsx", Section: "ingredients-xlsx"},
}

// OutletRows maps outlet summaries onto table rows.
func OutletRows(outlets []store.OutletSummary) []components.OutletRow {
	rows := make([]components.OutletRow, 0, len(outlets))
	for _, outlet := range outlets {
		rows = append(rows, components.OutletRow{
			ID:         outlet.ID,
			Name:       outlet.Name,
			Location:   outlet.Location,
			Status:     export.OutletStatusLabel(outlet.Status),
			Recipes:    outlet.RecipeCount,
			Categories: outlet.CategoryCount,
		})
	}
	return rows
}

// Dashboard renders the signed-in landing page.
func Dashboard(data DashboardData) templ.Component {
	sidebar := components.Sidebar(components.SidebarData{
		Product: data.ProductName,
		Active:  defaultSection,
		Links:   navigation,
	})
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		greeting := "Hos geldiniz"
		if data.UserName != "" {
			greeting += ", " + data.UserName
		}
		if _, err := fmt.Fprintf(w, `<header class="page-header"><h1>%s</h1></header><section class="stats">`, templ.EscapeString(greeting)); err != nil {
			return err
		}
		cards := []templ.Component{
			components.StatCard("Restoranlar", strconv.FormatInt(data.Stats.Outlets, 10), ""),
			components.StatCard("Tarifler", strconv.FormatInt(data.Stats.Recipes, 10), ""),
			components.StatCard("Malzemeler", strconv.FormatInt(data.Stats.Ingredients, 10), ""),
			components.StatCard("Ortalama Birim Maliyet", export.Amount(data.Stats.AverageCostPerUnit), "son 100 tarif"),
		}
		for _, card := range cards {
			if err := card.Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</section><section class="outlets" data-section="outlets">`); err != nil {
			return err
		}
		if err := components.OutletTable(OutletRows(data.Outlets)).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</section>`)
		return err
	})
	return layout.Layout(data.ProductName, sidebar, content)
}
