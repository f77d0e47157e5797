// Package components holds the small HTML building blocks shared by pages.
package components

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// SidebarLink is one navigation entry.
type SidebarLink struct {
	Label   string
	Path    string
	Section string
}

// SidebarData feeds the navigation sidebar.
type SidebarData struct {
	Product string
	Active  string
	Links   []SidebarLink
}

// OutletRow is a row of the outlet overview table.
type OutletRow struct {
	ID         string
	Name       string
	Location   string
	Status     string
	Recipes    int64
	Categories int64
}

func linkState(section, active string) string {
	if section == active {
		return "active"
	}
	return "inactive"
}

// StatCard renders a headline figure with an optional hint line.
func StatCard(label, value, hint string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<div class="stat-card"><p class="stat-label">%s</p><p class="stat-value">%s</p>`,
			templ.EscapeString(label), templ.EscapeString(value)); err != nil {
			return err
		}
		if hint != "" {
			if _, err := fmt.Fprintf(w, `<p class="stat-hint">%s</p>`, templ.EscapeString(hint)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// Sidebar renders the navigation with the active section highlighted.
func Sidebar(data SidebarData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<aside class="sidebar"><p class="brand">%s</p><nav>`, templ.EscapeString(data.Product)); err != nil {
			return err
		}
		for _, link := range data.Links {
			_, err := fmt.Fprintf(w, `<a href="%s" data-nav-section="%s" data-state="%s">%s</a>`,
				templ.EscapeString(link.Path),
				templ.EscapeString(link.Section),
				linkState(link.Section, data.Active),
				templ.EscapeString(link.Label),
			)
			if err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</nav><form method="post" action="/logout"><button type="submit">Cikis</button></form></aside>`)
		return err
	})
}

// OutletTable lists outlets with their recipe and category counts.
func OutletTable(rows []OutletRow) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(rows) == 0 {
			_, err := io.WriteString(w, `<p class="empty">Henuz restoran yok.</p>`)
			return err
		}
		if _, err := io.WriteString(w, `<table class="outlets"><thead><tr><th>Restoran</th><th>Konum</th><th>Durum</th><th>Tarif</th><th>Kategori</th><th></th></tr></thead><tbody>`); err != nil {
			return err
		}
		for _, row := range rows {
			_, err := fmt.Fprintf(w,
				`<tr data-outlet-id="%s"><td>%s</td><td>%s</td><td>%s</td><td>%d</td><td>%d</td><td><a href="/api/outlets/%s/export/report.pdf">PDF</a> <a href="/api/outlets/%s/export/report.xlsx">Excel</a></td></tr>`,
				templ.EscapeString(row.ID),
				templ.EscapeString(row.Name),
				templ.EscapeString(row.Location),
				templ.EscapeString(row.Status),
				row.Recipes,
				row.Categories,
				templ.EscapeString(row.ID),
				templ.EscapeString(row.ID),
			)
			if err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table>`)
		return err
	})
}
