package handlers

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	applog "kitchenos/internal/log"
	"kitchenos/internal/metrics"
	"kitchenos/internal/reports"
	"kitchenos/internal/store"
)

var (
	errUnknownReport = errors.New("unknown report")
	errNoRenderer    = errors.New("no renderer for format")
)

// renderFunc fetches the report data and renders it, returning the file
// name and the finished file.
type renderFunc func(meta reports.Meta, renderer reports.Renderer) (string, []byte, error)

// ExportOutlet serves the outlet report or the menu of an outlet.
func (h *Handler) ExportOutlet(w http.ResponseWriter, r *http.Request) {
	var kind reports.Kind
	switch chi.URLParam(r, "kind") {
	case "report":
		kind = reports.KindOutlet
	case "menu":
		kind = reports.KindMenu
	default:
		writeMessage(w, r, http.StatusNotFound, errUnknownReport.Error())
		return
	}

	outletID := idParam(r)
	h.export(w, r, kind, func(meta reports.Meta, renderer reports.Renderer) (string, []byte, error) {
		outlet, err := h.store.GetOutlet(r.Context(), outletID)
		if err != nil {
			return "", nil, err
		}
		categories, err := h.store.ListCategories(r.Context(), outletID)
		if err != nil {
			return "", nil, err
		}
		recipes, err := h.store.ListRecipes(r.Context(), store.RecipeFilter{OutletID: outletID})
		if err != nil {
			return "", nil, err
		}

		format := formatOf(r)
		if kind == reports.KindMenu {
			data := reports.BuildMenu(*outlet, categories, recipes, meta)
			body, err := renderer.Menu(data)
			return data.MenuFilename(format), body, err
		}
		data := reports.BuildOutlet(*outlet, categories, recipes, meta)
		body, err := renderer.Outlet(data)
		return data.ReportFilename(format), body, err
	})
}

// ExportRecipe serves the single-recipe report.
func (h *Handler) ExportRecipe(w http.ResponseWriter, r *http.Request) {
	recipeID := idParam(r)
	h.export(w, r, reports.KindRecipe, func(meta reports.Meta, renderer reports.Renderer) (string, []byte, error) {
		recipe, err := h.store.GetRecipe(r.Context(), recipeID)
		if err != nil {
			return "", nil, err
		}
		outletName := ""
		if recipe.Outlet != nil {
			outletName = recipe.Outlet.Name
		}
		data := reports.BuildRecipe(*recipe, outletName, recipe.CategoryName(), meta)
		body, err := renderer.Recipe(data)
		return data.Filename(formatOf(r)), body, err
	})
}

// ExportIngredients serves the ingredient library report.
func (h *Handler) ExportIngredients(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, reports.KindIngredients, func(meta reports.Meta, renderer reports.Renderer) (string, []byte, error) {
		ingredients, err := h.store.ListIngredients(r.Context(), store.IngredientFilter{})
		if err != nil {
			return "", nil, err
		}
		data := reports.BuildIngredientLibrary(ingredients, meta)
		body, err := renderer.Ingredients(data)
		return data.Filename(formatOf(r)), body, err
	})
}

func formatOf(r *http.Request) reports.Format {
	format, _ := reports.ParseFormat(chi.URLParam(r, "format"))
	return format
}

// export renders the whole file before writing anything, so a failure
// leaves the response free for a JSON error.
func (h *Handler) export(w http.ResponseWriter, r *http.Request, kind reports.Kind, render renderFunc) {
	format, err := reports.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		writeMessage(w, r, http.StatusNotFound, err.Error())
		return
	}
	renderer, ok := h.renderers[format]
	if !ok {
		applog.Error(r.Context(), "export format not configured", "format", format)
		writeError(w, r, fmt.Errorf("%w %s", errNoRenderer, format))
		return
	}

	started := time.Now()
	filename, body, err := render(reports.NewMeta(h.localNow(), h.productName), renderer)
	metrics.ObserveReport(string(kind), string(format), started, err)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			applog.Error(r.Context(), "failed to generate report", "kind", kind, "format", format, "error", err)
		}
		writeError(w, r, err)
		return
	}

	applog.Debug(r.Context(), "report generated", "kind", kind, "format", format, "bytes", len(body))
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		applog.Error(r.Context(), "failed to write report", "error", err)
	}
}
