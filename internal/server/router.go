package server

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kitchenos/internal/handlers"
	applog "kitchenos/internal/log"
	"kitchenos/internal/metrics"
)

func newRouter(h *handlers.Handler, sessions *scs.SessionManager, metricsEnabled bool) http.Handler {
	r := chi.NewRouter()
	applog.Debug(context.Background(), "registering http routes")

	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	if metricsEnabled {
		r.Use(metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())
		applog.Debug(context.Background(), "route registered", "path", "/metrics")
	}

	r.Get("/healthz", h.Health)
	applog.Debug(context.Background(), "route registered", "path", "/healthz")

	r.Group(func(r chi.Router) {
		r.Use(sessions.LoadAndSave)

		r.Get("/login", h.LoginPage)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		applog.Debug(context.Background(), "route registered", "path", "/login")

		r.With(h.RequireAuthentication).Get("/app", h.Dashboard)
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/app", http.StatusSeeOther)
		})
		applog.Debug(context.Background(), "route registered", "path", "/app", "protected", true)

		r.Route("/api", func(r chi.Router) {
			r.Use(h.RequireAPI)
			apiRoutes(r, h)
		})
		applog.Debug(context.Background(), "route registered", "path", "/api", "protected", true)
	})

	return r
}

func apiRoutes(r chi.Router, h *handlers.Handler) {
	r.Get("/dashboard", h.DashboardStats)

	r.Route("/outlets", func(r chi.Router) {
		r.Get("/", h.ListOutlets)
		r.Post("/", h.CreateOutlet)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetOutlet)
			r.Put("/", h.UpdateOutlet)
			r.Delete("/", h.DeleteOutlet)
			r.Get("/categories", h.ListCategories)
			r.Post("/categories", h.CreateCategory)
			r.Put("/categories/order", h.ReorderCategories)
			r.Get("/recipes", h.ListOutletRecipes)
			r.Post("/recipes", h.CreateRecipe)
			r.Get("/export/{kind}.{format}", h.ExportOutlet)
		})
	})

	r.Route("/categories/{id}", func(r chi.Router) {
		r.Put("/", h.UpdateCategory)
		r.Delete("/", h.DeleteCategory)
	})

	r.Route("/recipes", func(r chi.Router) {
		r.Get("/", h.ListRecipes)
		r.Get("/next-number", h.NextRecipeNumber)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetRecipe)
			r.Put("/", h.UpdateRecipe)
			r.Delete("/", h.DeleteRecipe)
			r.Get("/form", h.RecipeForm)
			r.Get("/export.{format}", h.ExportRecipe)
		})
	})

	r.Route("/ingredients", func(r chi.Router) {
		r.Get("/", h.ListIngredients)
		r.Post("/", h.CreateIngredient)
		r.Get("/suggest", h.SuggestIngredients)
		r.Post("/import", h.ImportIngredients)
		r.Get("/export.{format}", h.ExportIngredients)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetIngredient)
			r.Put("/", h.UpdateIngredient)
			r.Delete("/", h.DeleteIngredient)
		})
	})

	r.Route("/units", func(r chi.Router) {
		r.Get("/", h.ListUnits)
		r.Post("/", h.CreateUnit)
		r.Put("/{id}", h.UpdateUnit)
		r.Delete("/{id}", h.DeleteUnit)
	})
}
