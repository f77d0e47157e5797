package handlers

import (
	"net/http"

	applog "kitchenos/internal/log"
	"kitchenos/internal/views/pages"
)

// Dashboard renders the signed-in landing page.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.DashboardStats(r.Context())
	if err != nil {
		applog.Error(r.Context(), "failed to load dashboard stats", "error", err)
		http.Error(w, "dashboard unavailable", http.StatusInternalServerError)
		return
	}
	outlets, err := h.store.ListOutlets(r.Context())
	if err != nil {
		applog.Error(r.Context(), "failed to load outlets", "error", err)
		http.Error(w, "dashboard unavailable", http.StatusInternalServerError)
		return
	}

	component := pages.Dashboard(pages.DashboardData{
		ProductName: h.productName,
		UserName:    h.sessions.GetString(r.Context(), sessionUserNameKey),
		Stats:       stats,
		Outlets:     outlets,
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render dashboard", "error", err)
	}
}

// DashboardStats returns the headline numbers as JSON.
func (h *Handler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.DashboardStats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, stats)
}
