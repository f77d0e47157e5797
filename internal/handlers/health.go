package handlers

import (
	"net/http"
	"time"

	applog "kitchenos/internal/log"
)

type healthResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

// Health reports that the server is ready.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	applog.Debug(r.Context(), "health check requested", "method", r.Method)
	writeJSON(w, r, http.StatusOK, healthResponse{Status: "ok", Time: h.now().UTC()})
}
