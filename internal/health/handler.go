// Package health serves the /health and /info endpoints next to the HTTP MCP
// endpoint.
package health

import (
	"encoding/json"
	"net/http"
	"time"
)

// Info describes the running server.
type Info struct {
	Name      string   `json:"name"`
	Version   string   `json:"version"`
	Transport string   `json:"transport"`
	Tools     []string `json:"tools"`
	Notifiers []string `json:"notifiers"`
	Watching  bool     `json:"watching"`
}

// Status is the /health response body.
type Status struct {
	Status    string    `json:"status"`
	Uptime    string    `json:"uptime"`
	Timestamp time.Time `json:"timestamp"`
	Name      string    `json:"name"`
}

// Handler serves health endpoints.
type Handler struct {
	info    Info
	started time.Time
	now     func() time.Time
}

// NewHandler creates a Handler; uptime is measured from now.
func NewHandler(info Info) *Handler {
	return &Handler{info: info, started: time.Now(), now: time.Now}
}

// Register mounts /health and /info on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.healthHandler)
	mux.HandleFunc("/info", h.infoHandler)
}

func (h *Handler) healthHandler(w http.ResponseWriter, _ *http.Request) {
	now := h.now()
	writeJSON(w, Status{
		Status:    "healthy",
		Uptime:    now.Sub(h.started).Truncate(time.Second).String(),
		Timestamp: now.UTC(),
		Name:      h.info.Name,
	})
}

func (h *Handler) infoHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, h.info)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}
