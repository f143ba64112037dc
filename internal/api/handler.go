package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vigilsky/dronewatch/internal/alert"
	"github.com/vigilsky/dronewatch/internal/config"
	"github.com/vigilsky/dronewatch/internal/dispatch"
	"github.com/vigilsky/dronewatch/internal/engine"
	"github.com/vigilsky/dronewatch/internal/metrics"
)

// Handler holds all HTTP handler dependencies.
type Handler struct {
	eng    *engine.Engine
	loader *config.Loader
	disp   *dispatch.Dispatcher
	mux    *http.ServeMux
}

// New creates an HTTP handler and registers all routes.
func New(eng *engine.Engine, loader *config.Loader, disp *dispatch.Dispatcher) http.Handler {
	h := &Handler{eng: eng, loader: loader, disp: disp, mux: http.NewServeMux()}

	h.mux.HandleFunc("POST /dedrone", h.pushEvent)
	h.mux.HandleFunc("POST /dedrone/raw", h.pushRawAlert)
	h.mux.HandleFunc("GET /v1/zones", h.listZones)
	h.mux.HandleFunc("POST /v1/zones/reload", h.reloadZones)
	h.mux.HandleFunc("GET /healthz", h.healthz)
	h.mux.HandleFunc("GET /readyz", h.readyz)
	h.mux.Handle("GET /metrics", promhttp.Handler())

	return loggingMiddleware(h.mux)
}

// pushEnvelope is the Dedrone webhook push body.
type pushEnvelope struct {
	Data struct {
		AlertID string `json:"alertId"`
	} `json:"data"`
}

// POST /dedrone — webhook push carrying an alert id to fetch and dispatch.
func (h *Handler) pushEvent(w http.ResponseWriter, r *http.Request) {
	var env pushEnvelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	if env.Data.AlertID == "" {
		writeError(w, http.StatusPreconditionRequired, `"alertId" field is required`)
		return
	}

	out, err := h.eng.ProcessSync(r.Context(), env.Data.AlertID)
	if err != nil {
		writeError(w, http.StatusTooManyRequests, err.Error())
		return
	}
	writeOutcome(w, out)
}

// POST /dedrone/raw — legacy data-driven variant carrying the full alert
// document in the push body.
func (h *Handler) pushRawAlert(w http.ResponseWriter, r *http.Request) {
	var a alert.Alert
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}

	out, err := h.eng.ProcessPayloadSync(r.Context(), &a)
	if err != nil {
		writeError(w, http.StatusTooManyRequests, err.Error())
		return
	}
	writeOutcome(w, out)
}

// writeOutcome renders a dispatch outcome in the webhook response envelope:
// the rejection reason string, or the list of per-zone entries. Both are 200;
// alert-shape problems are never surfaced as errors.
func writeOutcome(w http.ResponseWriter, out *dispatch.Outcome) {
	if out.Rejected() {
		writeJSON(w, http.StatusOK, map[string]interface{}{"result": out.Reason})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"result": out.Result.Entries})
}

// GET /v1/zones — list the labels the current registry can resolve.
func (h *Handler) listZones(w http.ResponseWriter, r *http.Request) {
	reg := h.disp.Registry()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"version": h.loader.Config().Version,
		"zones":   reg.Labels(),
		"count":   reg.Len(),
	})
}

// POST /v1/zones/reload — re-read the config file and swap the registry.
func (h *Handler) reloadZones(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.loader.Reload()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := config.Validate(cfg); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reloaded":    true,
		"zones_count": len(cfg.Zones),
	})
}

// GET /healthz — always 200 (liveness probe).
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /readyz — 503 if the alert queue is >80% full.
func (h *Handler) readyz(w http.ResponseWriter, r *http.Request) {
	util := h.eng.QueueUtilization()
	metrics.QueueUtilization.Set(util)
	if util > 0.8 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":            "overloaded",
			"queue_utilization": util,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":            "ready",
		"queue_utilization": util,
	})
}
