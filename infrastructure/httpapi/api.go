// Package httpapi exposes the plain HTTP side of the realtime layer: the
// trigger entrypoint domain services call to raise monitoring events, and
// a stats snapshot for dashboards.
package httpapi

import (
	"encoding/json"
	"log/slog"
	"market-hub/observability"
	"market-hub/runtime"
	"market-hub/services"
	"net/http"
)

type notifyRequest struct {
	Source        string `json:"source"`
	AffectedCount int    `json:"affectedCount"`
}

// NotifyHandler lets external domain logic fire the monitoring trigger
// over HTTP. Always 202: the debounce decision is not the caller's
// business and no error here may reach the triggering domain event.
func NotifyHandler(log *slog.Logger, router *services.MonitoringRouter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var req notifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Debug("malformed notify payload", "error", err)
		}

		router.NotifyUpdated(r.Context(), req.Source, req.AffectedCount)
		w.WriteHeader(http.StatusAccepted)
	}
}

// StatsHandler serves a JSON snapshot of hub occupancy.
func StatsHandler(registry *runtime.Registry, stats *observability.HubStats) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		snapshot := stats.GetSnapshot()
		connections, groups := registry.Stats()
		snapshot["connections"] = connections
		snapshot["groups"] = groups

		_ = json.NewEncoder(w).Encode(snapshot)
	}
}
