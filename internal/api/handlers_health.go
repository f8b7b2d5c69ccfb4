// Carolgate - NTSB CAROL Accident Data Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/carolgate

package api

import (
	"net/http"
	"time"
)

// HealthResponse is the body of the health endpoints.
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version,omitempty"`
	Timestamp string `json:"timestamp"`
}

// HealthLive reports process liveness. It never touches the upstream, so a
// CAROL outage does not make the orchestrator restart the proxy.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, r, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthReady reports readiness to serve. The proxy holds no local state, so
// readiness tracks liveness.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, r, http.StatusOK, HealthResponse{
		Status:    "ready",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Health is the human-facing health summary with the build version.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, r, http.StatusOK, HealthResponse{
		Status:    "ok",
		Version:   h.version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
