// Carolgate - NTSB CAROL Accident Data Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/carolgate

package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/carolgate/internal/cases"
	"github.com/tomtom215/carolgate/internal/logging"
)

// CaseResponse is the envelope for the parsed-case endpoints. The field
// names and nesting are the external contract; clients depend on them.
type CaseResponse struct {
	Data       []cases.Record `json:"data"`
	Pagination Pagination     `json:"pagination"`
	Metadata   map[string]any `json:"metadata"`
}

// Pagination echoes the window applied to the result set. Total counts the
// full set before the window.
type Pagination struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// StatsResponse is the envelope for the stats endpoint.
type StatsResponse struct {
	Period StatsPeriod       `json:"period"`
	Stats  cases.StatsResult `json:"stats"`
}

// StatsPeriod identifies the slice of data the stats describe.
type StatsPeriod struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Mode      string `json:"mode"`
}

// ErrorBody is the JSON error envelope.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code, a human-readable message,
// and the request ID for tracing.
type ErrorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
	Details   any    `json:"details,omitempty"`
}

// Error codes for API responses.
const (
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodeTooMany        = "TOO_MANY_REQUESTS"
	ErrCodeInternal       = "INTERNAL_ERROR"
	ErrCodeNotImplemented = "NOT_IMPLEMENTED"
	ErrCodeUnavailable    = "SERVICE_UNAVAILABLE"

	ErrCodeUpstreamStatus    = "UPSTREAM_STATUS_ERROR"
	ErrCodeUpstreamTransport = "UPSTREAM_TRANSPORT_ERROR"
	ErrCodeEmptyUpstream     = "EMPTY_UPSTREAM_RESPONSE"
	ErrCodeMalformedExport   = "MALFORMED_EXPORT"
)

// WriteJSON writes data as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// WriteError writes the JSON error envelope with the given status and code.
func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	WriteErrorWithDetails(w, r, status, code, message, nil)
}

// WriteErrorWithDetails writes the error envelope with extra detail data.
func WriteErrorWithDetails(w http.ResponseWriter, r *http.Request, status int, code, message string, details any) {
	WriteJSON(w, r, status, ErrorBody{
		Error: ErrorDetail{
			Code:      code,
			Message:   message,
			RequestID: logging.RequestIDFromContext(r.Context()),
			Details:   details,
		},
	})
}
