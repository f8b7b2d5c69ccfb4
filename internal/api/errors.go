// Carolgate - NTSB CAROL Accident Data Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/carolgate

package api

import (
	"errors"
	"fmt"
	"net/http"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/carolgate/internal/carol"
	"github.com/tomtom215/carolgate/internal/logging"
)

// WriteUpstreamError maps an acquisition or extraction failure to the API
// error contract:
//
//	transport failure, empty export, malformed archive  -> 502
//	non-2xx upstream status                             -> 502
//	unsupported operation                               -> 501
//	circuit breaker open or saturated                   -> 503
//	anything else                                       -> 500
func WriteUpstreamError(w http.ResponseWriter, r *http.Request, err error) {
	logging.CtxErr(r.Context(), err).Msg("Upstream request failed")

	switch {
	case errors.Is(err, carol.ErrNotSupported):
		WriteError(w, r, http.StatusNotImplemented, ErrCodeNotImplemented,
			"This lookup is not supported by the NTSB FileExport service yet")
		return

	case errors.Is(err, carol.ErrEmptyExport):
		WriteError(w, r, http.StatusBadGateway, ErrCodeEmptyUpstream,
			"Empty response from NTSB FileExport service")
		return

	case errors.Is(err, carol.ErrMalformed):
		WriteError(w, r, http.StatusBadGateway, ErrCodeMalformedExport,
			"NTSB export could not be unpacked")
		return

	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		WriteError(w, r, http.StatusServiceUnavailable, ErrCodeUnavailable,
			"NTSB FileExport service is temporarily unavailable")
		return
	}

	var statusErr *carol.StatusError
	if errors.As(err, &statusErr) {
		WriteError(w, r, http.StatusBadGateway, ErrCodeUpstreamStatus,
			fmt.Sprintf("NTSB FileExport service returned HTTP %d", statusErr.Code))
		return
	}

	var transportErr *carol.TransportError
	if errors.As(err, &transportErr) {
		WriteError(w, r, http.StatusBadGateway, ErrCodeUpstreamTransport,
			"Could not reach the NTSB FileExport service")
		return
	}

	WriteError(w, r, http.StatusInternalServerError, ErrCodeInternal,
		"An internal error occurred")
}
