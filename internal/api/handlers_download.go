// Carolgate - NTSB CAROL Accident Data Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/carolgate

package api

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/carolgate/internal/carol"
	"github.com/tomtom215/carolgate/internal/logging"
	"github.com/tomtom215/carolgate/internal/validation"
)

// DownloadRange handles GET /api/v1/download/date-range: stream the raw
// export ZIP for a date range straight through to the client.
func (h *Handler) DownloadRange(w http.ResponseWriter, r *http.Request) {
	query, err := parseCaseQuery(r, h.cfg.DefaultPageSize, h.cfg.MaxPageSize)
	if err != nil {
		writeRequestError(w, r, err)
		return
	}

	start, end, err := query.Dates()
	if err != nil {
		writeRequestError(w, r, err)
		return
	}

	body, err := h.exporter.Stream(r.Context(), start, end, query.Mode)
	if err != nil {
		WriteUpstreamError(w, r, err)
		return
	}
	defer body.Close()

	h.streamZip(w, r, body, carol.DateRangeFilename(query.Mode, start, end))
}

// DownloadMonth handles GET /api/v1/download/month: the raw export ZIP for
// one calendar month.
func (h *Handler) DownloadMonth(w http.ResponseWriter, r *http.Request) {
	query, err := parseMonthQuery(r)
	if err != nil {
		writeRequestError(w, r, err)
		return
	}

	body, err := h.exporter.StreamMonth(r.Context(), query.Year, query.Month, query.Mode)
	if err != nil {
		WriteUpstreamError(w, r, err)
		return
	}
	defer body.Close()

	h.streamZip(w, r, body, carol.MonthFilename(query.Mode, query.Year, query.Month))
}

// DownloadByNTSBNumber handles GET /api/v1/download/ntsb-number?ntsb_num=.
// CAROL has no public single-case export query yet, so this surfaces 501
// until one exists.
func (h *Handler) DownloadByNTSBNumber(w http.ResponseWriter, r *http.Request) {
	ntsbNum := r.URL.Query().Get("ntsb_num")
	if verr := validation.ValidateStruct(&struct {
		NTSBNumber string `json:"ntsb_num" validate:"required,max=32"`
	}{ntsbNum}); verr != nil {
		writeRequestError(w, r, verr)
		return
	}

	body, err := h.exporter.StreamByNTSBNumber(r.Context(), ntsbNum)
	if err != nil {
		WriteUpstreamError(w, r, err)
		return
	}
	defer body.Close()

	h.streamZip(w, r, body, carol.NTSBNumberFilename(sanitizeFilename(ntsbNum)))
}

// DownloadByMKey handles GET /api/v1/download/mkey?mkey=. Same upstream
// limitation as DownloadByNTSBNumber.
func (h *Handler) DownloadByMKey(w http.ResponseWriter, r *http.Request) {
	mkey, err := strconv.Atoi(r.URL.Query().Get("mkey"))
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, ErrCodeValidation,
			fmt.Sprintf("mkey must be an integer, got %q", r.URL.Query().Get("mkey")))
		return
	}
	if mkey < 1 {
		WriteError(w, r, http.StatusBadRequest, ErrCodeValidation,
			fmt.Sprintf("mkey must be positive, got %d", mkey))
		return
	}

	body, err := h.exporter.StreamByMKey(r.Context(), mkey)
	if err != nil {
		WriteUpstreamError(w, r, err)
		return
	}
	defer body.Close()

	h.streamZip(w, r, body, carol.MKeyFilename(mkey))
}

// streamZip copies an upstream export body to the client as a ZIP
// attachment. Once the copy starts the status line is already on the wire,
// so mid-stream failures can only be logged and the connection cut short.
func (h *Handler) streamZip(w http.ResponseWriter, r *http.Request, body io.Reader, filename string) {
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	streamStart := time.Now()
	written, err := io.Copy(w, body)
	if err != nil {
		logging.CtxErr(r.Context(), err).
			Str("filename", filename).
			Int64("bytes_written", written).
			Msg("Export stream aborted")
		return
	}

	logging.Ctx(r.Context()).Debug().
		Str("filename", filename).
		Int64("bytes", written).
		Dur("elapsed", time.Since(streamStart)).
		Msg("Streamed export archive")
}
