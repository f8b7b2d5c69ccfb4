// Carolgate - NTSB CAROL Accident Data Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/carolgate

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/carolgate/internal/carol"
	"github.com/tomtom215/carolgate/internal/cases"
	"github.com/tomtom215/carolgate/internal/logging"
)

// ListCases handles GET /api/v1/cases: fetch the export for the requested
// window, unpack it, optionally sort, and return one page with aggregate
// stats over the full set.
func (h *Handler) ListCases(w http.ResponseWriter, r *http.Request) {
	query, err := parseCaseQuery(r, h.cfg.DefaultPageSize, h.cfg.MaxPageSize)
	if err != nil {
		writeRequestError(w, r, err)
		return
	}

	records, err := h.fetchCases(r, query)
	if err != nil {
		WriteUpstreamError(w, r, err)
		return
	}

	h.writeCasePage(w, r, query, records, len(records))
}

// SearchCases handles POST /api/v1/cases/search: same pipeline as ListCases
// with exact-match filters applied before sorting and paging. Stats cover
// the filtered set, not the raw export.
func (h *Handler) SearchCases(w http.ResponseWriter, r *http.Request) {
	req, err := parseSearchRequest(r, h.cfg.DefaultPageSize, h.cfg.MaxPageSize)
	if err != nil {
		writeRequestError(w, r, err)
		return
	}

	records, err := h.fetchCases(r, &req.CaseQuery)
	if err != nil {
		WriteUpstreamError(w, r, err)
		return
	}

	fetched := len(records)
	if len(req.Filters) > 0 {
		records = cases.Filter(records, req.Filters)
	}

	h.writeCasePage(w, r, &req.CaseQuery, records, fetched)
}

// CaseStats handles GET /api/v1/stats: aggregate statistics for the
// requested window without the record payload.
func (h *Handler) CaseStats(w http.ResponseWriter, r *http.Request) {
	query, err := parseCaseQuery(r, h.cfg.DefaultPageSize, h.cfg.MaxPageSize)
	if err != nil {
		writeRequestError(w, r, err)
		return
	}

	records, err := h.fetchCases(r, query)
	if err != nil {
		WriteUpstreamError(w, r, err)
		return
	}

	WriteJSON(w, r, http.StatusOK, StatsResponse{
		Period: StatsPeriod{
			StartDate: query.StartDate,
			EndDate:   query.EndDate,
			Mode:      query.Mode,
		},
		Stats: cases.Stats(records),
	})
}

// fetchCases downloads and unpacks the export for a validated query.
func (h *Handler) fetchCases(r *http.Request, query *CaseQuery) ([]cases.Record, error) {
	start, end, err := query.Dates()
	if err != nil {
		return nil, err
	}

	fetchStart := time.Now()
	archive, err := h.exporter.Download(r.Context(), start, end, query.Mode)
	if err != nil {
		return nil, err
	}

	decoded, err := carol.ExtractExportJSON(archive)
	if err != nil {
		return nil, err
	}

	records := cases.FromDecoded(decoded)
	logging.Ctx(r.Context()).Debug().
		Str("mode", query.Mode).
		Str("start_date", query.StartDate).
		Str("end_date", query.EndDate).
		Int("records", len(records)).
		Dur("elapsed", time.Since(fetchStart)).
		Msg("Fetched case export")

	return records, nil
}

// writeCasePage sorts, pages, and aggregates a record set into the case
// envelope. fetched is the pre-filter record count for the metadata block.
func (h *Handler) writeCasePage(w http.ResponseWriter, r *http.Request, query *CaseQuery, records []cases.Record, fetched int) {
	if query.SortBy != "" {
		records = cases.Sort(records, query.SortBy, query.Order)
	}

	page := cases.Paginate(records, query.Limit, query.Offset)

	WriteJSON(w, r, http.StatusOK, CaseResponse{
		Data: page.Items,
		Pagination: Pagination{
			Total:  page.Total,
			Limit:  page.Limit,
			Offset: page.Offset,
		},
		Metadata: map[string]any{
			"query": map[string]any{
				"start_date": query.StartDate,
				"end_date":   query.EndDate,
				"mode":       query.Mode,
			},
			"fetched": fetched,
			"stats":   cases.Stats(records),
		},
	})
}
