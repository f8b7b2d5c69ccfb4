// Carolgate - NTSB CAROL Accident Data Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/carolgate

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/carolgate/internal/carol"
	"github.com/tomtom215/carolgate/internal/cases"
	"github.com/tomtom215/carolgate/internal/validation"
)

// CaseQuery is the validated parameter set shared by the case listing and
// stats endpoints. Dates use the CAROL wire layout (YYYY-MM-DD).
type CaseQuery struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Mode      string `json:"mode" validate:"required,oneof=Aviation Marine Highway Railroad Pipeline"`
	SortBy    string `json:"sort_by" validate:"omitempty,max=256"`
	Order     string `json:"order" validate:"required,oneof=asc desc"`
	Limit     int    `json:"limit" validate:"required,min=1"`
	Offset    int    `json:"offset" validate:"min=0"`
}

// Dates parses the validated date strings. Validation has already checked
// the layout, so parse errors here indicate a programming error.
func (q *CaseQuery) Dates() (start, end time.Time, err error) {
	start, err = time.Parse(carol.DateLayout, q.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err = time.Parse(carol.DateLayout, q.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// CaseSearchRequest is the POST /cases/search body: the usual query
// parameters plus exact-match filters over dotted record paths.
type CaseSearchRequest struct {
	CaseQuery
	Filters cases.FilterSet `json:"filters"`
}

// MonthQuery identifies a calendar month for the month download endpoint.
type MonthQuery struct {
	Year  int    `json:"year" validate:"required,min=1900,max=2100"`
	Month int    `json:"month" validate:"required,min=1,max=12"`
	Mode  string `json:"mode" validate:"required,oneof=Aviation Marine Highway Railroad Pipeline"`
}

// parseCaseQuery extracts and validates the shared case query parameters,
// applying defaults for mode, order, limit, and offset. The returned
// *validation.RequestValidationError is nil on success.
func parseCaseQuery(r *http.Request, defaultLimit, maxLimit int) (*CaseQuery, error) {
	q := r.URL.Query()

	query := &CaseQuery{
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
		Mode:      carol.Modes[0],
		Order:     cases.OrderDesc,
		Limit:     defaultLimit,
	}

	if mode := q.Get("mode"); mode != "" {
		query.Mode = mode
	}
	query.SortBy = q.Get("sort_by")
	if order := q.Get("order"); order != "" {
		query.Order = order
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("limit must be an integer, got %q", raw)
		}
		query.Limit = limit
	}
	if raw := q.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("offset must be an integer, got %q", raw)
		}
		query.Offset = offset
	}

	if err := validateCaseQuery(query, maxLimit); err != nil {
		return nil, err
	}
	return query, nil
}

// validateCaseQuery runs struct validation plus the cross-field checks the
// tag language cannot express.
func validateCaseQuery(query *CaseQuery, maxLimit int) error {
	if verr := validation.ValidateStruct(query); verr != nil {
		return verr
	}
	if query.Limit > maxLimit {
		return fmt.Errorf("limit must be at most %d, got %d", maxLimit, query.Limit)
	}

	start, end, err := query.Dates()
	if err != nil {
		return fmt.Errorf("invalid date: %v", err)
	}
	if end.Before(start) {
		return fmt.Errorf("end_date %s is before start_date %s", query.EndDate, query.StartDate)
	}
	return nil
}

// parseSearchRequest decodes and validates the POST /cases/search body.
func parseSearchRequest(r *http.Request, defaultLimit, maxLimit int) (*CaseSearchRequest, error) {
	req := &CaseSearchRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return nil, fmt.Errorf("invalid request body: %v", err)
	}

	if req.Mode == "" {
		req.Mode = carol.Modes[0]
	}
	if req.Order == "" {
		req.Order = cases.OrderDesc
	}
	if req.Limit == 0 {
		req.Limit = defaultLimit
	}

	if err := validateCaseQuery(&req.CaseQuery, maxLimit); err != nil {
		return nil, err
	}
	return req, nil
}

// parseMonthQuery extracts and validates the year/month/mode parameters for
// the month download endpoint.
func parseMonthQuery(r *http.Request) (*MonthQuery, error) {
	q := r.URL.Query()

	query := &MonthQuery{Mode: carol.Modes[0]}
	if mode := q.Get("mode"); mode != "" {
		query.Mode = mode
	}

	year, err := strconv.Atoi(q.Get("year"))
	if err != nil {
		return nil, fmt.Errorf("year must be an integer, got %q", q.Get("year"))
	}
	month, err := strconv.Atoi(q.Get("month"))
	if err != nil {
		return nil, fmt.Errorf("month must be an integer, got %q", q.Get("month"))
	}
	query.Year = year
	query.Month = month

	if verr := validation.ValidateStruct(query); verr != nil {
		return nil, verr
	}
	return query, nil
}

// writeRequestError renders a parse or validation failure as a 400 with
// field-level details when the validator produced them.
func writeRequestError(w http.ResponseWriter, r *http.Request, err error) {
	if verr, ok := err.(*validation.RequestValidationError); ok {
		apiErr := verr.ToAPIError()
		WriteErrorWithDetails(w, r, http.StatusBadRequest, ErrCodeValidation,
			apiErr.Message, apiErr.Details)
		return
	}
	WriteError(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error())
}

// sanitizeFilename strips characters that could break the Content-Disposition
// header out of a client-supplied path segment.
func sanitizeFilename(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '_'
		}
	}, s)
}
