// Carolgate - NTSB CAROL Accident Data Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/carolgate

package api

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/carolgate/internal/carol"
	"github.com/tomtom215/carolgate/internal/config"
)

// fakeExporter serves canned export bytes and records the calls it saw.
type fakeExporter struct {
	archive []byte
	err     error

	downloads  int
	streams    int
	lastStart  time.Time
	lastEnd    time.Time
	lastMode   string
	lastNTSB   string
	lastMKey   int
	monthCalls int
}

func (f *fakeExporter) Download(ctx context.Context, start, end time.Time, mode string) ([]byte, error) {
	f.downloads++
	f.lastStart, f.lastEnd, f.lastMode = start, end, mode
	if f.err != nil {
		return nil, f.err
	}
	return f.archive, nil
}

func (f *fakeExporter) Stream(ctx context.Context, start, end time.Time, mode string) (io.ReadCloser, error) {
	f.streams++
	f.lastStart, f.lastEnd, f.lastMode = start, end, mode
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(bytes.NewReader(f.archive)), nil
}

func (f *fakeExporter) DownloadMonth(ctx context.Context, year, month int, mode string) ([]byte, error) {
	start, end := carol.MonthRange(year, month)
	return f.Download(ctx, start, end, mode)
}

func (f *fakeExporter) StreamMonth(ctx context.Context, year, month int, mode string) (io.ReadCloser, error) {
	f.monthCalls++
	start, end := carol.MonthRange(year, month)
	return f.Stream(ctx, start, end, mode)
}

func (f *fakeExporter) StreamByNTSBNumber(ctx context.Context, ntsbNum string) (io.ReadCloser, error) {
	f.lastNTSB = ntsbNum
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(bytes.NewReader(f.archive)), nil
}

func (f *fakeExporter) StreamByMKey(ctx context.Context, mkey int) (io.ReadCloser, error) {
	f.lastMKey = mkey
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(bytes.NewReader(f.archive)), nil
}

// exportZip packs records into a single-entry ZIP the way CAROL does.
func exportZip(t *testing.T, records []map[string]any) []byte {
	t.Helper()

	payload, err := json.Marshal(records)
	if err != nil {
		t.Fatalf("marshal records: %v", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entry, err := zw.Create("cases_export.json")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := entry.Write(payload); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func sampleRecords() []map[string]any {
	return []map[string]any{
		{
			"cm_ntsbNum":            "DCA25MA001",
			"cm_eventDate":          "2025-01-05",
			"cm_state":              "California",
			"cm_highestInjury":      "Fatal",
			"cm_fatalInjuryCount":   float64(2),
			"cm_seriousInjuryCount": float64(0),
			"cm_minorInjuryCount":   float64(1),
		},
		{
			"cm_ntsbNum":            "WPR25LA002",
			"cm_eventDate":          "2025-01-12",
			"cm_state":              "Texas",
			"cm_highestInjury":      "None",
			"cm_fatalInjuryCount":   float64(0),
			"cm_seriousInjuryCount": float64(0),
			"cm_minorInjuryCount":   float64(0),
		},
		{
			"cm_ntsbNum":            "ERA25LA003",
			"cm_eventDate":          "2025-01-20",
			"cm_state":              "California",
			"cm_highestInjury":      "Serious",
			"cm_fatalInjuryCount":   float64(0),
			"cm_seriousInjuryCount": float64(1),
			"cm_minorInjuryCount":   float64(0),
		},
	}
}

func testHandler(t *testing.T, exp *fakeExporter) *Handler {
	t.Helper()
	return NewHandler(exp, config.APIConfig{DefaultPageSize: 100, MaxPageSize: 500}, "test")
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func TestListCasesEnvelope(t *testing.T) {
	exp := &fakeExporter{archive: exportZip(t, sampleRecords())}
	h := testHandler(t, exp)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/cases?start_date=2025-01-01&end_date=2025-01-31&mode=Aviation", nil)
	rec := httptest.NewRecorder()
	h.ListCases(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Data       []map[string]any `json:"data"`
		Pagination Pagination       `json:"pagination"`
		Metadata   map[string]any   `json:"metadata"`
	}
	decodeBody(t, rec, &body)

	if len(body.Data) != 3 {
		t.Errorf("data length = %d, want 3", len(body.Data))
	}
	if body.Pagination.Total != 3 || body.Pagination.Limit != 100 || body.Pagination.Offset != 0 {
		t.Errorf("pagination = %+v", body.Pagination)
	}
	if body.Metadata["stats"] == nil {
		t.Error("metadata.stats missing")
	}

	if exp.lastMode != "Aviation" {
		t.Errorf("mode = %q", exp.lastMode)
	}
	if got := exp.lastStart.Format(carol.DateLayout); got != "2025-01-01" {
		t.Errorf("start = %q", got)
	}
	if got := exp.lastEnd.Format(carol.DateLayout); got != "2025-01-31" {
		t.Errorf("end = %q", got)
	}
}

func TestListCasesSortAndPage(t *testing.T) {
	exp := &fakeExporter{archive: exportZip(t, sampleRecords())}
	h := testHandler(t, exp)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/cases?start_date=2025-01-01&end_date=2025-01-31&sort_by=cm_eventDate&order=asc&limit=1&offset=1", nil)
	rec := httptest.NewRecorder()
	h.ListCases(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Data       []map[string]any `json:"data"`
		Pagination Pagination       `json:"pagination"`
	}
	decodeBody(t, rec, &body)

	if len(body.Data) != 1 {
		t.Fatalf("data length = %d, want 1", len(body.Data))
	}
	if got := body.Data[0]["cm_ntsbNum"]; got != "WPR25LA002" {
		t.Errorf("second case ascending = %v, want WPR25LA002", got)
	}
	if body.Pagination.Total != 3 {
		t.Errorf("total = %d, want 3", body.Pagination.Total)
	}
}

func TestListCasesValidation(t *testing.T) {
	exp := &fakeExporter{archive: exportZip(t, nil)}
	h := testHandler(t, exp)

	tests := []struct {
		name  string
		query string
	}{
		{"missing dates", "mode=Aviation"},
		{"bad date layout", "start_date=01/01/2025&end_date=2025-01-31"},
		{"unknown mode", "start_date=2025-01-01&end_date=2025-01-31&mode=Submarine"},
		{"end before start", "start_date=2025-02-01&end_date=2025-01-01"},
		{"limit over cap", "start_date=2025-01-01&end_date=2025-01-31&limit=501"},
		{"non-numeric limit", "start_date=2025-01-01&end_date=2025-01-31&limit=ten"},
		{"bad order", "start_date=2025-01-01&end_date=2025-01-31&order=sideways"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ListCases(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cases?"+tt.query, nil))

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400; body = %s", rec.Code, rec.Body.String())
			}

			var body ErrorBody
			decodeBody(t, rec, &body)
			if body.Error.Code != ErrCodeValidation {
				t.Errorf("error code = %q, want %q", body.Error.Code, ErrCodeValidation)
			}
		})
	}

	if exp.downloads != 0 {
		t.Errorf("invalid requests reached upstream %d times", exp.downloads)
	}
}

func TestSearchCasesFiltersBeforeStats(t *testing.T) {
	exp := &fakeExporter{archive: exportZip(t, sampleRecords())}
	h := testHandler(t, exp)

	reqBody := `{
		"start_date": "2025-01-01",
		"end_date": "2025-01-31",
		"filters": {"cm_state": "California"}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cases/search", strings.NewReader(reqBody))
	rec := httptest.NewRecorder()
	h.SearchCases(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Data       []map[string]any `json:"data"`
		Pagination Pagination       `json:"pagination"`
		Metadata   struct {
			Fetched int `json:"fetched"`
			Stats   struct {
				Totals struct {
					Accidents int `json:"accidents"`
				} `json:"totals"`
			} `json:"stats"`
		} `json:"metadata"`
	}
	decodeBody(t, rec, &body)

	if len(body.Data) != 2 {
		t.Errorf("filtered data length = %d, want 2", len(body.Data))
	}
	if body.Pagination.Total != 2 {
		t.Errorf("total = %d, want 2 after filtering", body.Pagination.Total)
	}
	if body.Metadata.Fetched != 3 {
		t.Errorf("fetched = %d, want 3", body.Metadata.Fetched)
	}
	if body.Metadata.Stats.Totals.Accidents != 2 {
		t.Errorf("stats cover %d accidents, want the 2 filtered", body.Metadata.Stats.Totals.Accidents)
	}
}

func TestSearchCasesRejectsBadBody(t *testing.T) {
	h := testHandler(t, &fakeExporter{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cases/search", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.SearchCases(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCaseStatsEnvelope(t *testing.T) {
	exp := &fakeExporter{archive: exportZip(t, sampleRecords())}
	h := testHandler(t, exp)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/stats?start_date=2025-01-01&end_date=2025-01-31&mode=Aviation", nil)
	rec := httptest.NewRecorder()
	h.CaseStats(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Period StatsPeriod `json:"period"`
		Stats  struct {
			Totals struct {
				Accidents  int `json:"accidents"`
				Fatalities int `json:"fatalities"`
			} `json:"totals"`
			ByState map[string]int `json:"by_state"`
		} `json:"stats"`
	}
	decodeBody(t, rec, &body)

	if body.Period.StartDate != "2025-01-01" || body.Period.Mode != "Aviation" {
		t.Errorf("period = %+v", body.Period)
	}
	if body.Stats.Totals.Accidents != 3 {
		t.Errorf("accidents = %d, want 3", body.Stats.Totals.Accidents)
	}
	if body.Stats.Totals.Fatalities != 2 {
		t.Errorf("fatalities = %d, want 2", body.Stats.Totals.Fatalities)
	}
	if body.Stats.ByState["California"] != 2 {
		t.Errorf("by_state[California] = %d, want 2", body.Stats.ByState["California"])
	}
}

func TestUpstreamErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"status error", &carol.StatusError{Operation: "download", Code: 502}, http.StatusBadGateway, ErrCodeUpstreamStatus},
		{"transport error", &carol.TransportError{Operation: "download", Err: io.ErrUnexpectedEOF}, http.StatusBadGateway, ErrCodeUpstreamTransport},
		{"empty export", carol.ErrEmptyExport, http.StatusBadGateway, ErrCodeEmptyUpstream},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := testHandler(t, &fakeExporter{err: tt.err})

			req := httptest.NewRequest(http.MethodGet,
				"/api/v1/cases?start_date=2025-01-01&end_date=2025-01-31", nil)
			rec := httptest.NewRecorder()
			h.ListCases(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var body ErrorBody
			decodeBody(t, rec, &body)
			if body.Error.Code != tt.wantCode {
				t.Errorf("error code = %q, want %q", body.Error.Code, tt.wantCode)
			}
		})
	}
}

func TestListCasesMalformedArchive(t *testing.T) {
	h := testHandler(t, &fakeExporter{archive: []byte("this is not a zip")})

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/cases?start_date=2025-01-01&end_date=2025-01-31", nil)
	rec := httptest.NewRecorder()
	h.ListCases(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	var body ErrorBody
	decodeBody(t, rec, &body)
	if body.Error.Code != ErrCodeMalformedExport {
		t.Errorf("error code = %q, want %q", body.Error.Code, ErrCodeMalformedExport)
	}
}

func TestHealthEndpoints(t *testing.T) {
	h := testHandler(t, &fakeExporter{})

	endpoints := []func(http.ResponseWriter, *http.Request){h.Health, h.HealthLive, h.HealthReady}
	for _, endpoint := range endpoints {
		rec := httptest.NewRecorder()
		endpoint(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
		var body HealthResponse
		decodeBody(t, rec, &body)
		if body.Status == "" || body.Timestamp == "" {
			t.Errorf("health body incomplete: %+v", body)
		}
	}
}
