// Carolgate - NTSB CAROL Accident Data Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/carolgate

package carol

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"
)

func TestBuildDateRangePayload(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	q := BuildDateRangePayload(start, end, "Aviation")

	if len(q.QueryGroups) != 1 {
		t.Fatalf("QueryGroups = %d, want 1", len(q.QueryGroups))
	}
	rules := q.QueryGroups[0].QueryRules
	if len(rules) != 3 {
		t.Fatalf("QueryRules = %d, want 3", len(rules))
	}

	tests := []struct {
		idx      int
		operator string
		column   string
		value    string
	}{
		{0, "is on or after", "Event.EventDate", "2025-01-01"},
		{1, "is on or before", "Event.EventDate", "2025-01-31"},
		{2, "is", "Event.Mode", "Aviation"},
	}
	for _, tt := range tests {
		r := rules[tt.idx]
		if r.Operator != tt.operator {
			t.Errorf("rule %d operator = %q, want %q", tt.idx, r.Operator, tt.operator)
		}
		if len(r.Columns) != 1 || r.Columns[0] != tt.column {
			t.Errorf("rule %d columns = %v, want [%s]", tt.idx, r.Columns, tt.column)
		}
		if len(r.Values) != 1 || r.Values[0] != tt.value {
			t.Errorf("rule %d values = %v, want [%s]", tt.idx, r.Values, tt.value)
		}
		if r.RuleType != "Simple" {
			t.Errorf("rule %d type = %q, want Simple", tt.idx, r.RuleType)
		}
	}

	if q.SessionID != 227230 {
		t.Errorf("SessionID = %d, want 227230", q.SessionID)
	}
	if q.ResultSetSize != 500 {
		t.Errorf("ResultSetSize = %d, want 500", q.ResultSetSize)
	}
	if !q.SortDescending {
		t.Error("SortDescending = false, want true")
	}
	if q.ExportFormat != "data" || q.TargetCollection != "cases" {
		t.Errorf("format/collection = %q/%q", q.ExportFormat, q.TargetCollection)
	}
}

// The upstream parser is picky about field names, including the two
// lowercase ones. Marshal and check the wire keys.
func TestPayloadWireKeys(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	q := BuildDateRangePayload(start, start, "Marine")

	raw, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, key := range []string{"QueryGroups", "AndOr", "TargetCollection", "ExportFormat", "SessionId", "ResultSetSize", "SortDescending"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("top-level key %q missing", key)
		}
	}

	groups := doc["QueryGroups"].([]any)
	group := groups[0].(map[string]any)
	for _, key := range []string{"QueryRules", "AndOr", "inLastSearch", "editedSinceLastSearch"} {
		if _, ok := group[key]; !ok {
			t.Errorf("group key %q missing", key)
		}
	}

	rule := group["QueryRules"].([]any)[0].(map[string]any)
	for _, key := range []string{"RuleType", "Values", "Columns", "Operator", "overrideColumn", "selectedOption"} {
		if _, ok := rule[key]; !ok {
			t.Errorf("rule key %q missing", key)
		}
	}

	opt := rule["selectedOption"].(map[string]any)
	if opt["FieldName"] != "EventDate" || opt["InputType"] != "Date" {
		t.Errorf("selectedOption = %v", opt)
	}
	if opt["TargetCollection"] != "cases" {
		t.Errorf("selectedOption target = %v, want cases", opt["TargetCollection"])
	}
}

func TestMonthRange(t *testing.T) {
	tests := []struct {
		year, month int
		wantStart   string
		wantEnd     string
	}{
		{2025, 1, "2025-01-01", "2025-01-31"},
		{2025, 2, "2025-02-01", "2025-02-28"},
		{2024, 2, "2024-02-01", "2024-02-29"},
		{2025, 12, "2025-12-01", "2025-12-31"},
		{2025, 4, "2025-04-01", "2025-04-30"},
	}

	for _, tt := range tests {
		start, end := MonthRange(tt.year, tt.month)
		if got := start.Format(DateLayout); got != tt.wantStart {
			t.Errorf("%d-%02d start = %s, want %s", tt.year, tt.month, got, tt.wantStart)
		}
		if got := end.Format(DateLayout); got != tt.wantEnd {
			t.Errorf("%d-%02d end = %s, want %s", tt.year, tt.month, got, tt.wantEnd)
		}
	}
}

func TestFilenames(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	if got := DateRangeFilename("Aviation", start, end); got != "ntsb_Aviation_2025-01-01_2025-01-31.zip" {
		t.Errorf("DateRangeFilename = %q", got)
	}
	if got := MonthFilename("Marine", 2025, 3); got != "ntsb_Marine_2025-03.zip" {
		t.Errorf("MonthFilename = %q", got)
	}
	if got := NTSBNumberFilename("CEN25LA173"); got != "ntsb_CEN25LA173.zip" {
		t.Errorf("NTSBNumberFilename = %q", got)
	}
	if got := MKeyFilename(193642); got != "ntsb_mkey_193642.zip" {
		t.Errorf("MKeyFilename = %q", got)
	}
}
