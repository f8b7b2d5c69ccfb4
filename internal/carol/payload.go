// Carolgate - NTSB CAROL Accident Data Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/carolgate

package carol

import "time"

// The FileExport endpoint accepts the same query document the CAROL web UI
// posts. The shapes below reproduce it field for field, including the
// capitalization quirks (overrideColumn, selectedOption, SessionId); the
// upstream parser rejects documents that deviate.

const (
	// DateLayout is the wire format for event date values.
	DateLayout = "2006-01-02"

	operatorOnOrAfter  = "is on or after"
	operatorOnOrBefore = "is on or before"
	operatorIs         = "is"

	columnEventDate = "Event.EventDate"
	columnEventMode = "Event.Mode"

	targetCollection = "cases"
	exportFormat     = "data"

	// Observed from the CAROL UI; the endpoint requires both to be present.
	defaultSessionID     = 227230
	defaultResultSetSize = 500
)

// Modes lists the investigation modes CAROL recognizes.
var Modes = []string{"Aviation", "Marine", "Highway", "Railroad", "Pipeline"}

// SelectedOption describes the UI field a query rule was built from.
type SelectedOption struct {
	FieldName        string   `json:"FieldName"`
	DisplayText      string   `json:"DisplayText"`
	Columns          []string `json:"Columns"`
	Selectable       bool     `json:"Selectable"`
	InputType        string   `json:"InputType"`
	RuleType         int      `json:"RuleType"`
	Options          any      `json:"Options"`
	TargetCollection string   `json:"TargetCollection"`
	UnderDevelopment bool     `json:"UnderDevelopment"`
}

// QueryRule is a single predicate over one case column.
type QueryRule struct {
	RuleType       string         `json:"RuleType"`
	Values         []string       `json:"Values"`
	Columns        []string       `json:"Columns"`
	Operator       string         `json:"Operator"`
	OverrideColumn string         `json:"overrideColumn"`
	SelectedOption SelectedOption `json:"selectedOption"`
}

// QueryGroup conjoins a set of rules.
type QueryGroup struct {
	QueryRules            []QueryRule `json:"QueryRules"`
	AndOr                 string      `json:"AndOr"`
	InLastSearch          bool        `json:"inLastSearch"`
	EditedSinceLastSearch bool        `json:"editedSinceLastSearch"`
}

// ExportQuery is the full FileExport request document.
type ExportQuery struct {
	QueryGroups      []QueryGroup `json:"QueryGroups"`
	AndOr            string       `json:"AndOr"`
	TargetCollection string       `json:"TargetCollection"`
	ExportFormat     string       `json:"ExportFormat"`
	SessionID        int          `json:"SessionId"`
	ResultSetSize    int          `json:"ResultSetSize"`
	SortDescending   bool         `json:"SortDescending"`
}

func eventDateOption() SelectedOption {
	return SelectedOption{
		FieldName:        "EventDate",
		DisplayText:      "Event date",
		Columns:          []string{columnEventDate},
		Selectable:       true,
		InputType:        "Date",
		RuleType:         0,
		Options:          nil,
		TargetCollection: targetCollection,
		UnderDevelopment: true,
	}
}

func modeOption() SelectedOption {
	return SelectedOption{
		FieldName:        "Mode",
		DisplayText:      "Investigation mode",
		Columns:          []string{columnEventMode},
		Selectable:       true,
		InputType:        "Dropdown",
		RuleType:         0,
		Options:          nil,
		TargetCollection: targetCollection,
		UnderDevelopment: true,
	}
}

// BuildDateRangePayload constructs the FileExport query for all cases of
// one investigation mode whose event date falls within [start, end].
func BuildDateRangePayload(start, end time.Time, mode string) ExportQuery {
	rules := []QueryRule{
		{
			RuleType:       "Simple",
			Values:         []string{start.Format(DateLayout)},
			Columns:        []string{columnEventDate},
			Operator:       operatorOnOrAfter,
			OverrideColumn: "",
			SelectedOption: eventDateOption(),
		},
		{
			RuleType:       "Simple",
			Values:         []string{end.Format(DateLayout)},
			Columns:        []string{columnEventDate},
			Operator:       operatorOnOrBefore,
			OverrideColumn: "",
			SelectedOption: eventDateOption(),
		},
		{
			RuleType:       "Simple",
			Values:         []string{mode},
			Columns:        []string{columnEventMode},
			Operator:       operatorIs,
			OverrideColumn: "",
			SelectedOption: modeOption(),
		},
	}

	return ExportQuery{
		QueryGroups: []QueryGroup{
			{
				QueryRules:            rules,
				AndOr:                 "and",
				InLastSearch:          false,
				EditedSinceLastSearch: false,
			},
		},
		AndOr:            "and",
		TargetCollection: targetCollection,
		ExportFormat:     exportFormat,
		SessionID:        defaultSessionID,
		ResultSetSize:    defaultResultSetSize,
		SortDescending:   true,
	}
}

// MonthRange returns the first and last calendar day of the given month.
func MonthRange(year, month int) (start, end time.Time) {
	start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, -1)
	return start, end
}
