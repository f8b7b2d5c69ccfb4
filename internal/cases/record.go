// Carolgate - NTSB CAROL Accident Data Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/carolgate

package cases

// Record is a single accident/incident case as decoded from the CAROL export
// JSON. Values are the usual decoded JSON kinds: nil, bool, float64, string,
// []any, or a nested map[string]any. No schema is assumed; any field may be
// missing or of a surprising type.
type Record = map[string]any

// FromDecoded converts a decoded top-level JSON sequence into records.
// Elements that are not objects are kept as empty records rather than dropped,
// so positions (and the total count) stay faithful to the export.
func FromDecoded(items []any) []Record {
	records := make([]Record, 0, len(items))
	for _, item := range items {
		if rec, ok := item.(map[string]any); ok {
			records = append(records, rec)
			continue
		}
		records = append(records, Record{})
	}
	return records
}
