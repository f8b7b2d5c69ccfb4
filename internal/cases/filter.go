// Carolgate - NTSB CAROL Accident Data Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/carolgate

package cases

import "reflect"

// FilterSet maps a dotted field path to an expected value. A nil expected
// value leaves the field unconstrained. A []any expected value matches when
// the resolved value is a member of the set; any other value must compare
// equal exactly (type-sensitive — a resolved string "5" does not match the
// number 5).
type FilterSet map[string]any

// Filter returns the records matching every predicate in the filter set
// (conjunction). Input order is preserved. An empty or all-nil filter set
// returns the input unchanged.
func Filter(records []Record, filters FilterSet) []Record {
	if len(filters) == 0 {
		return records
	}

	active := false
	for _, expected := range filters {
		if expected != nil {
			active = true
			break
		}
	}
	if !active {
		return records
	}

	filtered := make([]Record, 0, len(records))
	for _, record := range records {
		if matchesAll(record, filters) {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

// matchesAll reports whether a record satisfies every non-nil predicate.
func matchesAll(record Record, filters FilterSet) bool {
	for path, expected := range filters {
		if expected == nil {
			continue
		}

		actual, _ := Resolve(record, path) // absent resolves to nil

		if candidates, ok := expected.([]any); ok {
			if !containsValue(candidates, actual) {
				return false
			}
			continue
		}

		if !valuesEqual(actual, expected) {
			return false
		}
	}
	return true
}

// containsValue reports set membership using the same equality as scalar
// predicates.
func containsValue(candidates []any, value any) bool {
	for _, candidate := range candidates {
		if valuesEqual(value, candidate) {
			return true
		}
	}
	return false
}

// valuesEqual compares two decoded JSON values. DeepEqual covers nested
// sequences and mappings; decoded numbers are always float64 on both sides,
// so numeric equality stays consistent between request filters and records.
func valuesEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
