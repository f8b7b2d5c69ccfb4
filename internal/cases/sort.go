// Carolgate - NTSB CAROL Accident Data Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/carolgate

package cases

import "sort"

// Sort orders used by the case listing endpoints.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Sort returns a new slice ordered by the value each record resolves at the
// given dotted path. The sort is stable: records with equal keys keep their
// relative input order, which pagination depends on for determinism.
//
// Records whose key is absent or null sort after all present values in both
// directions — reversing the order reverses present values only, never
// promotes the missing ones.
func Sort(records []Record, path, order string) []Record {
	if path == "" {
		return records
	}

	descending := order == OrderDesc

	sorted := make([]Record, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, aOK := Resolve(sorted[i], path)
		b, bOK := Resolve(sorted[j], path)

		aAbsent := !aOK || a == nil
		bAbsent := !bOK || b == nil

		// Absent is always "largest" regardless of direction.
		if aAbsent || bAbsent {
			return !aAbsent && bAbsent
		}

		if descending {
			return lessValue(b, a)
		}
		return lessValue(a, b)
	})

	return sorted
}

// lessValue compares two present sort keys. Same-kind values compare
// naturally; mixed kinds fall back to a fixed type rank so the ordering is
// total and repeated sorts agree.
func lessValue(a, b any) bool {
	ra, rb := typeRank(a), typeRank(b)
	if ra != rb {
		return ra < rb
	}

	switch av := a.(type) {
	case bool:
		bv := b.(bool)
		return !av && bv
	case float64:
		return av < b.(float64)
	case string:
		return av < b.(string)
	default:
		// Sequences and mappings have no natural order; treat as equal so
		// stability preserves input order.
		return false
	}
}

// typeRank assigns a fixed ordering across JSON value kinds:
// bool < number < string < everything else.
func typeRank(v any) int {
	switch v.(type) {
	case bool:
		return 0
	case float64:
		return 1
	case string:
		return 2
	default:
		return 3
	}
}
