// Carolgate - NTSB CAROL Accident Data Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/carolgate

package cases

import (
	"reflect"
	"testing"
)

func sortFixtures() []Record {
	return []Record{
		{"cm_ntsbNum": "S1", "cm_eventDate": "2025-03-10"},
		{"cm_ntsbNum": "S2"}, // no event date
		{"cm_ntsbNum": "S3", "cm_eventDate": "2025-01-02"},
		{"cm_ntsbNum": "S4", "cm_eventDate": nil},
		{"cm_ntsbNum": "S5", "cm_eventDate": "2025-02-20"},
	}
}

func TestSortAscending(t *testing.T) {
	got := ntsbNums(Sort(sortFixtures(), "cm_eventDate", OrderAsc))
	want := []string{"S3", "S5", "S1", "S2", "S4"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ascending sort = %v, want %v", got, want)
	}
}

func TestSortDescending(t *testing.T) {
	got := ntsbNums(Sort(sortFixtures(), "cm_eventDate", OrderDesc))
	want := []string{"S1", "S5", "S3", "S2", "S4"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("descending sort = %v, want %v", got, want)
	}
}

func TestSortAbsentAlwaysLast(t *testing.T) {
	// S2 (missing) and S4 (null) must trail in both directions, keeping
	// their relative order.
	for _, order := range []string{OrderAsc, OrderDesc} {
		got := ntsbNums(Sort(sortFixtures(), "cm_eventDate", order))
		if got[3] != "S2" || got[4] != "S4" {
			t.Errorf("order %s: absent records not last: %v", order, got)
		}
	}
}

func TestSortStability(t *testing.T) {
	records := []Record{
		{"cm_ntsbNum": "T1", "cm_state": "OK"},
		{"cm_ntsbNum": "T2", "cm_state": "AK"},
		{"cm_ntsbNum": "T3", "cm_state": "OK"},
		{"cm_ntsbNum": "T4", "cm_state": "OK"},
	}

	once := Sort(records, "cm_state", OrderAsc)
	twice := Sort(once, "cm_state", OrderAsc)

	if !reflect.DeepEqual(ntsbNums(once), ntsbNums(twice)) {
		t.Errorf("sorting twice diverged: %v vs %v", ntsbNums(once), ntsbNums(twice))
	}

	// Equal keys preserve input order.
	want := []string{"T2", "T1", "T3", "T4"}
	if !reflect.DeepEqual(ntsbNums(once), want) {
		t.Errorf("stable sort = %v, want %v", ntsbNums(once), want)
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	records := sortFixtures()
	before := ntsbNums(records)

	Sort(records, "cm_eventDate", OrderAsc)

	if !reflect.DeepEqual(ntsbNums(records), before) {
		t.Errorf("Sort mutated its input: %v", ntsbNums(records))
	}
}

func TestSortEmptyPathReturnsInput(t *testing.T) {
	records := sortFixtures()
	got := Sort(records, "", OrderAsc)
	if !reflect.DeepEqual(ntsbNums(got), ntsbNums(records)) {
		t.Errorf("empty path sort reordered records: %v", ntsbNums(got))
	}
}

func TestSortMixedTypesIsDeterministic(t *testing.T) {
	records := []Record{
		{"cm_ntsbNum": "M1", "v": "abc"},
		{"cm_ntsbNum": "M2", "v": float64(3)},
		{"cm_ntsbNum": "M3", "v": true},
	}

	once := ntsbNums(Sort(records, "v", OrderAsc))
	twice := ntsbNums(Sort(records, "v", OrderAsc))
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("mixed-type sort not deterministic: %v vs %v", once, twice)
	}

	// Type rank: bool < number < string.
	want := []string{"M3", "M2", "M1"}
	if !reflect.DeepEqual(once, want) {
		t.Errorf("mixed-type sort = %v, want %v", once, want)
	}
}
