// Carolgate - NTSB CAROL Accident Data Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/carolgate

package cases

// Page is the result of slicing a record set: the visible window plus the
// pre-slice total the client needs to compute page counts.
type Page struct {
	Items  []Record `json:"items"`
	Total  int      `json:"total"`
	Limit  int      `json:"limit"`
	Offset int      `json:"offset"`
}

// Paginate slices records[offset : offset+limit]. Total is always the full
// record count, independent of the window. Out-of-range bounds clamp to an
// empty page; Paginate never errors.
func Paginate(records []Record, limit, offset int) Page {
	total := len(records)

	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}

	start := offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	items := records[start:end]
	if items == nil {
		items = []Record{}
	}

	return Page{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
}
