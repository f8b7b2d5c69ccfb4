// Carolgate - NTSB CAROL Accident Data Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/carolgate

package cases

import (
	"strconv"
	"strings"
)

// Resolve walks a dotted field path through a record and returns the value it
// addresses. Each path segment is either a mapping key or, when the current
// value is a sequence, a non-negative integer index. Any mismatch — missing
// key, non-numeric or out-of-range index, or a scalar encountered mid-path —
// yields (nil, false). Resolve never panics.
//
// Filter and Sort both key off this function; callers treat an absent value
// the same as null.
func Resolve(record Record, path string) (any, bool) {
	var current any = record

	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		case map[string]any:
			value, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = value
		default:
			return nil, false
		}
	}

	return current, true
}
