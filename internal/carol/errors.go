// Carolgate - NTSB CAROL Accident Data Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/carolgate

package carol

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyExport reports a 2xx upstream response with a zero-byte body.
	ErrEmptyExport = errors.New("carol: empty response from FileExport")

	// ErrMalformed reports an export that could not be unpacked: not a ZIP,
	// an unreadable entry, invalid JSON, or a payload that is not an array.
	ErrMalformed = errors.New("carol: malformed export archive or payload")

	// ErrNotSupported reports an operation the upstream API has no query
	// shape for yet (lookups by NTSB number or mkey).
	ErrNotSupported = errors.New("carol: operation not supported by upstream")
)

// TransportError reports a network-level failure: connection refused, a
// timeout, or a broken response body. All attempts were exhausted.
type TransportError struct {
	Operation string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("carol: %s: transport failure: %v", e.Operation, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError reports a non-2xx upstream response. 5xx codes are retried
// before one of these surfaces; anything else fails immediately.
type StatusError struct {
	Operation string
	Code      int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("carol: %s: upstream returned HTTP %d", e.Operation, e.Code)
}

// Retryable reports whether the status code is worth another attempt.
func (e *StatusError) Retryable() bool {
	return e.Code >= 500 && e.Code < 600
}
