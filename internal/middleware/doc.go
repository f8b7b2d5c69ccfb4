// Carolgate - NTSB CAROL Accident Data Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/carolgate

// Package middleware provides chi-compatible HTTP middleware: request ID
// propagation, Prometheus instrumentation, and response compression.
package middleware
