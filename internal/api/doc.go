// Carolgate - NTSB CAROL Accident Data Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/carolgate

// Package api provides the HTTP surface of the proxy: a chi router with
// CORS, per-IP rate limiting, and security headers; query validation; the
// case listing, search, and stats endpoints; and the raw ZIP passthrough
// download endpoints.
package api
