// Carolgate - NTSB CAROL Accident Data Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/carolgate

// Package metrics provides Prometheus collectors for production observability.
//
// All collectors are registered via promauto at package init and exposed on
// GET /metrics. Three areas are instrumented:
//
//   - API: request counts, latency histograms, active request gauge
//   - Upstream: FileExport request outcomes, retry counts, bytes received,
//     circuit breaker state and transitions
//   - Pipeline: archive extraction time and decoded case counts
//
// Handlers record API metrics through the middleware package; the upstream
// client records its own attempt outcomes so retries are visible per attempt,
// not per logical download.
package metrics
