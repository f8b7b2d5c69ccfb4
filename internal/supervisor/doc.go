// Carolgate - NTSB CAROL Accident Data Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/carolgate

// Package supervisor runs the proxy's long-lived components under a suture
// supervision tree with restart backoff and graceful shutdown.
package supervisor
