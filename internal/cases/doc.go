// Carolgate - NTSB CAROL Accident Data Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/carolgate

// Package cases implements the in-memory processing pipeline over accident
// case records decoded from a CAROL export: filtering, sorting, pagination,
// and aggregate statistics.
//
// Case records are schema-less. The upstream export carries an open-ended set
// of fields and gives no structural guarantee, so every stage operates over
// plain decoded JSON values (Record = map[string]any) and degrades gracefully
// when a field is absent, null, or of an unexpected type.
//
// All stages are pure functions of (records, parameters). They share no state,
// hold no caches, and are safe to call concurrently from independent requests.
// Nested fields are addressed by dotted path (e.g.
// "cm_vehicles.0.aircraftCategory") through the single Resolve implementation,
// so filter and sort can never disagree on what a path means.
package cases
