// Carolgate - NTSB CAROL Accident Data Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/carolgate

// Package config loads and validates proxy configuration from layered
// sources: struct defaults, an optional YAML file, and environment
// variables, in increasing order of precedence.
package config
