// Carolgate - NTSB CAROL Accident Data Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/carolgate

package api

import (
	"github.com/tomtom215/carolgate/internal/carol"
	"github.com/tomtom215/carolgate/internal/config"
)

// Handler bundles the dependencies the endpoint handlers share: the
// FileExport client and the API paging limits.
type Handler struct {
	exporter carol.Exporter
	cfg      config.APIConfig

	version string
}

// NewHandler creates the endpoint handler set.
func NewHandler(exporter carol.Exporter, cfg config.APIConfig, version string) *Handler {
	if version == "" {
		version = "dev"
	}
	return &Handler{
		exporter: exporter,
		cfg:      cfg,
		version:  version,
	}
}
