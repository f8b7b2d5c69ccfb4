// Carolgate - NTSB CAROL Accident Data Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/carolgate

package carol

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/tomtom215/carolgate/internal/metrics"
)

// ExtractExportJSON unpacks a FileExport ZIP and decodes the first JSON
// entry it contains. The export payload is a JSON array of case objects;
// anything else is malformed. An archive with no JSON entry yields an
// empty, non-nil slice.
func ExtractExportJSON(archive []byte) ([]any, error) {
	startedAt := time.Now()
	defer func() {
		metrics.ArchiveExtractDuration.Observe(time.Since(startedAt).Seconds())
	}()

	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("%w: open archive: %v", ErrMalformed, err)
	}

	var entry *zip.File
	for _, f := range zr.File {
		if strings.HasSuffix(f.Name, ".json") {
			entry = f
			break
		}
	}
	if entry == nil {
		return []any{}, nil
	}

	rc, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrMalformed, entry.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrMalformed, entry.Name, err)
	}

	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrMalformed, entry.Name, err)
	}

	items, ok := decoded.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: export payload is %T, expected an array", ErrMalformed, decoded)
	}

	metrics.CasesExtractedTotal.Add(float64(len(items)))
	return items, nil
}
