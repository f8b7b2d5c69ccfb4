// Carolgate - NTSB CAROL Accident Data Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/carolgate

package carol

import (
	"fmt"
	"time"
)

// Attachment filenames for the passthrough download endpoints. These match
// what the CAROL UI-derived tooling has always produced, so downstream
// scripts keyed on the names keep working.

func DateRangeFilename(mode string, start, end time.Time) string {
	return fmt.Sprintf("ntsb_%s_%s_%s.zip", mode, start.Format(DateLayout), end.Format(DateLayout))
}

func MonthFilename(mode string, year, month int) string {
	return fmt.Sprintf("ntsb_%s_%d-%02d.zip", mode, year, month)
}

func NTSBNumberFilename(ntsbNum string) string {
	return fmt.Sprintf("ntsb_%s.zip", ntsbNum)
}

func MKeyFilename(mkey int) string {
	return fmt.Sprintf("ntsb_mkey_%d.zip", mkey)
}
