// Carolgate - NTSB CAROL Accident Data Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/carolgate

// Package carol talks to the NTSB CAROL FileExport endpoint. It builds the
// query payloads the CAROL web UI sends, downloads the resulting ZIP
// archives with retries and outbound rate limiting, and unpacks the JSON
// case export those archives carry.
//
// Two acquisition paths exist with different retry guarantees. Download
// buffers each attempt fully, so a mid-body failure retries cleanly and
// callers never see partial data. Stream hands the response body through
// as-is; retries only cover attempts where no body byte has been accepted
// yet, and failures after that surface as a truncated stream.
package carol
