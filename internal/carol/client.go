// Carolgate - NTSB CAROL Accident Data Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/carolgate

package carol

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/carolgate/internal/config"
	"github.com/tomtom215/carolgate/internal/logging"
	"github.com/tomtom215/carolgate/internal/metrics"
)

// Exporter is the FileExport surface the HTTP handlers consume. *Client
// implements it directly; BreakerClient wraps it with a circuit breaker.
type Exporter interface {
	// Download fetches a date-range export and returns the full ZIP bytes.
	// Each attempt is buffered independently, so retries never leak
	// partial data.
	Download(ctx context.Context, start, end time.Time, mode string) ([]byte, error)

	// Stream fetches a date-range export and returns the response body for
	// passthrough. Retries stop once a response has been accepted; the
	// caller owns closing the reader.
	Stream(ctx context.Context, start, end time.Time, mode string) (io.ReadCloser, error)

	DownloadMonth(ctx context.Context, year, month int, mode string) ([]byte, error)
	StreamMonth(ctx context.Context, year, month int, mode string) (io.ReadCloser, error)

	// StreamByNTSBNumber and StreamByMKey return ErrNotSupported: CAROL
	// has no public query shape for single-case exports yet.
	StreamByNTSBNumber(ctx context.Context, ntsbNum string) (io.ReadCloser, error)
	StreamByMKey(ctx context.Context, mkey int) (io.ReadCloser, error)
}

// Client posts FileExport queries to CAROL with bounded retries and an
// outbound rate limiter.
type Client struct {
	cfg        config.CarolConfig
	httpClient *http.Client
	limiter    *rate.Limiter
}

var _ Exporter = (*Client)(nil)

// NewClient builds a Client from configuration. The HTTP client timeout
// bounds each attempt, not the whole retry sequence.
func NewClient(cfg config.CarolConfig) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
	}
}

// Download fetches the export for [start, end] and the given mode, buffering
// the whole archive in memory.
func (c *Client) Download(ctx context.Context, start, end time.Time, mode string) ([]byte, error) {
	const op = "download"

	payload := BuildDateRangePayload(start, end, mode)
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("carol: marshal query payload: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 1 {
			metrics.UpstreamRetriesTotal.Inc()
			if err := c.backoff(ctx, attempt-1); err != nil {
				return nil, err
			}
		}

		data, err := c.attemptBuffered(ctx, op, body)
		if err == nil {
			logging.Debug().
				Str("mode", mode).
				Str("start", start.Format(DateLayout)).
				Str("end", end.Format(DateLayout)).
				Int("bytes", len(data)).
				Int("attempt", attempt).
				Msg("FileExport download complete")
			return data, nil
		}

		lastErr = err
		if !retryable(err) {
			return nil, err
		}
		logging.Warn().Err(err).Int("attempt", attempt).Msg("FileExport attempt failed")
	}

	return nil, lastErr
}

// Stream fetches the export for [start, end] and returns the raw response
// body. Failures after the response is accepted are the caller's to see.
func (c *Client) Stream(ctx context.Context, start, end time.Time, mode string) (io.ReadCloser, error) {
	const op = "stream"

	payload := BuildDateRangePayload(start, end, mode)
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("carol: marshal query payload: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 1 {
			metrics.UpstreamRetriesTotal.Inc()
			if err := c.backoff(ctx, attempt-1); err != nil {
				return nil, err
			}
		}

		resp, err := c.attempt(ctx, op, body)
		if err == nil {
			return resp.Body, nil
		}

		lastErr = err
		if !retryable(err) {
			return nil, err
		}
		logging.Warn().Err(err).Int("attempt", attempt).Msg("FileExport attempt failed")
	}

	return nil, lastErr
}

// DownloadMonth buffers the export covering one calendar month.
func (c *Client) DownloadMonth(ctx context.Context, year, month int, mode string) ([]byte, error) {
	start, end := MonthRange(year, month)
	return c.Download(ctx, start, end, mode)
}

// StreamMonth streams the export covering one calendar month.
func (c *Client) StreamMonth(ctx context.Context, year, month int, mode string) (io.ReadCloser, error) {
	start, end := MonthRange(year, month)
	return c.Stream(ctx, start, end, mode)
}

// StreamByNTSBNumber is not wired to CAROL yet.
func (c *Client) StreamByNTSBNumber(ctx context.Context, ntsbNum string) (io.ReadCloser, error) {
	return nil, fmt.Errorf("download by NTSB number %q: %w", ntsbNum, ErrNotSupported)
}

// StreamByMKey is not wired to CAROL yet.
func (c *Client) StreamByMKey(ctx context.Context, mkey int) (io.ReadCloser, error) {
	return nil, fmt.Errorf("download by mkey %d: %w", mkey, ErrNotSupported)
}

// attempt runs one FileExport POST and returns the response with its body
// still open. Non-2xx responses are drained, closed, and returned as
// StatusError.
func (c *Client) attempt(ctx context.Context, op string, body []byte) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &TransportError{Operation: op, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Operation: op, Err: err}
	}
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", c.cfg.Origin)
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	startedAt := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordUpstreamRequest(op, "transport_error", time.Since(startedAt))
		return nil, &TransportError{Operation: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096)) //nolint:errcheck
		resp.Body.Close()
		metrics.RecordUpstreamRequest(op, "status_"+strconv.Itoa(resp.StatusCode), time.Since(startedAt))
		return nil, &StatusError{Operation: op, Code: resp.StatusCode}
	}

	metrics.RecordUpstreamRequest(op, "success", time.Since(startedAt))
	return resp, nil
}

// attemptBuffered runs one attempt and reads the whole body. A read failure
// mid-body counts as a transport error so the caller can retry cleanly.
func (c *Client) attemptBuffered(ctx context.Context, op string, body []byte) ([]byte, error) {
	resp, err := c.attempt(ctx, op, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Operation: op, Err: err}
	}
	if len(data) == 0 {
		return nil, ErrEmptyExport
	}

	metrics.UpstreamBytesTotal.Add(float64(len(data)))
	return data, nil
}

// backoff sleeps for attempt*RetryBackoff or until the context is done.
func (c *Client) backoff(ctx context.Context, attempt int) error {
	delay := time.Duration(attempt) * c.cfg.RetryBackoff
	if delay <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// retryable reports whether another attempt could help: transport failures
// and 5xx statuses, nothing else.
func retryable(err error) bool {
	switch e := err.(type) {
	case *TransportError:
		return true
	case *StatusError:
		return e.Retryable()
	default:
		return false
	}
}
