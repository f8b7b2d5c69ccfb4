// Carolgate - NTSB CAROL Accident Data Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/carolgate

package carol

import (
	"context"
	"fmt"
	"io"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/carolgate/internal/logging"
	"github.com/tomtom215/carolgate/internal/metrics"
)

// BreakerClient wraps an Exporter with a circuit breaker so a struggling
// upstream sheds load instead of accumulating blocked requests.
//
// The breaker uses real time for its interval and timeout bookkeeping.
// Tests should exercise the wrapped client directly or fake the upstream,
// not the breaker clock.
type BreakerClient struct {
	client Exporter
	cb     *gobreaker.CircuitBreaker[any]
	name   string
}

var _ Exporter = (*BreakerClient)(nil)

// NewBreakerClient wraps client with a circuit breaker that opens at a 60%
// failure rate over at least 5 requests, allows 3 probes while half-open,
// and waits 2 minutes before probing an open circuit.
func NewBreakerClient(client Exporter) *BreakerClient {
	const cbName = "carol-fileexport"

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6

			if shouldTrip {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}

			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &BreakerClient{
		client: client,
		cb:     cb,
		name:   cbName,
	}
}

func (b *BreakerClient) execute(fn func() (any, error)) (any, error) {
	return b.cb.Execute(fn)
}

func castResult[T any](result any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

func (b *BreakerClient) Download(ctx context.Context, start, end time.Time, mode string) ([]byte, error) {
	return castResult[[]byte](b.execute(func() (any, error) {
		return b.client.Download(ctx, start, end, mode)
	}))
}

func (b *BreakerClient) Stream(ctx context.Context, start, end time.Time, mode string) (io.ReadCloser, error) {
	return castResult[io.ReadCloser](b.execute(func() (any, error) {
		return b.client.Stream(ctx, start, end, mode)
	}))
}

func (b *BreakerClient) DownloadMonth(ctx context.Context, year, month int, mode string) ([]byte, error) {
	return castResult[[]byte](b.execute(func() (any, error) {
		return b.client.DownloadMonth(ctx, year, month, mode)
	}))
}

func (b *BreakerClient) StreamMonth(ctx context.Context, year, month int, mode string) (io.ReadCloser, error) {
	return castResult[io.ReadCloser](b.execute(func() (any, error) {
		return b.client.StreamMonth(ctx, year, month, mode)
	}))
}

// StreamByNTSBNumber passes through without touching the breaker: the call
// fails locally with ErrNotSupported and says nothing about upstream health.
func (b *BreakerClient) StreamByNTSBNumber(ctx context.Context, ntsbNum string) (io.ReadCloser, error) {
	return b.client.StreamByNTSBNumber(ctx, ntsbNum)
}

// StreamByMKey passes through for the same reason as StreamByNTSBNumber.
func (b *BreakerClient) StreamByMKey(ctx context.Context, mkey int) (io.ReadCloser, error) {
	return b.client.StreamByMKey(ctx, mkey)
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
