// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers for calls to the tracker.
package httputil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
)

// RetryBaseDelay is the base duration for exponential backoff between
// attempts. Tests override this to avoid real sleeps.
var RetryBaseDelay = 500 * time.Millisecond

const defaultMaxRetries = 2

// errTransient marks an attempt that got a retryable status code.
var errTransient = errors.New("transient HTTP status")

// IsTransient reports whether status is worth retrying: the gateway and
// availability errors a load balancer returns while the backend recovers.
func IsTransient(status int) bool {
	switch status {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// DoWithRetry executes an HTTP request and retries transport errors and
// transient statuses (502, 503, 504) with exponential backoff starting at
// RetryBaseDelay. Every other response, including 429, is returned on the
// first attempt.
//
// When maxRetries is 0 the default (2) is used. If the context is
// cancelled during a backoff wait the function returns the context error.
// After exhausting retries on a transient status the last response is
// returned with its body intact so the caller can inspect it.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	var last *http.Response
	resp, err := retry.DoWithData(
		func() (*http.Response, error) {
			resp, err := client.Do(req.Clone(ctx))
			if err != nil {
				return nil, err
			}
			if !IsTransient(resp.StatusCode) {
				return resp, nil
			}

			// Buffer the body so the final attempt can still be read.
			body, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			if readErr != nil {
				return nil, fmt.Errorf("reading %d response: %w", resp.StatusCode, readErr)
			}
			resp.Body = io.NopCloser(bytes.NewReader(body))
			last = resp
			return nil, fmt.Errorf("%w %d", errTransient, resp.StatusCode)
		},
		retry.Context(ctx),
		retry.Attempts(uint(maxRetries)+1),
		retry.Delay(RetryBaseDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
		}),
		retry.OnRetry(func(n uint, err error) {
			slog.Debug("retrying request", "url", req.URL.Redacted(), "attempt", n+1, "max", maxRetries, "error", err)
		}),
	)
	if err != nil {
		if errors.Is(err, errTransient) && last != nil {
			return last, nil
		}
		return nil, err
	}
	return resp, nil
}
