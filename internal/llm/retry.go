// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package llm

import (
	"context"
	"errors"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// maxRetryDelay caps both backoff and Retry-After.
const maxRetryDelay = 10 * time.Second

// isRetryableStatus reports whether a response status is worth retrying.
func isRetryableStatus(code int) bool {
	if code == http.StatusRequestTimeout || code == http.StatusTooManyRequests {
		return true
	}
	return code >= 500 && code <= 599
}

// isRetryable reports whether err is transient. Context cancellation is not:
// the caller gave up.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return isRetryableStatus(httpErr.StatusCode)
	}
	return false
}

// retryAfter returns the delay asked for by a Retry-After header in seconds,
// or fallback. The result is capped at max.
func retryAfter(header http.Header, fallback, max time.Duration) time.Duration {
	wait := fallback
	if header != nil {
		if ra := strings.TrimSpace(header.Get("Retry-After")); ra != "" {
			if secs, err := strconv.Atoi(ra); err == nil && secs > 0 {
				wait = time.Duration(secs) * time.Second
			}
		}
	}
	if max > 0 && wait > max {
		wait = max
	}
	return wait
}

// jitter spreads d by up to 20% in either direction.
func jitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	delta := float64(d) * 0.2
	low := float64(d) - delta
	return time.Duration(low + rand.Float64()*2*delta) //nolint:gosec // jitter does not need crypto randomness
}

// sleepCtx waits for d or until ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
