// Package netretry retries GitHub API calls that failed for transient
// reasons: 5xx responses, timeouts and dropped connections.
package netretry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/google/go-github/v72/github"
)

// Policy bounds how often and how long an operation is retried.
type Policy struct {
	// Attempts is the total number of calls, the first one included.
	Attempts int
	BaseWait time.Duration
	MaxWait  time.Duration
}

// DefaultPolicy is used for forge reads.
//
//nolint:gochecknoglobals // read-only default
var DefaultPolicy = Policy{Attempts: 3, BaseWait: time.Second, MaxWait: 8 * time.Second}

// IsRetryable reports whether err looks transient. Cancellation and the
// caller's own deadline are never retried.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *github.ErrorResponse
	if errors.As(err, &apiErr) && apiErr.Response != nil {
		return apiErr.Response.StatusCode >= http.StatusInternalServerError
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED)
}

// ExponentialDelay returns min(baseWait * 2^(attempt-1), maxWait).
func ExponentialDelay(attempt int, baseWait, maxWait time.Duration) time.Duration {
	return min(baseWait*time.Duration(1<<(attempt-1)), maxWait)
}

// Do calls operation until it succeeds, fails with a non-retryable error,
// or policy.Attempts calls were made. The last error is returned.
func Do(ctx context.Context, policy Policy, operation func() error) error {
	for attempt := 1; ; attempt++ {
		err := operation()
		if err == nil || attempt >= policy.Attempts || !IsRetryable(err) {
			return err
		}

		timer := time.NewTimer(ExponentialDelay(attempt, policy.BaseWait, policy.MaxWait))

		select {
		case <-ctx.Done():
			timer.Stop()

			return fmt.Errorf("%w (retry aborted: %w)", err, ctx.Err())
		case <-timer.C:
		}
	}
}
