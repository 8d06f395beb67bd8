package aws

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	retryInitialInterval = 2 * time.Second
	retryMaxInterval     = 30 * time.Second
	retryMaxAttempts     = 5
)

// retryTransient runs fn, retrying with exponential backoff while it returns a
// retryable classified error. Permanent errors and exhausted retries surface to
// the caller unchanged.
func retryTransient(ctx context.Context, fn func() error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = retryInitialInterval
	bo.MaxInterval = retryMaxInterval

	operation := func() error {
		err := fn()
		if err != nil && !IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	return backoff.Retry(operation,
		backoff.WithContext(backoff.WithMaxRetries(bo, retryMaxAttempts-1), ctx))
}
