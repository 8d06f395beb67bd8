package aws

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRetryTransientSucceedsFirstAttempt(t *testing.T) {
	attempts := 0

	err := retryTransient(context.Background(), func() error {
		attempts++
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, attempts)
}

func TestRetryTransientPermanentErrorNotRetried(t *testing.T) {
	attempts := 0
	permanent := NewAWSError(ErrResourceNotFound, VolumeResourceType, "vol-1", "Resource not found", nil)

	err := retryTransient(context.Background(), func() error {
		attempts++
		return permanent
	})

	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, attempts, "permanent errors must surface without retrying")
}

func TestRetryTransientStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	throttled := NewAWSError(ErrThrottling, EC2ResourceType, "i-1", "Request throttled", nil)

	err := retryTransient(ctx, func() error {
		attempts++
		cancel()
		return throttled
	})

	assert.Error(t, err)
	assert.Equal(t, 1, attempts, "no further attempts after the context is cancelled")
}
