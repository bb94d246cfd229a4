package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateLimitError(t *testing.T) {
	err := fmt.Errorf("fetch: %w", &RateLimitError{RetryAfter: "120"})

	assert.ErrorIs(t, err, ErrRateLimitExceeded)
	assert.Equal(t, "120", RetryAfterHint(err))
	assert.Equal(t, DefaultRetryAfter, RetryAfterHint(&RateLimitError{}))
	assert.Equal(t, DefaultRetryAfter, RetryAfterHint(ErrRateLimitExceeded))
	assert.Contains(t, err.Error(), "retry after 120")
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(fmt.Errorf("%w: dial", ErrStorageUnavailable)))
	assert.True(t, IsRetryable(ErrUpstreamUnavailable))
	assert.True(t, IsRetryable(&RateLimitError{}))
	assert.False(t, IsRetryable(ErrStorage))
	assert.False(t, IsRetryable(ErrValidation))
	assert.False(t, IsRetryable(errors.New("other")))
}
