package ioretry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnceSucceedsOnFirstTry(t *testing.T) {
	calls := 0
	err := Once(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestOnceRetriesExactlyOnce(t *testing.T) {
	calls := 0
	err := Once(context.Background(), func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestOnceGivesUpAfterSecondFailure(t *testing.T) {
	calls := 0
	err := Once(context.Background(), func(ctx context.Context) error {
		calls++
		return errors.New("still broken")
	})
	assert.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestOnceDoesNotRetryAfterContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Once(ctx, func(ctx context.Context) error {
		calls++
		return errors.New("broken")
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithBackoffRetriesUntilSuccess(t *testing.T) {
	calls := 0
	cfg := BackoffConfig{InitialInterval: time.Millisecond, Multiplier: 2, MaxInterval: 5 * time.Millisecond, MaxElapsedTime: time.Second}

	err := WithBackoff(context.Background(), cfg, func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithBackoffRespectsElapsedTimeBudget(t *testing.T) {
	cfg := BackoffConfig{InitialInterval: time.Millisecond, Multiplier: 2, MaxInterval: 2 * time.Millisecond, MaxElapsedTime: 20 * time.Millisecond}

	err := WithBackoff(context.Background(), cfg, func(ctx context.Context) error {
		return errors.New("always fails")
	})
	assert.Error(t, err)
}
