// Package ioretry holds the two retry shapes spec.md's error table
// assigns to transient failures: a single in-place retry for HTTP/SPARQL
// bucket requests, and a context-aware exponential backoff (×2) for SQL
// transient failures, grounded on the teacher's errgroup+context-
// cancellation idiom.
package ioretry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Once runs fn, and on failure runs it exactly one more time before
// giving up, the web-API/SPARQL bucket shape: "broken-connection errors
// trigger a single in-place retry; other HTTP failures drop the bucket
// with a warning."
func Once(ctx context.Context, fn func(ctx context.Context) error) error {
	err := fn(ctx)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return err
	}
	return fn(ctx)
}

// BackoffConfig tunes the exponential backoff retry loop.
type BackoffConfig struct {
	InitialInterval time.Duration
	Multiplier      float64
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

// DefaultBackoffConfig doubles the wait on every retry (the "×2" spec.md
// asks for), capping at 30s between attempts and giving up after 2
// minutes total.
func DefaultBackoffConfig() BackoffConfig {
	return BackoffConfig{
		InitialInterval: 500 * time.Millisecond,
		Multiplier:      2,
		MaxInterval:     30 * time.Second,
		MaxElapsedTime:  2 * time.Minute,
	}
}

// WithBackoff retries fn under exponential backoff until it succeeds,
// ctx is cancelled, or cfg's elapsed-time budget runs out, the SQL
// transient-failure shape: "rollback; retry with exponential backoff
// (×2)". Rollback itself is the caller's responsibility, since only the
// caller holds the failed transaction.
func WithBackoff(ctx context.Context, cfg BackoffConfig, fn func(ctx context.Context) error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = cfg.InitialInterval
	b.Multiplier = cfg.Multiplier
	b.MaxInterval = cfg.MaxInterval
	b.MaxElapsedTime = cfg.MaxElapsedTime

	return backoff.Retry(func() error {
		return fn(ctx)
	}, backoff.WithContext(b, ctx))
}
