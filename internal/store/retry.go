package store

import (
	"context"
	"errors"
	"time"

	"github.com/epochline/epochline/internal/timeline"
)

// DefaultMaxRetries is the default conflict retry budget. An operation is
// invoked at most DefaultMaxRetries+1 times.
const DefaultMaxRetries = 3

// retryBackoffStep is the linear backoff unit: attempt n waits n*step.
// Package-level so tests can shrink it.
var retryBackoffStep = 200 * time.Millisecond

// WithRetry invokes op, retrying only on version conflicts with linear
// backoff (200ms, 400ms, 600ms, ...). Any other failure propagates
// immediately. When the budget is exhausted the terminal failure is a
// *RetryExhaustedError.
//
// op must perform its own fresh Read inside each invocation; a version token
// captured before WithRetry starts is already known stale on retry. Prefer
// Client.Mutate, which enforces this structurally.
func WithRetry(ctx context.Context, maxRetries int, op func(ctx context.Context) error) error {
	if maxRetries < 0 {
		maxRetries = 0
	}
	for attempt := 0; ; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrVersionConflict) {
			return err
		}
		if attempt >= maxRetries {
			return &RetryExhaustedError{Attempts: attempt + 1, Last: err}
		}

		delay := retryBackoffStep * time.Duration(attempt+1)
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Mutate runs a whole read-modify-write sequence under the conflict retry
// loop. The apply function receives the collection read freshly inside the
// current attempt and mutates it in place; returning an error aborts the
// attempt without writing (a non-conflict error, timeline.ErrNotFound among
// them, is terminal). On success Mutate returns the written collection and
// the new version token.
func (c *Client) Mutate(ctx context.Context, message string, maxRetries int, apply func(col *timeline.Collection) error) (timeline.Collection, Version, error) {
	var (
		outCol timeline.Collection
		outVer Version
	)
	err := WithRetry(ctx, maxRetries, func(ctx context.Context) error {
		col, ver, err := c.Read(ctx)
		if err != nil {
			return err
		}
		if err := apply(&col); err != nil {
			return err
		}
		newVer, err := c.Write(ctx, col, ver, message)
		if err != nil {
			return err
		}
		outCol, outVer = col, newVer
		return nil
	})
	if err != nil {
		return timeline.Collection{}, "", err
	}
	return outCol, outVer, nil
}
