package storage

import (
	"context"
	"errors"
	"time"

	"github.com/mwillard/gameroom/internal/dependencies/random"
	"github.com/mwillard/gameroom/internal/model"
)

const (
	// DefaultMaxRetries bounds CAS retry loops. A tunable, not a
	// correctness parameter: correctness comes from Update's CAS semantics.
	DefaultMaxRetries = 5

	baseRetryDelay = 25 * time.Millisecond
	maxJitter      = 10 * time.Millisecond
)

// WithRetry runs fn up to maxRetries times, retrying only on version
// conflicts. The delay before attempt n is baseRetryDelay * 2^(n-1) plus a
// small random jitter, so concurrent writers do not collide on a fixed
// period. Any error other than model.ErrVersionConflict is terminal.
func WithRetry(ctx context.Context, maxRetries int, rnd random.Random, fn func(ctx context.Context) error) error {
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}

	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			delay := baseRetryDelay<<(attempt-1) + time.Duration(rnd.Intn(int(maxJitter)))
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}

		err = fn(ctx)
		if err == nil || !errors.Is(err, model.ErrVersionConflict) {
			return err
		}
	}
	return err
}
