package sim

import (
	"context"

	"github.com/sourcegraph/conc/pool"
)

// TaskFactory starts one unit of work when called and returns its result.
type TaskFactory[T any] func() (T, error)

// RunLimited runs factories with at most limit of them in flight at once, and
// returns all results. Result order is not tied to factory order.
//
// The first failure fails the call and closes admission: factories not yet
// started are never called. Tasks already running are not cancelled;
// RunLimited waits for them before returning, so callers must release
// per-task resources in the task itself rather than rely on the limiter.
func RunLimited[T any](factories []TaskFactory[T], limit int) ([]T, error) {
	if limit < 1 {
		return nil, configErrorf("concurrency", "limit must be >= 1, got %d", limit)
	}
	if len(factories) == 0 {
		return []T{}, nil
	}
	if limit > len(factories) {
		limit = len(factories)
	}

	p := pool.NewWithResults[T]().
		WithContext(context.Background()).
		WithCancelOnError().
		WithFirstError().
		WithMaxGoroutines(limit)
	for _, factory := range factories {
		p.Go(func(ctx context.Context) (T, error) {
			// Admission is closed once a sibling has failed.
			if err := ctx.Err(); err != nil {
				var zero T
				return zero, err
			}
			return factory()
		})
	}
	results, err := p.Wait()
	if err != nil {
		return nil, err
	}
	return results, nil
}
