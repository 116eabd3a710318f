package ports

import "context"

// AttemptCounter keeps a count that survives repeated invocations of the same
// scenario within one run.
type AttemptCounter interface {
	Increment(ctx context.Context, key string) (int64, error)
	Reset(ctx context.Context, key string) error
}
