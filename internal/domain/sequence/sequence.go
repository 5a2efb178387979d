package sequence

import "context"

// Repository hands out monotonically increasing counters by name. Next
// must increment atomically inside the caller's transaction so two
// concurrent writers can never observe the same value.
type Repository interface {
	Next(ctx context.Context, name string) (uint64, error)
}
