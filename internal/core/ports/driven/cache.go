package driven

import (
	"context"
	"time"
)

// Cache is a TTL'd byte cache keyed by composite strings
// (institution_department_grade_year). Expiry is checked at read time;
// implementations never run background sweeps.
type Cache interface {
	// Get returns the cached value and whether a live entry existed.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Put stores a value for ttl. A non-positive ttl is a no-op.
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Invalidate removes the entry, if any.
	Invalidate(ctx context.Context, key string) error
}
