package ports

import "context"

// Optional store for raw schedule responses keyed by request fingerprint.
type ScheduleCache interface {
	// Return the cached body for key, reporting whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Store body under key.
	Put(ctx context.Context, key string, body []byte) error
}
