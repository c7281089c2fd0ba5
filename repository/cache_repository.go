package repository

import "context"

// CacheRepository memoizes serialized results. Misses and backend errors
// look the same to callers: the value is simply recomputed.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}
