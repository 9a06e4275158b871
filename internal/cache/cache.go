// Package cache holds short-lived read-through caches for catalog scans.
// Two variants share one interface: an in-process TTL map and a Redis
// client for deployments with more than one instance.
package cache

import "context"

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, val []byte)
	Delete(ctx context.Context, key string)
}
