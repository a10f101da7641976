// Package slot stores opaque values under named keys. Every write replaces
// the previous value; there is no merge and the last writer wins.
package slot

import "context"

type Repository interface {
	// Get returns domain.ErrNotFound when nothing is stored under key.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
}
