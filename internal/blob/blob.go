// Package blob is the key-value persistence surface the marketplace snapshot is written to.
package blob

import "context"

// Store reads and writes opaque values by key. Get reports ok=false when the key is absent.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}
