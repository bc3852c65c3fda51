package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bookswap/internal/config"
)

// writeOnlyBlobs fails every read and records writes.
type writeOnlyBlobs struct {
	written map[string][]byte
}

var errUnreadable = errors.New("read failed")

func (b *writeOnlyBlobs) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errUnreadable
}

func (b *writeOnlyBlobs) Set(_ context.Context, key string, value []byte) error {
	b.written[key] = value
	return nil
}

func TestNewStore(t *testing.T) {
	cfg := &config.Config{StoreBackend: config.BackendRedis, StoreKey: "bookswap-db-v1"}
	ctx := context.Background()

	t.Run("reset does not need a readable snapshot", func(t *testing.T) {
		blobs := &writeOnlyBlobs{written: map[string][]byte{}}
		st, err := newStore(ctx, blobs, cfg, zap.NewNop(), false)
		require.NoError(t, err)

		require.NoError(t, st.Reset(ctx))
		assert.Contains(t, blobs.written, "bookswap-db-v1")
	})

	t.Run("reading commands surface backend errors", func(t *testing.T) {
		blobs := &writeOnlyBlobs{written: map[string][]byte{}}
		_, err := newStore(ctx, blobs, cfg, zap.NewNop(), true)
		assert.ErrorIs(t, err, errUnreadable)
	})
}
