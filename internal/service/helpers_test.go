package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"bookswap/internal/blob"
	"bookswap/internal/model"
	"bookswap/internal/store"
)

const (
	alice int64 = 1
	bob   int64 = 2
	carol int64 = 3

	hobbitListing int64 = 1
	duneListing   int64 = 2
)

// tickingClock advances a minute on every reading so creation order is visible in timestamps.
type tickingClock struct {
	t time.Time
}

func (c *tickingClock) now() time.Time {
	c.t = c.t.Add(time.Minute)
	return c.t
}

func newTestStore(t *testing.T) (*store.Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	clock := &tickingClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	st := store.New(blob.NewRedis(client), "test-db", store.WithClock(clock.now))
	require.NoError(t, st.Load(context.Background()))
	return st, mr
}

// addCarol registers a third user who owns nothing.
func addCarol(t *testing.T, st *store.Store) {
	t.Helper()
	err := st.Mutate(context.Background(), func(snap *model.Snapshot, now time.Time) error {
		snap.Users = append(snap.Users, model.User{
			ID: carol, Email: "carol@example.com", DisplayName: "Carol", Role: model.RoleUser, CreatedAt: now,
		})
		return nil
	})
	require.NoError(t, err)
}
