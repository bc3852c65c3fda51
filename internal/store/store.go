// Package store owns the in-memory marketplace snapshot and its persistence as a single blob.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"bookswap/internal/blob"
	"bookswap/internal/model"
)

// Store holds the current snapshot. Reads see a consistent snapshot; mutations are serialized,
// applied to a copy and persisted before they become visible.
type Store struct {
	blobs  blob.Store
	key    string
	logger *zap.Logger
	now    func() time.Time

	mu   sync.RWMutex
	snap *model.Snapshot
}

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger used for persistence diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// New creates a Store persisting under key in blobs. The store starts on the seed dataset until Load is called.
func New(blobs blob.Store, key string, opts ...Option) *Store {
	s := &Store{
		blobs:  blobs,
		key:    key,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.snap = Seed(s.now())
	return s
}

// Now returns the store clock's current time.
func (s *Store) Now() time.Time {
	return s.now()
}

// Load replaces the in-memory state with the persisted snapshot. A missing or malformed blob
// yields the seed dataset and id counters that lag the stored records are repaired; only backend
// failures are returned.
func (s *Store) Load(ctx context.Context) error {
	raw, ok, err := s.blobs.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	snap := s.decode(raw, ok)

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
	return nil
}

func (s *Store) decode(raw []byte, ok bool) *model.Snapshot {
	if !ok || len(bytes.TrimSpace(raw)) == 0 {
		s.logger.Info("no stored snapshot, using seed data", zap.String("key", s.key))
		return Seed(s.now())
	}
	var snap *model.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil || snap == nil {
		s.logger.Warn("stored snapshot unreadable, using seed data", zap.String("key", s.key), zap.Error(err))
		return Seed(s.now())
	}
	if snap.RepairNextID() {
		s.logger.Warn("stored id counters behind existing records, repaired",
			zap.String("key", s.key),
			zap.Int64("listing", snap.NextID.Listing),
			zap.Int64("swap", snap.NextID.Swap),
			zap.Int64("book", snap.NextID.Book),
		)
	}
	return snap
}

// Save persists the current snapshot, overwriting whatever was stored.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(ctx, s.snap)
}

// Reset replaces the state with the seed dataset and persists it.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	seed := Seed(s.now())
	if err := s.persist(ctx, seed); err != nil {
		return err
	}
	s.snap = seed
	return nil
}

// View runs fn against the current snapshot. fn must not modify or retain it.
func (s *Store) View(fn func(snap *model.Snapshot)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.snap)
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() *model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Clone()
}

// Mutate applies fn to a copy of the state and, if fn succeeds, persists the copy and makes it current.
// When fn or the save fails the current state is left untouched.
func (s *Store) Mutate(ctx context.Context, fn func(snap *model.Snapshot, now time.Time) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snap.Clone()
	if err := fn(next, s.now()); err != nil {
		return err
	}
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.snap = next
	return nil
}

func (s *Store) persist(ctx context.Context, snap *model.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := s.blobs.Set(ctx, s.key, payload); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
