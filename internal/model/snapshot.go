package model

import "slices"

// Entity is implemented by every collection member addressed by a numeric id.
type Entity interface {
	EntityID() int64
}

// NextID holds the per-collection id counters. Each value is the id the next record will get.
type NextID struct {
	Listing int64 `json:"listing"`
	Swap    int64 `json:"swap"`
	Book    int64 `json:"book"`
}

// Snapshot is the complete marketplace state, persisted as a single blob.
type Snapshot struct {
	Users         []User    `json:"users"`
	Books         []Book    `json:"books"`
	Listings      []Listing `json:"listings"`
	Swaps         []Swap    `json:"swaps"`
	Ratings       []Rating  `json:"ratings"`
	CurrentUserID *int64    `json:"currentUserId"`
	NextID        NextID    `json:"nextId"`
}

// AllocListingID returns the next listing id and advances the counter.
func (s *Snapshot) AllocListingID() int64 {
	id := s.NextID.Listing
	s.NextID.Listing++
	return id
}

// AllocSwapID returns the next swap id and advances the counter.
func (s *Snapshot) AllocSwapID() int64 {
	id := s.NextID.Swap
	s.NextID.Swap++
	return id
}

// AllocBookID returns the next book id and advances the counter.
func (s *Snapshot) AllocBookID() int64 {
	id := s.NextID.Book
	s.NextID.Book++
	return id
}

// RepairNextID raises any counter that is not above the highest id already in its collection,
// so allocated ids stay positive and unique. It reports whether a counter changed.
func (s *Snapshot) RepairNextID() bool {
	changed := false
	raise := func(counter *int64, highest int64) {
		if *counter <= highest {
			*counter = highest + 1
			changed = true
		}
	}
	raise(&s.NextID.Listing, maxID(s.Listings))
	raise(&s.NextID.Swap, maxID(s.Swaps))
	raise(&s.NextID.Book, maxID(s.Books))
	return changed
}

func maxID[T Entity](items []T) int64 {
	var highest int64
	for _, item := range items {
		if id := item.EntityID(); id > highest {
			highest = id
		}
	}
	return highest
}

// NextUserID returns max(user id)+1. Users have no persisted counter.
func (s *Snapshot) NextUserID() int64 {
	return maxID(s.Users) + 1
}

// Clone returns a deep copy of s.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		Users:    slices.Clone(s.Users),
		Books:    slices.Clone(s.Books),
		Listings: slices.Clone(s.Listings),
		Swaps:    slices.Clone(s.Swaps),
		Ratings:  slices.Clone(s.Ratings),
		NextID:   s.NextID,
	}
	for i := range out.Listings {
		out.Listings[i].Images = slices.Clone(out.Listings[i].Images)
	}
	if s.CurrentUserID != nil {
		id := *s.CurrentUserID
		out.CurrentUserID = &id
	}
	return out
}
