package service

import (
	"context"
	"time"

	"bookswap/internal/contact"
	"bookswap/internal/errors"
	"bookswap/internal/listing"
	"bookswap/internal/model"
	"bookswap/internal/query"
	"bookswap/internal/store"
)

// ListingService exposes browsing and owner-side listing management.
type ListingService interface {
	Browse(ctx context.Context) []ListingView
	Library(ctx context.Context, ownerID int64) []ListingView
	Detail(ctx context.Context, viewerID, listingID int64) (*ListingDetail, error)
	Save(ctx context.Context, ownerID, listingID int64, form listing.Form) (*ListingView, error)
	Delete(ctx context.Context, ownerID, listingID int64) error
}

type listingService struct {
	store *store.Store
}

// NewListingService builds a ListingService over the marketplace store.
func NewListingService(st *store.Store) ListingService {
	return &listingService{store: st}
}

func (s *listingService) Browse(_ context.Context) []ListingView {
	var out []ListingView
	s.store.View(func(snap *model.Snapshot) {
		out = listingViews(snap, query.Browse(snap))
	})
	return out
}

func (s *listingService) Library(_ context.Context, ownerID int64) []ListingView {
	var out []ListingView
	s.store.View(func(snap *model.Snapshot) {
		out = listingViews(snap, query.Library(snap, ownerID))
	})
	return out
}

// Detail renders one listing. viewerID is 0 for anonymous viewers; a viewer holding an accepted swap on the
// listing sees the owner's contact regardless of the owner's public setting.
func (s *listingService) Detail(_ context.Context, viewerID, listingID int64) (*ListingDetail, error) {
	var (
		detail *ListingDetail
		err    error
	)
	s.store.View(func(snap *model.Snapshot) {
		l, ok := query.FindByID(snap.Listings, listingID)
		if !ok {
			err = errors.ErrListingNotFound
			return
		}
		owner := userOf(snap, l.OwnerID)
		accepted := viewerID != 0 && query.AcceptedBetween(snap, l.ID, viewerID)
		detail = &ListingDetail{
			ListingView:  listingView(snap, *l),
			OwnerContact: contact.Reveal(owner, accepted),
			Ratings:      query.RatingAverage(snap, l.BookID),
		}
		if viewerID == 0 {
			return
		}
		if r, ok := query.FindRating(snap, viewerID, l.BookID); ok {
			mine := *r
			detail.MyRating = &mine
		}
	})
	return detail, err
}

func (s *listingService) Save(ctx context.Context, ownerID, listingID int64, form listing.Form) (*ListingView, error) {
	var view ListingView
	err := s.store.Mutate(ctx, func(snap *model.Snapshot, now time.Time) error {
		l, err := listing.Save(snap, ownerID, listingID, form, now)
		if err != nil {
			return err
		}
		view = listingView(snap, *l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *listingService) Delete(ctx context.Context, ownerID, listingID int64) error {
	return s.store.Mutate(ctx, func(snap *model.Snapshot, _ time.Time) error {
		return listing.Delete(snap, ownerID, listingID)
	})
}
