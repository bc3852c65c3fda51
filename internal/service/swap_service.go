package service

import (
	"context"
	"time"

	"bookswap/internal/contact"
	"bookswap/internal/errors"
	"bookswap/internal/model"
	"bookswap/internal/query"
	"bookswap/internal/store"
	"bookswap/internal/swap"
)

// SwapService runs swap requests through their lifecycle and renders the participants' views.
type SwapService interface {
	Request(ctx context.Context, requesterID, listingID int64, message string) (*SwapView, error)
	Accept(ctx context.Context, actorID, swapID int64) (*SwapView, error)
	Decline(ctx context.Context, actorID, swapID int64) (*SwapView, error)
	Complete(ctx context.Context, actorID, swapID int64) (*SwapView, error)
	Cancel(ctx context.Context, actorID, swapID int64) (*SwapView, error)
	Inbox(ctx context.Context, userID int64) []SwapView
	Outbox(ctx context.Context, userID int64) []SwapView
	Detail(ctx context.Context, actorID, swapID int64) (*SwapDetail, error)
}

type swapService struct {
	store *store.Store
}

// NewSwapService builds a SwapService over the marketplace store.
func NewSwapService(st *store.Store) SwapService {
	return &swapService{store: st}
}

type transitionFunc func(snap *model.Snapshot, actorID, swapID int64, now time.Time) (*model.Swap, error)

func (s *swapService) apply(ctx context.Context, fn func(snap *model.Snapshot, now time.Time) (*model.Swap, error)) (*SwapView, error) {
	var view SwapView
	err := s.store.Mutate(ctx, func(snap *model.Snapshot, now time.Time) error {
		sw, err := fn(snap, now)
		if err != nil {
			return err
		}
		view = swapView(snap, *sw)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *swapService) transition(ctx context.Context, fn transitionFunc, actorID, swapID int64) (*SwapView, error) {
	return s.apply(ctx, func(snap *model.Snapshot, now time.Time) (*model.Swap, error) {
		return fn(snap, actorID, swapID, now)
	})
}

func (s *swapService) Request(ctx context.Context, requesterID, listingID int64, message string) (*SwapView, error) {
	return s.apply(ctx, func(snap *model.Snapshot, now time.Time) (*model.Swap, error) {
		return swap.Request(snap, requesterID, listingID, message, now)
	})
}

func (s *swapService) Accept(ctx context.Context, actorID, swapID int64) (*SwapView, error) {
	return s.transition(ctx, swap.Accept, actorID, swapID)
}

func (s *swapService) Decline(ctx context.Context, actorID, swapID int64) (*SwapView, error) {
	return s.transition(ctx, swap.Decline, actorID, swapID)
}

func (s *swapService) Complete(ctx context.Context, actorID, swapID int64) (*SwapView, error) {
	return s.transition(ctx, swap.Complete, actorID, swapID)
}

func (s *swapService) Cancel(ctx context.Context, actorID, swapID int64) (*SwapView, error) {
	return s.transition(ctx, swap.Cancel, actorID, swapID)
}

func (s *swapService) Inbox(_ context.Context, userID int64) []SwapView {
	var out []SwapView
	s.store.View(func(snap *model.Snapshot) {
		out = swapViews(snap, query.Inbox(snap, userID))
	})
	return out
}

func (s *swapService) Outbox(_ context.Context, userID int64) []SwapView {
	var out []SwapView
	s.store.View(func(snap *model.Snapshot) {
		out = swapViews(snap, query.Outbox(snap, userID))
	})
	return out
}

// Detail renders a swap for one of its participants, with both contacts run through the policy.
func (s *swapService) Detail(_ context.Context, actorID, swapID int64) (*SwapDetail, error) {
	var (
		detail *SwapDetail
		err    error
	)
	s.store.View(func(snap *model.Snapshot) {
		sw, ok := query.FindByID(snap.Swaps, swapID)
		if !ok {
			err = errors.ErrSwapNotFound
			return
		}
		view := swapView(snap, *sw)
		if actorID != sw.RequesterID && (view.ListingMissing || actorID != view.Listing.OwnerID) {
			err = errors.ErrNotParticipant
			return
		}
		detail = &SwapDetail{
			SwapView:         view,
			RequesterContact: contact.ForSwap(userOf(snap, sw.RequesterID), *sw),
			OwnerContact:     contact.Contact{Visibility: contact.Hidden},
		}
		if !view.ListingMissing {
			detail.OwnerContact = contact.ForSwap(userOf(snap, view.Listing.OwnerID), *sw)
		}
	})
	return detail, err
}
