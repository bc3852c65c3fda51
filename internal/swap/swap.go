// Package swap implements the swap request lifecycle:
//
//	PENDING -> ACCEPTED | DECLINED
//	ACCEPTED -> COMPLETED | CANCELLED
//
// Every function works on an explicit snapshot, checks the actor before the status, and either
// applies its whole effect or returns a domain error without touching the snapshot.
package swap

import (
	"strings"
	"time"

	"bookswap/internal/errors"
	"bookswap/internal/model"
	"bookswap/internal/query"
)

// DefaultMessage is used when a request is sent without a message.
const DefaultMessage = "Interested in swapping!"

var transitions = map[model.SwapStatus][]model.SwapStatus{
	model.SwapStatusPending:  {model.SwapStatusAccepted, model.SwapStatusDeclined},
	model.SwapStatusAccepted: {model.SwapStatusCompleted, model.SwapStatusCancelled},
}

// CanTransition reports whether the lifecycle allows moving from one status to another.
func CanTransition(from, to model.SwapStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Request creates a PENDING swap from requesterID for listingID.
func Request(snap *model.Snapshot, requesterID, listingID int64, message string, now time.Time) (*model.Swap, error) {
	listing, ok := query.FindByID(snap.Listings, listingID)
	if !ok {
		return nil, errors.ErrListingNotFound
	}
	if listing.OwnerID == requesterID {
		return nil, errors.ErrOwnListing
	}
	if !listing.Available {
		return nil, errors.ErrListingUnavailable
	}
	for _, s := range snap.Swaps {
		if s.ListingID == listingID && s.RequesterID == requesterID && s.Status.Active() {
			return nil, errors.ErrDuplicateRequest
		}
	}

	message = strings.TrimSpace(message)
	if message == "" {
		message = DefaultMessage
	}
	snap.Swaps = append(snap.Swaps, model.Swap{
		ID:          snap.AllocSwapID(),
		ListingID:   listingID,
		RequesterID: requesterID,
		Status:      model.SwapStatusPending,
		Message:     message,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	return &snap.Swaps[len(snap.Swaps)-1], nil
}

// Accept moves a PENDING swap to ACCEPTED and takes the listing off the market.
func Accept(snap *model.Snapshot, actorID, swapID int64, now time.Time) (*model.Swap, error) {
	s, listing, err := resolve(snap, swapID)
	if err != nil {
		return nil, err
	}
	if listing.OwnerID != actorID {
		return nil, errors.ErrNotListingOwner
	}
	if err := transition(s, model.SwapStatusAccepted, now); err != nil {
		return nil, err
	}
	listing.Available = false
	return s, nil
}

// Decline moves a PENDING swap to DECLINED.
func Decline(snap *model.Snapshot, actorID, swapID int64, now time.Time) (*model.Swap, error) {
	s, listing, err := resolve(snap, swapID)
	if err != nil {
		return nil, err
	}
	if listing.OwnerID != actorID {
		return nil, errors.ErrNotListingOwner
	}
	if err := transition(s, model.SwapStatusDeclined, now); err != nil {
		return nil, err
	}
	return s, nil
}

// Complete moves an ACCEPTED swap to COMPLETED. Either participant may complete.
func Complete(snap *model.Snapshot, actorID, swapID int64, now time.Time) (*model.Swap, error) {
	s, listing, err := resolve(snap, swapID)
	if err != nil {
		return nil, err
	}
	if listing.OwnerID != actorID && s.RequesterID != actorID {
		return nil, errors.ErrNotParticipant
	}
	if err := transition(s, model.SwapStatusCompleted, now); err != nil {
		return nil, err
	}
	return s, nil
}

// Cancel moves an ACCEPTED swap to CANCELLED. Only the requester may cancel.
// The listing stays unavailable.
func Cancel(snap *model.Snapshot, actorID, swapID int64, now time.Time) (*model.Swap, error) {
	s, _, err := resolve(snap, swapID)
	if err != nil {
		return nil, err
	}
	if s.RequesterID != actorID {
		return nil, errors.ErrNotRequester
	}
	if err := transition(s, model.SwapStatusCancelled, now); err != nil {
		return nil, err
	}
	return s, nil
}

func resolve(snap *model.Snapshot, swapID int64) (*model.Swap, *model.Listing, error) {
	s, ok := query.FindByID(snap.Swaps, swapID)
	if !ok {
		return nil, nil, errors.ErrSwapNotFound
	}
	listing, ok := query.FindByID(snap.Listings, s.ListingID)
	if !ok {
		return nil, nil, errors.ErrListingNotFound
	}
	return s, listing, nil
}

func transition(s *model.Swap, to model.SwapStatus, now time.Time) error {
	if !CanTransition(s.Status, to) {
		return errors.ErrInvalidTransition
	}
	s.Status = to
	s.UpdatedAt = now
	return nil
}
