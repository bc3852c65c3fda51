package service

import (
	"bookswap/internal/contact"
	"bookswap/internal/model"
	"bookswap/internal/query"
)

// Placeholder labels for references that no longer resolve.
const (
	UnknownBookTitle = "Unknown book"
	UnknownUserName  = "Unknown user"
)

// UserSummary is what other members see of a user besides the contact policy outcome.
type UserSummary struct {
	ID          int64
	DisplayName string
}

// ListingView is a listing joined with its book and owner.
type ListingView struct {
	Listing model.Listing
	Book    model.Book
	Owner   UserSummary
}

// ListingDetail adds the owner's contact as seen by the viewer and the book's rating averages.
type ListingDetail struct {
	ListingView
	OwnerContact contact.Contact
	Ratings      query.Averages
	MyRating     *model.Rating
}

// SwapView is a swap joined with its listing, book and both participants.
// ListingMissing is set when the listing was deleted after the request was made.
type SwapView struct {
	Swap           model.Swap
	Listing        model.Listing
	ListingMissing bool
	Book           model.Book
	Owner          UserSummary
	Requester      UserSummary
}

// SwapDetail adds each participant's contact, each evaluated on its own.
type SwapDetail struct {
	SwapView
	OwnerContact     contact.Contact
	RequesterContact contact.Contact
}

func bookOf(snap *model.Snapshot, id int64) model.Book {
	if b, ok := query.FindByID(snap.Books, id); ok {
		return *b
	}
	return model.Book{ID: id, Title: UnknownBookTitle}
}

func userOf(snap *model.Snapshot, id int64) model.User {
	if u, ok := query.FindByID(snap.Users, id); ok {
		return *u
	}
	return model.User{ID: id, DisplayName: UnknownUserName}
}

func summarize(u model.User) UserSummary {
	return UserSummary{ID: u.ID, DisplayName: u.DisplayName}
}

func listingView(snap *model.Snapshot, l model.Listing) ListingView {
	return ListingView{
		Listing: l,
		Book:    bookOf(snap, l.BookID),
		Owner:   summarize(userOf(snap, l.OwnerID)),
	}
}

func listingViews(snap *model.Snapshot, listings []model.Listing) []ListingView {
	query.NewestListingsFirst(listings)
	out := make([]ListingView, 0, len(listings))
	for _, l := range listings {
		out = append(out, listingView(snap, l))
	}
	return out
}

func swapView(snap *model.Snapshot, s model.Swap) SwapView {
	v := SwapView{
		Swap:      s,
		Requester: summarize(userOf(snap, s.RequesterID)),
	}
	l, ok := query.FindByID(snap.Listings, s.ListingID)
	if !ok {
		v.Listing = model.Listing{ID: s.ListingID}
		v.ListingMissing = true
		v.Book = model.Book{Title: UnknownBookTitle}
		v.Owner = UserSummary{DisplayName: UnknownUserName}
		return v
	}
	v.Listing = *l
	v.Book = bookOf(snap, l.BookID)
	v.Owner = summarize(userOf(snap, l.OwnerID))
	return v
}

func swapViews(snap *model.Snapshot, swaps []model.Swap) []SwapView {
	query.NewestFirst(swaps)
	out := make([]SwapView, 0, len(swaps))
	for _, s := range swaps {
		out = append(out, swapView(snap, s))
	}
	return out
}
