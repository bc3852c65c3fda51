package listing

import (
	"strings"
	"time"

	"bookswap/internal/errors"
	"bookswap/internal/model"
	"bookswap/internal/query"
)

// Form is the editable content of a listing. AvailableSet and ImagesSet distinguish an omitted field
// (keep the current value on edit) from an explicit one. A new listing is available unless told otherwise.
type Form struct {
	Title        string
	Author       string
	ISBN         string
	Condition    model.Condition
	Notes        string
	Available    bool
	AvailableSet bool
	Images       []string
	ImagesSet    bool
}

func (f *Form) normalize() error {
	f.Title = strings.TrimSpace(f.Title)
	f.Author = strings.TrimSpace(f.Author)
	f.ISBN = strings.TrimSpace(f.ISBN)
	f.Notes = strings.TrimSpace(f.Notes)
	if f.Title == "" || f.Author == "" {
		return errors.ErrTitleAuthorRequired
	}
	if !f.Condition.Valid() {
		return errors.ErrInvalidCondition
	}
	if len(f.Images) > model.MaxImages {
		return errors.ErrTooManyImages
	}
	return nil
}

// UpsertBook returns the book with exactly this title and author, creating it when absent.
// An existing book keeps its original ISBN.
func UpsertBook(snap *model.Snapshot, title, author, isbn string, now time.Time) *model.Book {
	if b, ok := query.FindBookByTitleAuthor(snap, title, author); ok {
		return b
	}
	snap.Books = append(snap.Books, model.Book{
		ID:        snap.AllocBookID(),
		Title:     title,
		Author:    author,
		ISBN:      isbn,
		CreatedAt: now,
	})
	return &snap.Books[len(snap.Books)-1]
}

// Save creates a listing for ownerID when listingID is 0, otherwise edits the owner's listing.
func Save(snap *model.Snapshot, ownerID, listingID int64, form Form, now time.Time) (*model.Listing, error) {
	if err := form.normalize(); err != nil {
		return nil, err
	}

	var existing *model.Listing
	if listingID != 0 {
		l, ok := query.FindByID(snap.Listings, listingID)
		if !ok {
			return nil, errors.ErrListingNotFound
		}
		if l.OwnerID != ownerID {
			return nil, errors.ErrNotListingOwner
		}
		existing = l
	}

	bookID := UpsertBook(snap, form.Title, form.Author, form.ISBN, now).ID

	if existing != nil {
		existing.BookID = bookID
		existing.Condition = form.Condition
		existing.Notes = form.Notes
		if form.AvailableSet {
			existing.Available = form.Available
		}
		if form.ImagesSet {
			existing.Images = cloneImages(form.Images)
		}
		return existing, nil
	}

	available := true
	if form.AvailableSet {
		available = form.Available
	}
	snap.Listings = append(snap.Listings, model.Listing{
		ID:        snap.AllocListingID(),
		BookID:    bookID,
		OwnerID:   ownerID,
		Condition: form.Condition,
		Notes:     form.Notes,
		Available: available,
		Images:    cloneImages(form.Images),
		CreatedAt: now,
	})
	return &snap.Listings[len(snap.Listings)-1], nil
}

// Delete removes the owner's listing. Swaps that referenced it are kept.
func Delete(snap *model.Snapshot, ownerID, listingID int64) error {
	for i, l := range snap.Listings {
		if l.ID != listingID {
			continue
		}
		if l.OwnerID != ownerID {
			return errors.ErrNotListingOwner
		}
		snap.Listings = append(snap.Listings[:i], snap.Listings[i+1:]...)
		return nil
	}
	return errors.ErrListingNotFound
}

func cloneImages(images []string) []string {
	out := make([]string, len(images))
	copy(out, images)
	return out
}
