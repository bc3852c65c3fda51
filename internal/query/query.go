// Package query holds read-only derivations over a marketplace snapshot.
// Nothing here mutates the snapshot; a missing id is reported with ok=false, never a panic.
package query

import (
	"sort"

	"github.com/shopspring/decimal"

	"bookswap/internal/model"
)

// FindByID returns a pointer into items for the entity with the given id.
func FindByID[T model.Entity](items []T, id int64) (*T, bool) {
	for i := range items {
		if items[i].EntityID() == id {
			return &items[i], true
		}
	}
	return nil, false
}

// FindUserByEmail looks a user up by exact email.
func FindUserByEmail(snap *model.Snapshot, email string) (*model.User, bool) {
	for i := range snap.Users {
		if snap.Users[i].Email == email {
			return &snap.Users[i], true
		}
	}
	return nil, false
}

// FindBookByTitleAuthor looks a book up by exact, case-sensitive title and author.
func FindBookByTitleAuthor(snap *model.Snapshot, title, author string) (*model.Book, bool) {
	for i := range snap.Books {
		if snap.Books[i].Title == title && snap.Books[i].Author == author {
			return &snap.Books[i], true
		}
	}
	return nil, false
}

// FindRating returns the rating userID gave bookID.
func FindRating(snap *model.Snapshot, userID, bookID int64) (*model.Rating, bool) {
	for i := range snap.Ratings {
		if snap.Ratings[i].UserID == userID && snap.Ratings[i].BookID == bookID {
			return &snap.Ratings[i], true
		}
	}
	return nil, false
}

// Averages are the per-dimension rating means of one book.
type Averages struct {
	Difficulty float64 `json:"difficulty"`
	Emotion    float64 `json:"emotion"`
	Enjoyment  float64 `json:"enjoyment"`
	Count      int     `json:"count"`
}

// RatingAverage computes the mean of each rating dimension for bookID, rounded half-up to one decimal.
func RatingAverage(snap *model.Snapshot, bookID int64) Averages {
	var difficulty, emotion, enjoyment int64
	count := 0
	for _, r := range snap.Ratings {
		if r.BookID != bookID {
			continue
		}
		difficulty += int64(r.Difficulty)
		emotion += int64(r.Emotion)
		enjoyment += int64(r.Enjoyment)
		count++
	}
	if count == 0 {
		return Averages{}
	}
	return Averages{
		Difficulty: mean(difficulty, count),
		Emotion:    mean(emotion, count),
		Enjoyment:  mean(enjoyment, count),
		Count:      count,
	}
}

func mean(sum int64, count int) float64 {
	avg := decimal.NewFromInt(sum).Div(decimal.NewFromInt(int64(count)))
	return avg.Round(1).InexactFloat64()
}

// Inbox returns the swaps whose listing is owned by userID.
func Inbox(snap *model.Snapshot, userID int64) []model.Swap {
	owned := make(map[int64]struct{})
	for _, l := range snap.Listings {
		if l.OwnerID == userID {
			owned[l.ID] = struct{}{}
		}
	}
	var out []model.Swap
	for _, s := range snap.Swaps {
		if _, ok := owned[s.ListingID]; ok {
			out = append(out, s)
		}
	}
	return out
}

// Outbox returns the swaps requested by userID.
func Outbox(snap *model.Snapshot, userID int64) []model.Swap {
	var out []model.Swap
	for _, s := range snap.Swaps {
		if s.RequesterID == userID {
			out = append(out, s)
		}
	}
	return out
}

// Browse returns the listings currently available for swapping.
func Browse(snap *model.Snapshot) []model.Listing {
	var out []model.Listing
	for _, l := range snap.Listings {
		if l.Available {
			out = append(out, l)
		}
	}
	return out
}

// Library returns every listing owned by ownerID, available or not.
func Library(snap *model.Snapshot, ownerID int64) []model.Listing {
	var out []model.Listing
	for _, l := range snap.Listings {
		if l.OwnerID == ownerID {
			out = append(out, l)
		}
	}
	return out
}

// AcceptedBetween reports whether requesterID holds an ACCEPTED swap on listingID.
func AcceptedBetween(snap *model.Snapshot, listingID, requesterID int64) bool {
	for _, s := range snap.Swaps {
		if s.ListingID == listingID && s.RequesterID == requesterID && s.Status == model.SwapStatusAccepted {
			return true
		}
	}
	return false
}

// NewestFirst sorts swaps in place by creation time, newest first, ties broken by id.
func NewestFirst(swaps []model.Swap) []model.Swap {
	sort.SliceStable(swaps, func(i, j int) bool {
		if !swaps[i].CreatedAt.Equal(swaps[j].CreatedAt) {
			return swaps[i].CreatedAt.After(swaps[j].CreatedAt)
		}
		return swaps[i].ID > swaps[j].ID
	})
	return swaps
}

// NewestListingsFirst sorts listings in place by creation time, newest first, ties broken by id.
func NewestListingsFirst(listings []model.Listing) []model.Listing {
	sort.SliceStable(listings, func(i, j int) bool {
		if !listings[i].CreatedAt.Equal(listings[j].CreatedAt) {
			return listings[i].CreatedAt.After(listings[j].CreatedAt)
		}
		return listings[i].ID > listings[j].ID
	})
	return listings
}
