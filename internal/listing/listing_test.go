package listing

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookswap/internal/errors"
	"bookswap/internal/model"
	"bookswap/internal/query"
)

var now = time.Date(2025, 2, 2, 10, 0, 0, 0, time.UTC)

func baseSnapshot() *model.Snapshot {
	return &model.Snapshot{
		Users: []model.User{{ID: 1}, {ID: 2}},
		Books: []model.Book{{ID: 1, Title: "Dune", Author: "Frank Herbert", ISBN: "9780441172719"}},
		Listings: []model.Listing{
			{ID: 1, BookID: 1, OwnerID: 1, Condition: model.ConditionUsed, Available: true, Images: []string{"a", "b"}},
		},
		NextID: model.NextID{Listing: 2, Swap: 1, Book: 2},
	}
}

func TestUpsertBook(t *testing.T) {
	snap := baseSnapshot()

	same := UpsertBook(snap, "Dune", "Frank Herbert", "other-isbn", now)
	assert.Equal(t, int64(1), same.ID)
	assert.Equal(t, "9780441172719", same.ISBN)
	assert.Len(t, snap.Books, 1)

	caseDiffers := UpsertBook(snap, "dune", "Frank Herbert", "", now)
	assert.Equal(t, int64(2), caseDiffers.ID, "matching is case-sensitive")
	assert.Equal(t, int64(3), snap.NextID.Book)
	assert.Equal(t, now, caseDiffers.CreatedAt)
}

func TestSaveValidation(t *testing.T) {
	tests := []struct {
		name    string
		form    Form
		wantErr error
	}{
		{"blank title", Form{Title: "  ", Author: "A", Condition: model.ConditionNew}, errors.ErrTitleAuthorRequired},
		{"blank author", Form{Title: "T", Author: "", Condition: model.ConditionNew}, errors.ErrTitleAuthorRequired},
		{"unknown condition", Form{Title: "T", Author: "A", Condition: "PRISTINE"}, errors.ErrInvalidCondition},
		{"lowercase condition", Form{Title: "T", Author: "A", Condition: "good"}, errors.ErrInvalidCondition},
		{"four images", Form{Title: "T", Author: "A", Condition: model.ConditionNew, Images: []string{"1", "2", "3", "4"}, ImagesSet: true}, errors.ErrTooManyImages},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := baseSnapshot()
			_, err := Save(snap, 1, 0, tt.form, now)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, errors.KindValidation, errors.KindOf(err))
			assert.Len(t, snap.Listings, 1)
			assert.Len(t, snap.Books, 1)
		})
	}
}

func TestSaveCreate(t *testing.T) {
	snap := baseSnapshot()
	images := []string{"x", "y", "z"}

	l, err := Save(snap, 2, 0, Form{
		Title: "  The Dispossessed ", Author: "Ursula K. Le Guin", ISBN: " 123 ", Condition: model.ConditionNew,
		Notes: "  signed ", Available: true, Images: images, ImagesSet: true,
	}, now)
	require.NoError(t, err)

	assert.Equal(t, int64(2), l.ID)
	assert.Equal(t, int64(2), l.BookID)
	assert.Equal(t, int64(2), l.OwnerID)
	assert.Equal(t, "signed", l.Notes)
	assert.Equal(t, images, l.Images)
	assert.Equal(t, now, l.CreatedAt)
	assert.Equal(t, "123", snap.Books[1].ISBN)
	assert.Equal(t, "The Dispossessed", snap.Books[1].Title)

	images[0] = "mutated"
	assert.Equal(t, "x", snap.Listings[1].Images[0], "stored images must not alias the caller's slice")
}

func TestSaveEdit(t *testing.T) {
	t.Run("keeps images and availability when omitted", func(t *testing.T) {
		snap := baseSnapshot()
		snap.Listings[0].Available = false
		l, err := Save(snap, 1, 1, Form{Title: "Dune", Author: "Frank Herbert", Condition: model.ConditionWorn}, now)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, l.Images)
		assert.Equal(t, model.ConditionWorn, l.Condition)
		assert.False(t, l.Available)
		assert.Len(t, snap.Listings, 1)
	})

	t.Run("explicit availability replaces", func(t *testing.T) {
		snap := baseSnapshot()
		l, err := Save(snap, 1, 1, Form{
			Title: "Dune", Author: "Frank Herbert", Condition: model.ConditionUsed, Available: false, AvailableSet: true,
		}, now)
		require.NoError(t, err)
		assert.False(t, l.Available)
	})

	t.Run("replaces images when supplied", func(t *testing.T) {
		snap := baseSnapshot()
		l, err := Save(snap, 1, 1, Form{
			Title: "Dune", Author: "Frank Herbert", Condition: model.ConditionWorn, Images: []string{"c"}, ImagesSet: true,
		}, now)
		require.NoError(t, err)
		assert.Equal(t, []string{"c"}, l.Images)
	})

	t.Run("moves to another book", func(t *testing.T) {
		snap := baseSnapshot()
		l, err := Save(snap, 1, 1, Form{Title: "Children of Dune", Author: "Frank Herbert", Condition: model.ConditionGood}, now)
		require.NoError(t, err)
		assert.Equal(t, int64(2), l.BookID)
		assert.Len(t, snap.Books, 2)
	})

	t.Run("non owner", func(t *testing.T) {
		snap := baseSnapshot()
		_, err := Save(snap, 2, 1, Form{Title: "New", Author: "Book", Condition: model.ConditionGood}, now)
		assert.ErrorIs(t, err, errors.ErrNotListingOwner)
		assert.Len(t, snap.Books, 1, "no book is created for a rejected edit")
	})

	t.Run("missing listing", func(t *testing.T) {
		snap := baseSnapshot()
		_, err := Save(snap, 1, 9, Form{Title: "Dune", Author: "Frank Herbert", Condition: model.ConditionGood}, now)
		assert.ErrorIs(t, err, errors.ErrListingNotFound)
	})
}

func TestSaveCreateAvailability(t *testing.T) {
	snap := baseSnapshot()

	l, err := Save(snap, 2, 0, Form{Title: "Emma", Author: "Jane Austen", Condition: model.ConditionGood}, now)
	require.NoError(t, err)
	assert.True(t, l.Available, "new listings are available by default")

	l, err = Save(snap, 2, 0, Form{
		Title: "Emma", Author: "Jane Austen", Condition: model.ConditionGood, AvailableSet: true,
	}, now)
	require.NoError(t, err)
	assert.False(t, l.Available)
}

func TestDelete(t *testing.T) {
	snap := baseSnapshot()
	snap.Swaps = []model.Swap{{ID: 1, ListingID: 1, RequesterID: 2, Status: model.SwapStatusPending}}

	assert.ErrorIs(t, Delete(snap, 2, 1), errors.ErrNotListingOwner)
	assert.ErrorIs(t, Delete(snap, 1, 5), errors.ErrListingNotFound)
	require.NoError(t, Delete(snap, 1, 1))

	assert.Empty(t, snap.Listings)
	assert.Len(t, snap.Swaps, 1)
}

func TestBookUpsertNeverDuplicates(t *testing.T) {
	properties := gopter.NewProperties(nil)

	titles := []string{"Dune", "Emma", "Beloved", "Ubik"}
	authors := []string{"Frank Herbert", "Jane Austen", "Toni Morrison"}

	properties.Property("each (title, author) pair maps to exactly one book", prop.ForAll(
		func(ts []int, as []int) bool {
			snap := baseSnapshot()
			for i := range ts {
				form := Form{Title: titles[ts[i]], Author: authors[as[i]], Condition: model.ConditionGood}
				if _, err := Save(snap, 1, 0, form, now); err != nil {
					return false
				}
			}
			seen := make(map[[2]string]bool)
			for _, b := range snap.Books {
				key := [2]string{b.Title, b.Author}
				if seen[key] {
					return false
				}
				seen[key] = true
			}
			for _, l := range snap.Listings {
				if _, ok := query.FindByID(snap.Books, l.BookID); !ok {
					return false
				}
			}
			return len(snap.Books) <= len(titles)*len(authors)
		},
		gen.SliceOfN(20, gen.IntRange(0, len(titles)-1)),
		gen.SliceOfN(20, gen.IntRange(0, len(authors)-1)),
	))

	properties.TestingRun(t)
}
