package rating

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

var (
	created = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	updated = created.Add(24 * time.Hour)
)

func snapshot() *model.Snapshot {
	return &model.Snapshot{Books: []model.Book{{ID: 1, Title: "Dune", Author: "Frank Herbert"}}}
}

func TestSave(t *testing.T) {
	snap := snapshot()

	r, err := Save(snap, 1, 1, Scores{Difficulty: 2, Emotion: 3, Enjoyment: 4}, created)
	require.NoError(t, err)
	assert.Equal(t, created, r.CreatedAt)
	assert.Equal(t, created, r.UpdatedAt)

	r, err = Save(snap, 1, 1, Scores{Difficulty: 5, Emotion: 5, Enjoyment: 1}, updated)
	require.NoError(t, err)
	require.Len(t, snap.Ratings, 1)
	assert.Equal(t, 5, r.Difficulty)
	assert.Equal(t, 1, r.Enjoyment)
	assert.Equal(t, created, r.CreatedAt)
	assert.Equal(t, updated, r.UpdatedAt)

	_, err = Save(snap, 2, 1, Scores{Difficulty: 1, Emotion: 1, Enjoyment: 1}, updated)
	require.NoError(t, err)
	assert.Len(t, snap.Ratings, 2)
}

func TestSaveErrors(t *testing.T) {
	tests := []struct {
		name    string
		bookID  int64
		scores  Scores
		wantErr error
	}{
		{"zero score", 1, Scores{Difficulty: 0, Emotion: 3, Enjoyment: 3}, errors.ErrInvalidScore},
		{"score above five", 1, Scores{Difficulty: 3, Emotion: 6, Enjoyment: 3}, errors.ErrInvalidScore},
		{"negative score", 1, Scores{Difficulty: 3, Emotion: 3, Enjoyment: -1}, errors.ErrInvalidScore},
		{"unknown book", 42, Scores{Difficulty: 3, Emotion: 3, Enjoyment: 3}, errors.ErrBookNotFound},
		{"unknown book wins over bad score", 42, Scores{}, errors.ErrBookNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := snapshot()
			r, err := Save(snap, 1, tt.bookID, tt.scores, created)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, r)
			assert.Empty(t, snap.Ratings)
		})
	}
}

func TestOneRatingPerUserAndBook(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("re-rating replaces and averages stay in range", prop.ForAll(
		func(users []int, score int) bool {
			snap := snapshot()
			distinct := make(map[int64]bool)
			for _, u := range users {
				id := int64(u)
				if _, err := Save(snap, id, 1, Scores{Difficulty: score, Emotion: score, Enjoyment: score}, created); err != nil {
					return false
				}
				distinct[id] = true
			}
			avg := query.RatingAverage(snap, 1)
			if len(snap.Ratings) != len(distinct) || avg.Count != len(distinct) {
				return false
			}
			if avg.Count == 0 {
				return true
			}
			return avg.Difficulty == float64(score) && avg.Enjoyment >= model.MinScore && avg.Enjoyment <= model.MaxScore
		},
		gen.SliceOf(gen.IntRange(1, 5)),
		gen.IntRange(model.MinScore, model.MaxScore),
	))

	properties.TestingRun(t)
}
