package rating

import (
	"time"

	"bookswap/internal/errors"
	"bookswap/internal/model"
	"bookswap/internal/query"
)

// Scores are the three dimensions a reader rates a book on.
type Scores struct {
	Difficulty int
	Emotion    int
	Enjoyment  int
}

func (s Scores) valid() bool {
	for _, v := range []int{s.Difficulty, s.Emotion, s.Enjoyment} {
		if v < model.MinScore || v > model.MaxScore {
			return false
		}
	}
	return true
}

// Save records userID's scores for bookID, replacing an earlier rating by the same user.
// The first rating's CreatedAt is kept.
func Save(snap *model.Snapshot, userID, bookID int64, scores Scores, now time.Time) (*model.Rating, error) {
	if _, ok := query.FindByID(snap.Books, bookID); !ok {
		return nil, errors.ErrBookNotFound
	}
	if !scores.valid() {
		return nil, errors.ErrInvalidScore
	}

	if r, ok := query.FindRating(snap, userID, bookID); ok {
		r.Difficulty = scores.Difficulty
		r.Emotion = scores.Emotion
		r.Enjoyment = scores.Enjoyment
		r.UpdatedAt = now
		return r, nil
	}

	snap.Ratings = append(snap.Ratings, model.Rating{
		UserID:     userID,
		BookID:     bookID,
		Difficulty: scores.Difficulty,
		Emotion:    scores.Emotion,
		Enjoyment:  scores.Enjoyment,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	return &snap.Ratings[len(snap.Ratings)-1], nil
}
