package service

import (
	"context"
	"time"

	"bookswap/internal/errors"
	"bookswap/internal/model"
	"bookswap/internal/query"
	"bookswap/internal/rating"
	"bookswap/internal/store"
)

// RatingService records per-user book ratings and reports their averages.
type RatingService interface {
	SaveRating(ctx context.Context, userID, bookID int64, scores rating.Scores) (query.Averages, error)
	Averages(ctx context.Context, bookID int64) (query.Averages, error)
}

type ratingService struct {
	store *store.Store
}

// NewRatingService builds a RatingService over the marketplace store.
func NewRatingService(st *store.Store) RatingService {
	return &ratingService{store: st}
}

// SaveRating upserts the rating and returns the book's averages including it.
func (s *ratingService) SaveRating(ctx context.Context, userID, bookID int64, scores rating.Scores) (query.Averages, error) {
	var avg query.Averages
	err := s.store.Mutate(ctx, func(snap *model.Snapshot, now time.Time) error {
		if _, err := rating.Save(snap, userID, bookID, scores, now); err != nil {
			return err
		}
		avg = query.RatingAverage(snap, bookID)
		return nil
	})
	return avg, err
}

func (s *ratingService) Averages(_ context.Context, bookID int64) (query.Averages, error) {
	var (
		avg   query.Averages
		found bool
	)
	s.store.View(func(snap *model.Snapshot) {
		if _, found = query.FindByID(snap.Books, bookID); found {
			avg = query.RatingAverage(snap, bookID)
		}
	})
	if !found {
		return query.Averages{}, errors.ErrBookNotFound
	}
	return avg, nil
}
