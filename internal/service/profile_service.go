package service

import (
	"context"
	"strings"
	"time"

	"bookswap/internal/errors"
	"bookswap/internal/model"
	"bookswap/internal/query"
	"bookswap/internal/store"
)

// ProfileUpdate carries the editable profile fields. A blank DisplayName keeps the current one.
type ProfileUpdate struct {
	DisplayName     string
	PublicContact   bool
	PreferredMethod model.ContactMethod
	ContactEmail    string
	ContactPhone    string
}

// ProfileService reads and edits the caller's own profile.
type ProfileService interface {
	GetProfile(ctx context.Context, userID int64) (*model.User, error)
	UpdateProfile(ctx context.Context, userID int64, update ProfileUpdate) (*model.User, error)
}

type profileService struct {
	store *store.Store
}

// NewProfileService builds a ProfileService over the marketplace store.
func NewProfileService(st *store.Store) ProfileService {
	return &profileService{store: st}
}

func (s *profileService) GetProfile(_ context.Context, userID int64) (*model.User, error) {
	var (
		user model.User
		ok   bool
	)
	s.store.View(func(snap *model.Snapshot) {
		var u *model.User
		if u, ok = query.FindByID(snap.Users, userID); ok {
			user = *u
		}
	})
	if !ok {
		return nil, errors.ErrUserNotFound
	}
	return &user, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID int64, update ProfileUpdate) (*model.User, error) {
	method := model.ContactMethod(strings.ToUpper(strings.TrimSpace(string(update.PreferredMethod))))
	if !method.Valid() {
		return nil, errors.ErrInvalidContactMethod
	}

	var user model.User
	err := s.store.Mutate(ctx, func(snap *model.Snapshot, _ time.Time) error {
		u, ok := query.FindByID(snap.Users, userID)
		if !ok {
			return errors.ErrUserNotFound
		}
		if name := strings.TrimSpace(update.DisplayName); name != "" {
			u.DisplayName = name
		}
		u.PublicContact = update.PublicContact
		u.PreferredMethod = method
		u.ContactEmail = strings.TrimSpace(update.ContactEmail)
		u.ContactPhone = strings.TrimSpace(update.ContactPhone)
		user = *u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
