package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookswap/internal/auth"
	domain "bookswap/internal/errors"
	"bookswap/internal/model"
	"bookswap/internal/query"
	"bookswap/internal/store"
)

var (
	// ErrInvalidRefreshToken is returned when refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

// AuthService handles sign-in and session tokens.
type AuthService interface {
	Login(ctx context.Context, email, displayName string) (accessToken, refreshToken string, user *model.User, err error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, access *auth.Claims, refreshToken string) error
}

type authService struct {
	store      *store.Store
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(st *store.Store, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		store:      st,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Login finds the user by email, creating one on first sight, and marks them as the current user.
// There is no password: the email is the whole credential.
func (s *authService) Login(ctx context.Context, email, displayName string) (string, string, *model.User, error) {
	email = strings.TrimSpace(email)
	displayName = strings.TrimSpace(displayName)
	if email == "" {
		return "", "", nil, domain.ErrEmailRequired
	}

	var user model.User
	err := s.store.Mutate(ctx, func(snap *model.Snapshot, now time.Time) error {
		u := signIn(snap, email, displayName, now)
		id := u.ID
		snap.CurrentUserID = &id
		user = *u
		return nil
	})
	if err != nil {
		return "", "", nil, fmt.Errorf("login: %w", err)
	}

	_, accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.ID, user.Email, auth.RefreshTokenExpiry); err != nil {
		return "", "", nil, fmt.Errorf("store refresh token: %w", err)
	}

	return accessToken, refreshToken, &user, nil
}

func signIn(snap *model.Snapshot, email, displayName string, now time.Time) *model.User {
	if u, ok := query.FindUserByEmail(snap, email); ok {
		if displayName != "" {
			u.DisplayName = displayName
		}
		return u
	}
	if displayName == "" {
		displayName, _, _ = strings.Cut(email, "@")
	}
	snap.Users = append(snap.Users, model.User{
		ID:          snap.NextUserID(),
		Email:       email,
		DisplayName: displayName,
		Role:        model.RoleUser,
		CreatedAt:   now,
	})
	return &snap.Users[len(snap.Users)-1]
}

// RefreshToken validates a refresh token and returns a new access token.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil || claims.Type != auth.TokenTypeRefresh {
		return "", ErrInvalidRefreshToken
	}

	storedUserID, storedEmail, err := s.tokenStore.GetRefreshToken(ctx, claims.ID)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}
	if storedUserID != claims.UserID || storedEmail != claims.Email {
		return "", ErrInvalidRefreshToken
	}

	_, accessToken, err := s.jwtService.GenerateAccessToken(claims.UserID, claims.Email)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout revokes both tokens of the session and clears the current user when it is the caller.
func (s *authService) Logout(ctx context.Context, access *auth.Claims, refreshToken string) error {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil || claims.Type != auth.TokenTypeRefresh || claims.UserID != access.UserID {
		return ErrInvalidRefreshToken
	}

	if err := s.tokenStore.DeleteRefreshToken(ctx, claims.ID); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	if err := s.tokenStore.BlacklistAccessToken(ctx, access.ID, s.jwtService.RemainingTTL(access)); err != nil {
		return fmt.Errorf("blacklist access token: %w", err)
	}

	return s.store.Mutate(ctx, func(snap *model.Snapshot, _ time.Time) error {
		if snap.CurrentUserID != nil && *snap.CurrentUserID == access.UserID {
			snap.CurrentUserID = nil
		}
		return nil
	})
}
