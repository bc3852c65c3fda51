package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bookswap/internal/auth"
	"bookswap/internal/errors"
	"bookswap/internal/model"
)

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID int64, email string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, email, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (int64, string, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(int64), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func (m *MockTokenStore) BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsAccessTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		displayName   string
		setupMock     func(*MockTokenStore)
		expectedError error
		expectedID    int64
		expectedName  string
		expectedUsers int
	}{
		{
			name:        "new user is created with name from email",
			email:       "  carol@example.com ",
			displayName: "",
			setupMock: func(m *MockTokenStore) {
				m.On("StoreRefreshToken", mock.Anything, mock.Anything, carol, "carol@example.com", auth.RefreshTokenExpiry).Return(nil)
			},
			expectedID:    carol,
			expectedName:  "carol",
			expectedUsers: 3,
		},
		{
			name:        "existing user gets the supplied display name",
			email:       "bob@example.com",
			displayName: "Robert",
			setupMock: func(m *MockTokenStore) {
				m.On("StoreRefreshToken", mock.Anything, mock.Anything, bob, "bob@example.com", auth.RefreshTokenExpiry).Return(nil)
			},
			expectedID:    bob,
			expectedName:  "Robert",
			expectedUsers: 2,
		},
		{
			name:        "existing user keeps name when none supplied",
			email:       "alice@example.com",
			displayName: "   ",
			setupMock: func(m *MockTokenStore) {
				m.On("StoreRefreshToken", mock.Anything, mock.Anything, alice, "alice@example.com", auth.RefreshTokenExpiry).Return(nil)
			},
			expectedID:    alice,
			expectedName:  "Alice",
			expectedUsers: 2,
		},
		{
			name:          "blank email is rejected",
			email:         "   ",
			setupMock:     func(m *MockTokenStore) {},
			expectedError: errors.ErrEmailRequired,
			expectedUsers: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, _ := newTestStore(t)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(mockTokenStore)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(st, jwtService, mockTokenStore)

			accessToken, refreshToken, user, err := service.Login(context.Background(), tt.email, tt.displayName)

			snap := st.Snapshot()
			assert.Len(t, snap.Users, tt.expectedUsers)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, accessToken)
				assert.Empty(t, refreshToken)
				assert.Nil(t, user)
				assert.Nil(t, snap.CurrentUserID)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				require.NotNil(t, user)
				assert.Equal(t, tt.expectedID, user.ID)
				assert.Equal(t, tt.expectedName, user.DisplayName)
				assert.Equal(t, model.RoleUser, user.Role)
				require.NotNil(t, snap.CurrentUserID)
				assert.Equal(t, tt.expectedID, *snap.CurrentUserID)

				claims, err := jwtService.ValidateToken(accessToken)
				require.NoError(t, err)
				assert.Equal(t, tt.expectedID, claims.UserID)
			}

			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_NewUserDefaults(t *testing.T) {
	st, _ := newTestStore(t)
	mockTokenStore := new(MockTokenStore)
	mockTokenStore.On("StoreRefreshToken", mock.Anything, mock.Anything, carol, "carol@example.com", mock.Anything).Return(nil)

	service := NewAuthService(st, auth.NewJWTService("test-secret"), mockTokenStore)
	_, _, user, err := service.Login(context.Background(), "carol@example.com", "Carol")
	require.NoError(t, err)

	assert.False(t, user.PublicContact)
	assert.Equal(t, model.ContactNone, user.PreferredMethod)
	assert.Empty(t, user.ContactEmail)
	assert.Empty(t, user.ContactPhone)
}

func TestAuthService_RefreshToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(alice, "alice@example.com")
	require.NoError(t, err)
	_, accessOnly, err := jwtService.GenerateAccessToken(alice, "alice@example.com")
	require.NoError(t, err)

	tests := []struct {
		name          string
		token         string
		setupMock     func(*MockTokenStore)
		expectedError error
	}{
		{
			name:  "stored token issues a new access token",
			token: refreshToken,
			setupMock: func(m *MockTokenStore) {
				m.On("GetRefreshToken", mock.Anything, tokenID).Return(alice, "alice@example.com", nil)
			},
		},
		{
			name:  "revoked token is rejected",
			token: refreshToken,
			setupMock: func(m *MockTokenStore) {
				m.On("GetRefreshToken", mock.Anything, tokenID).Return(int64(0), "", assert.AnError)
			},
			expectedError: ErrInvalidRefreshToken,
		},
		{
			name:  "token for another user is rejected",
			token: refreshToken,
			setupMock: func(m *MockTokenStore) {
				m.On("GetRefreshToken", mock.Anything, tokenID).Return(bob, "bob@example.com", nil)
			},
			expectedError: ErrInvalidRefreshToken,
		},
		{
			name:          "access token is rejected",
			token:         accessOnly,
			setupMock:     func(m *MockTokenStore) {},
			expectedError: ErrInvalidRefreshToken,
		},
		{
			name:          "garbage is rejected",
			token:         "not-a-jwt",
			setupMock:     func(m *MockTokenStore) {},
			expectedError: ErrInvalidRefreshToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, _ := newTestStore(t)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(mockTokenStore)

			service := NewAuthService(st, jwtService, mockTokenStore)
			accessToken, err := service.RefreshToken(context.Background(), tt.token)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, accessToken)
			} else {
				require.NoError(t, err)
				claims, err := jwtService.ValidateToken(accessToken)
				require.NoError(t, err)
				assert.Equal(t, alice, claims.UserID)
			}
			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	st, _ := newTestStore(t)
	jwtService := auth.NewJWTService("test-secret")
	mockTokenStore := new(MockTokenStore)
	mockTokenStore.On("StoreRefreshToken", mock.Anything, mock.Anything, bob, "bob@example.com", mock.Anything).Return(nil)

	service := NewAuthService(st, jwtService, mockTokenStore)
	accessToken, refreshToken, _, err := service.Login(context.Background(), "bob@example.com", "")
	require.NoError(t, err)

	access, err := jwtService.ValidateToken(accessToken)
	require.NoError(t, err)
	refresh, err := jwtService.ValidateToken(refreshToken)
	require.NoError(t, err)

	t.Run("refresh token of another user is rejected", func(t *testing.T) {
		_, otherRefresh, err := jwtService.GenerateRefreshToken(alice, "alice@example.com")
		require.NoError(t, err)

		err = service.Logout(context.Background(), access, otherRefresh)
		assert.Equal(t, ErrInvalidRefreshToken, err)
		require.NotNil(t, st.Snapshot().CurrentUserID)
	})

	t.Run("access token in place of the refresh token is rejected", func(t *testing.T) {
		err := service.Logout(context.Background(), access, accessToken)
		assert.Equal(t, ErrInvalidRefreshToken, err)
		require.NotNil(t, st.Snapshot().CurrentUserID)
	})

	t.Run("logout revokes both tokens and clears the session", func(t *testing.T) {
		mockTokenStore.On("DeleteRefreshToken", mock.Anything, refresh.ID).Return(nil)
		mockTokenStore.On("BlacklistAccessToken", mock.Anything, access.ID, mock.AnythingOfType("time.Duration")).Return(nil)

		require.NoError(t, service.Logout(context.Background(), access, refreshToken))
		assert.Nil(t, st.Snapshot().CurrentUserID)
		mockTokenStore.AssertExpectations(t)
	})
}
