package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	users       map[string]AuthUser
	lastLogin   []string
	permLookups int
	permErr     error
}

func (f *fakeStore) FindActiveUserByEmail(_ context.Context, email string) (AuthUser, error) {
	user, ok := f.users[email]
	if !ok {
		return AuthUser{}, errors.New("no rows")
	}
	return user, nil
}

func (f *fakeStore) UpdateLastLogin(_ context.Context, userID string) error {
	f.lastLogin = append(f.lastLogin, userID)
	return nil
}

func (f *fakeStore) RolePermissions(_ context.Context, roleID string) ([]string, error) {
	f.permLookups++
	if f.permErr != nil {
		return nil, f.permErr
	}
	for _, user := range f.users {
		if user.RoleID == roleID {
			return RolePermissions[user.RoleName], nil
		}
	}
	return nil, nil
}

func newFakeStore(t *testing.T) *fakeStore {
	t.Helper()
	hash, err := HashPassword("pass-123")
	require.NoError(t, err)
	return &fakeStore{users: map[string]AuthUser{
		"coord@example.com": {ID: "u1", TenantID: "t1", RoleID: "r-coord", RoleName: RoleCoordinator, Password: hash},
	}}
}

func TestLoginIssuesTokenWithRoleClaims(t *testing.T) {
	store := newFakeStore(t)
	svc := NewService(store, "secret", time.Hour)

	token, user, err := svc.Login(context.Background(), " coord@example.com ", "pass-123")
	require.NoError(t, err)
	assert.Empty(t, user.Password, "password hash must not leave the service")

	claims, err := ParseToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, RoleCoordinator, claims.RoleName)
	assert.Equal(t, "t1", claims.TenantID)
	assert.Equal(t, []string{"u1"}, store.lastLogin)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := NewService(newFakeStore(t), "secret", time.Hour)

	cases := []struct{ email, password string }{
		{"coord@example.com", "wrong"},
		{"missing@example.com", "pass-123"},
		{"", "pass-123"},
		{"coord@example.com", ""},
	}
	for _, tc := range cases {
		_, _, err := svc.Login(context.Background(), tc.email, tc.password)
		assert.ErrorIs(t, err, ErrInvalidCredentials, "email %q", tc.email)
	}
}

func TestHasPermissionCachesPerRole(t *testing.T) {
	store := newFakeStore(t)
	svc := NewService(store, "secret", 0)
	assert.Equal(t, defaultTokenTTL, svc.TokenTTL)

	now := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return now }

	allowed, err := svc.HasPermission(context.Background(), "r-coord", PermEvaluationsRead)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = svc.HasPermission(context.Background(), "r-coord", PermEvaluationsReset)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 1, store.permLookups)

	now = now.Add(permissionCacheTTL + time.Second)
	_, err = svc.HasPermission(context.Background(), "r-coord", PermEvaluationsRead)
	require.NoError(t, err)
	assert.Equal(t, 2, store.permLookups)
}

func TestHasPermissionPropagatesStoreError(t *testing.T) {
	store := newFakeStore(t)
	store.permErr = errors.New("db down")
	svc := NewService(store, "secret", time.Hour)

	allowed, err := svc.HasPermission(context.Background(), "r-coord", PermEvaluationsRead)
	assert.Error(t, err)
	assert.False(t, allowed)

	store.permErr = nil
	allowed, err = svc.HasPermission(context.Background(), "r-coord", PermEvaluationsRead)
	require.NoError(t, err)
	assert.True(t, allowed)
}
