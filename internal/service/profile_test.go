package service

import (
	"context"
	"testing"
	"time"

	"github.com/dukerupert/vitrina/internal/auth"
	"github.com/dukerupert/vitrina/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileFixture(t *testing.T) (*fakeStore, ProfileService, int64) {
	t.Helper()
	store := newFakeStore()
	login, err := NewUserService(store, time.Hour, nil).Register(context.Background(), SignUpInput{
		Username: "ivan",
		Password: "correct-horse",
		FullName: "Ivan",
		Email:    "ivan@example.com",
		Phone:    "+79001234567",
	}, "")
	require.NoError(t, err)

	media := fakeMedia{files: map[string]bool{"avatars/ivan.png": true}}
	return store, NewProfileService(store, media), login.User.ID
}

func TestProfileService_Get(t *testing.T) {
	_, svc, userID := newProfileFixture(t)

	p, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "ivan", p.Username)
	assert.Equal(t, "ivan@example.com", p.Email)
	assert.Nil(t, p.Avatar)
	assert.True(t, p.Balance.IsZero())

	_, err = svc.Get(context.Background(), 404)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestProfileService_UpdateBlankClearsContacts(t *testing.T) {
	store, svc, userID := newProfileFixture(t)

	p, err := svc.Update(context.Background(), userID, ProfileInput{FullName: "Ivan Petrov", Email: " ", Phone: ""})
	require.NoError(t, err)
	assert.Equal(t, "Ivan Petrov", p.FullName)
	assert.Empty(t, p.Email)
	assert.False(t, store.data.profiles[userID].Email.Valid)
	assert.False(t, store.data.profiles[userID].Phone.Valid)
}

func TestProfileService_UpdateDuplicateContact(t *testing.T) {
	store, svc, userID := newProfileFixture(t)
	_, err := NewUserService(store, time.Hour, nil).Register(context.Background(), SignUpInput{
		Username: "petr",
		Password: "correct-horse",
		Email:    "petr@example.com",
		Phone:    "+79007654321",
	}, "")
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), userID, ProfileInput{Email: "petr@example.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Update(context.Background(), userID, ProfileInput{Phone: "+79007654321"})
	assert.ErrorIs(t, err, ErrPhoneTaken)
}

func TestProfileService_ChangePassword(t *testing.T) {
	store, svc, userID := newProfileFixture(t)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, userID, PasswordInput{CurrentPassword: "wrong-horse", NewPassword: "battery-staple"})
	require.Error(t, err)
	assert.Contains(t, domain.GetValidationFields(err), "currentPassword")

	err = svc.ChangePassword(ctx, userID, PasswordInput{CurrentPassword: "correct-horse", NewPassword: "short"})
	assert.Contains(t, domain.GetValidationFields(err), "newPassword")

	require.NoError(t, svc.ChangePassword(ctx, userID, PasswordInput{CurrentPassword: "correct-horse", NewPassword: "battery-staple"}))
	user, err := store.GetUserByID(ctx, userID)
	require.NoError(t, err)
	assert.NoError(t, auth.VerifyPassword("battery-staple", user.PasswordHash))
}

func TestProfileService_SetAvatar(t *testing.T) {
	_, svc, userID := newProfileFixture(t)
	ctx := context.Background()

	p, err := svc.SetAvatar(ctx, userID, AvatarInput{Key: "/avatars/ivan.png", Alt: "me"})
	require.NoError(t, err)
	require.NotNil(t, p.Avatar)
	assert.Equal(t, "https://cdn.test/avatars/ivan.png", p.Avatar.Src)
	assert.Equal(t, "me", p.Avatar.Alt)

	_, err = svc.SetAvatar(ctx, userID, AvatarInput{Key: "avatars/missing.png"})
	assert.Contains(t, domain.GetValidationFields(err), "key")

	_, err = svc.SetAvatar(ctx, userID, AvatarInput{Key: "../etc/passwd"})
	assert.Contains(t, domain.GetValidationFields(err), "key")
}
