package services

import (
	"context"
	"errors"
	"testing"

	"github.com/mhdyaseenvattappara/yazzfolio/internal/models"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_BootstrapFirstAccount(t *testing.T) {
	s := setupStores(t)
	var created []string
	svc := NewAuthService(s.Accounts, "", func(_ context.Context, acct *models.Account) error {
		created = append(created, acct.ID)
		return nil
	})

	acct, isNew, err := svc.Login(ctx, " Admin@Example.com ", "secret123")
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.Equal(t, "admin@example.com", acct.Email)
	assert.NotEqual(t, "secret123", acct.PasswordHash)
	assert.Equal(t, []string{acct.ID}, created)

	again, isNew, err := svc.Login(ctx, "admin@example.com", "secret123")
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, acct.ID, again.ID)

	_, _, err = svc.Login(ctx, "admin@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// a second account is never created
	_, _, err = svc.Login(ctx, "intruder@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Len(t, created, 1)

	assert.True(t, svc.Exists(ctx, acct.ID))
	assert.False(t, svc.Exists(ctx, "nope"))

	owner, err := svc.Owner(ctx)
	require.NoError(t, err)
	assert.Equal(t, acct.ID, owner.ID)
}

func TestAuthService_AdminEmailRestriction(t *testing.T) {
	s := setupStores(t)
	svc := NewAuthService(s.Accounts, "owner@studio.dev", nil)

	_, _, err := svc.Login(ctx, "someone@else.dev", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "owner@studio.dev", "123")
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, isNew, err := svc.Login(ctx, "OWNER@studio.dev", "secret123")
	require.NoError(t, err)
	assert.True(t, isNew)
}

func TestAuthService_EmptyCredentials(t *testing.T) {
	s := setupStores(t)
	svc := NewAuthService(s.Accounts, "", nil)
	_, _, err := svc.Login(ctx, "", "x")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Owner(ctx)
	assert.Error(t, err)
}

func TestAuthService_FailedInitializationIsRetried(t *testing.T) {
	s := setupStores(t)
	calls := 0
	svc := NewAuthService(s.Accounts, "", func(_ context.Context, _ *models.Account) error {
		calls++
		if calls == 1 {
			return errors.New("seed unavailable")
		}
		return nil
	})

	_, _, err := svc.Login(ctx, "admin@example.com", "secret123")
	require.Error(t, err)
	_, err = svc.Owner(ctx)
	assert.ErrorIs(t, err, store.ErrNotFound, "the account is rolled back")

	acct, isNew, err := svc.Login(ctx, "admin@example.com", "secret123")
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.Equal(t, 2, calls)
	assert.True(t, svc.Exists(ctx, acct.ID))
}
