// Copyright 2025 megaredb
// SPDX-License-Identifier: Apache-2.0

package pgstate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/megaredb/pg-manager/pgmanager"
)

// loginAs authenticates the session against the fake backend and clears the
// credentials hook afterwards so tests can install their own.
func loginAs(t *testing.T, stores *Stores, fake *fakeBackend, userID int64) {
	t.Helper()
	fake.verifyCredentials = func(username, password string) (*pgmanager.LoginResult, error) {
		return &pgmanager.LoginResult{
			User:  pgmanager.AppUser{UserID: userID, Username: username},
			Token: "test-token",
		}, nil
	}
	stores.Session.Login(context.Background(), "tester", "secret")
	require.True(t, stores.Session.Authenticated())
	fake.verifyCredentials = nil
}

func TestLoginEmptyCredentialsSkipsBackend(t *testing.T) {
	fake := newFakeBackend()
	stores := New(fake, nil)

	stores.Session.Login(context.Background(), "", "secret")

	require.False(t, stores.Session.Authenticated())
	require.Equal(t, "Invalid username or password", stores.Session.Err())
	require.Equal(t, 0, fake.callCount("verify_user_credentials"))

	stores.Session.Login(context.Background(), "tester", "")
	require.Equal(t, 0, fake.callCount("verify_user_credentials"))
}

func TestLoginRejectedCredentials(t *testing.T) {
	fake := newFakeBackend()
	stores := New(fake, nil)

	// Unset hook returns (nil, nil): the backend's "wrong password" answer.
	stores.Session.Login(context.Background(), "tester", "wrong")

	require.False(t, stores.Session.Authenticated())
	require.Nil(t, stores.Session.User())
	require.Equal(t, "Invalid username or password", stores.Session.Err())
	require.Equal(t, 1, fake.callCount("verify_user_credentials"))
}

func TestLoginTransportErrorTreatedAsRejection(t *testing.T) {
	fake := newFakeBackend()
	stores := New(fake, nil)
	fake.verifyCredentials = func(username, password string) (*pgmanager.LoginResult, error) {
		return nil, errors.New("connection refused")
	}

	stores.Session.Login(context.Background(), "tester", "secret")

	require.False(t, stores.Session.Authenticated())
	require.Equal(t, "Invalid username or password", stores.Session.Err())
}

func TestLoginSuccessStoresIdentityAndClearsError(t *testing.T) {
	fake := newFakeBackend()
	stores := New(fake, nil)

	stores.Session.Login(context.Background(), "", "")
	require.NotEmpty(t, stores.Session.Err())

	loginAs(t, stores, fake, 7)

	require.True(t, stores.Session.Authenticated())
	require.Equal(t, int64(7), stores.Session.UserID())
	require.Equal(t, "tester", stores.Session.User().Username)
	require.Equal(t, "test-token", stores.Session.Token())
	require.Empty(t, stores.Session.Err())
}

func TestLogoutClearsIdentity(t *testing.T) {
	fake := newFakeBackend()
	stores := New(fake, nil)
	loginAs(t, stores, fake, 7)

	stores.Session.Logout()

	require.False(t, stores.Session.Authenticated())
	require.Nil(t, stores.Session.User())
	require.Equal(t, int64(0), stores.Session.UserID())
	require.Empty(t, stores.Session.Token())
}

func TestEffectiveUserID(t *testing.T) {
	fake := newFakeBackend()
	stores := New(fake, nil)

	_, ok := stores.Session.effectiveUserID(0)
	require.False(t, ok)

	uid, ok := stores.Session.effectiveUserID(42)
	require.True(t, ok)
	require.Equal(t, int64(42), uid)

	loginAs(t, stores, fake, 7)

	uid, ok = stores.Session.effectiveUserID(0)
	require.True(t, ok)
	require.Equal(t, int64(7), uid)

	// An explicit id wins over the session user.
	uid, ok = stores.Session.effectiveUserID(42)
	require.True(t, ok)
	require.Equal(t, int64(42), uid)
}

func TestTokenProviderTracksSession(t *testing.T) {
	fake := newFakeBackend()
	stores := New(fake, nil)
	provider := stores.Session.TokenProvider()

	token, err := provider(context.Background())
	require.NoError(t, err)
	require.Empty(t, token)

	loginAs(t, stores, fake, 7)

	token, err = provider(context.Background())
	require.NoError(t, err)
	require.Equal(t, "test-token", token)
}
