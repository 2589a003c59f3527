//go:build e2e

package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/project-nt/auth/pkg/authsdk"
)

// TestRegisterLoginLogout tests the complete session flow:
// 1. Register an account
// 2. Login and receive both cookies
// 3. Check the session and reach the gated profile
// 4. Logout and lose the session
func TestRegisterLoginLogout(t *testing.T) {
	svc := setupAuthContainer(t)
	client := authsdk.NewClient(svc.BaseURL)

	registerAccount(t, client)
	performLogin(t, client, testEmail, testPassword)

	sess, err := client.Session(t.Context())
	require.NoError(t, err)
	require.True(t, sess.LoggedIn)
	require.NotNil(t, sess.User)
	require.Equal(t, testEmail, sess.User.Email)
	require.Equal(t, testName, sess.User.Name)
	require.Greater(t, sess.User.ExpiresAt, time.Now().Unix())

	me, err := client.Me(t.Context())
	require.NoError(t, err)
	require.Equal(t, testEmail, me.Email)
	require.Equal(t, testPhone, me.Phone)
	require.NotNil(t, me.OnOff)
	require.Equal(t, "ON", *me.OnOff)

	require.NoError(t, client.Logout(t.Context()))
	require.Empty(t, client.Cookie("accessToken"))
	require.Empty(t, client.Cookie("refreshToken"))

	sess, err = client.Session(t.Context())
	require.NoError(t, err)
	require.False(t, sess.LoggedIn)

	_, err = client.Me(t.Context())
	require.ErrorIs(t, err, authsdk.ErrInvalidToken)
}

// TestDuplicateRegistration verifies an email can only be registered once.
func TestDuplicateRegistration(t *testing.T) {
	svc := setupAuthContainer(t)
	client := authsdk.NewClient(svc.BaseURL)

	registerAccount(t, client)

	_, err := client.Register(t.Context(), authsdk.RegisterRequest{
		Name:     "Someone Else",
		Email:    testEmail,
		Password: "another-password",
	})
	require.ErrorIs(t, err, authsdk.ErrEmailTaken)
}

// TestSecondLoginSupersedesFirst verifies that only the most recent refresh
// token is honoured once a newer login has happened.
func TestSecondLoginSupersedesFirst(t *testing.T) {
	svc := setupAuthContainer(t)
	first := authsdk.NewClient(svc.BaseURL)
	second := authsdk.NewClient(svc.BaseURL)

	registerAccount(t, first)
	firstTokens := performLogin(t, first, testEmail, testPassword)
	secondTokens := performLogin(t, second, testEmail, testPassword)
	require.NotEqual(t, firstTokens.RefreshToken, secondTokens.RefreshToken)

	// Logging out with the stale refresh token must not end the live session.
	require.NoError(t, first.Logout(t.Context()))

	me, err := second.Me(t.Context())
	require.NoError(t, err)
	require.Equal(t, testEmail, me.Email)
}
