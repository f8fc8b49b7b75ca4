package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/devconnect/devconnect-backend/internal/store/memory"
)

func newAuthFixture(t *testing.T) (AuthService, *memory.Store) {
	t.Helper()
	st := memory.New()
	return NewAuthService(testLogger(t), st.Users(), "test-secret", time.Hour), st
}

func TestRegisterLoginVerify(t *testing.T) {
	svc, st := newAuthFixture(t)
	ctx := context.Background()

	token, err := svc.Register(ctx, "Alice", "Alice@Example.com ", "supersecret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := svc.Verify(token)
	require.NoError(t, err)
	require.NotEmpty(t, identity.UserID)

	user, err := st.Users().Load(ctx, identity.UserID)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", user.Email)
	require.NotEqual(t, "supersecret", user.Password)
	require.Contains(t, user.Avatar, "gravatar.com/avatar/")

	loginToken, err := svc.Login(ctx, "alice@example.com", "supersecret")
	require.NoError(t, err)
	loginIdentity, err := svc.Verify(loginToken)
	require.NoError(t, err)
	require.Equal(t, identity.UserID, loginIdentity.UserID)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "alice@example.com", "supersecret")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Imposter", "alice@example.com", "othersecret")
	requireStatus(t, err, http.StatusBadRequest)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "nobody@example.com", "whatever")
	requireStatus(t, err, http.StatusUnauthorized)

	_, err = svc.Register(ctx, "Alice", "alice@example.com", "supersecret")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice@example.com", "wrong")
	requireStatus(t, err, http.StatusUnauthorized)
}

func TestVerifyRejectsGarbageAndForeignTokens(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Verify("not-a-token")
	requireStatus(t, err, http.StatusUnauthorized)

	otherStore := memory.New()
	other := NewAuthService(testLogger(t), otherStore.Users(), "other-secret", time.Hour)
	foreign, err := other.Register(ctx, "Eve", "eve@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Verify(foreign)
	requireStatus(t, err, http.StatusUnauthorized)
}

func TestGravatarURLIsDeterministic(t *testing.T) {
	a := gravatarURL("Alice@Example.com")
	b := gravatarURL("  alice@example.com ")
	require.Equal(t, a, b)
	require.Contains(t, a, "?s=200&r=pg&d=mm")
}
