package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrbl-app/mrbl/internal/auth"
)

var secret = []byte("test-jwt-secret")

func TestIssueParseRoundTrip(t *testing.T) {
	userID := uuid.New()

	token, err := auth.IssueToken(secret, userID, auth.RoleDriver, time.Hour)
	require.NoError(t, err)

	principal, err := auth.ParseToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, userID, principal.UserID)
	assert.Equal(t, auth.RoleDriver, principal.Role)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := auth.IssueToken(secret, uuid.New(), auth.RoleCustomer, time.Hour)
	require.NoError(t, err)

	_, err = auth.ParseToken([]byte("another-secret"), token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := auth.IssueToken(secret, uuid.New(), auth.RoleCustomer, -time.Minute)
	require.NoError(t, err)

	_, err = auth.ParseToken(secret, token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := auth.ParseToken(secret, "not.a.token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestPrincipalContext(t *testing.T) {
	want := &auth.Principal{UserID: uuid.New(), Role: auth.RoleAdmin}

	ctx := auth.WithPrincipal(context.Background(), want)

	got, err := auth.FromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = auth.FromContext(context.Background())
	assert.ErrorIs(t, err, auth.ErrNoPrincipal)
}
