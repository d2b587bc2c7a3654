package authflow

import (
	"testing"
	"time"

	apperrors "github.com/booksight/qbo-connect/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestStateRoundTrip(t *testing.T) {
	secret := []byte("test-state-secret")

	state, err := signState(secret, "user-42", time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, state)

	userID, err := parseState(secret, state)
	require.NoError(t, err)
	require.Equal(t, "user-42", userID)
}

func TestParseStateRejectsWrongSecret(t *testing.T) {
	state, err := signState([]byte("secret-a"), "user-42", time.Now())
	require.NoError(t, err)

	_, err = parseState([]byte("secret-b"), state)
	require.ErrorIs(t, err, apperrors.ErrMalformedCallback)
}

func TestParseStateRejectsExpiredToken(t *testing.T) {
	secret := []byte("test-state-secret")
	state, err := signState(secret, "user-42", time.Now().Add(-time.Hour))
	require.NoError(t, err)

	_, err = parseState(secret, state)
	require.ErrorIs(t, err, apperrors.ErrMalformedCallback)
}

func TestParseStateRejectsGarbage(t *testing.T) {
	_, err := parseState([]byte("test-state-secret"), `{"userId":"user-42"}`)
	require.ErrorIs(t, err, apperrors.ErrMalformedCallback)
}

func TestParseStateRejectsMissingSubject(t *testing.T) {
	secret := []byte("test-state-secret")
	state, err := signState(secret, "", time.Now())
	require.NoError(t, err)

	_, err = parseState(secret, state)
	require.ErrorIs(t, err, apperrors.ErrMalformedCallback)
}
