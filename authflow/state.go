package authflow

import (
	"fmt"
	"time"

	apperrors "github.com/booksight/qbo-connect/internal/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// stateTokenTTL bounds how long an authorization redirect stays usable.
const stateTokenTTL = 10 * time.Minute

// signState builds the opaque state parameter: a signed HS256 JWT carrying
// the initiating user's id, so the callback can be correlated back without
// server-side session storage.
func signState(secret []byte, userID string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ID:        uuid.New().String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(stateTokenTTL)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", errors.Wrap(err, "[signState] failed to sign state token")
	}
	return signed, nil
}

// parseState recovers the user id from a state parameter. Absent, garbled,
// expired, or unsigned states all surface as ErrMalformedCallback.
func parseState(secret []byte, state string) (string, error) {
	token, err := jwt.ParseWithClaims(state, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.Wrapf(apperrors.ErrMalformedCallback, "invalid state token: %v", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", errors.Wrap(apperrors.ErrMalformedCallback, "state token carries no user id")
	}
	return claims.Subject, nil
}
