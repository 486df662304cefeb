package api

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenExpired reports a bearer token whose exp claim has passed.
var ErrTokenExpired = errors.New("bearer token has expired")

// TokenExpiry inspects the configured bearer token's exp claim without
// verifying the signature. Token issuance and verification belong to the
// backend; the client only wants to warn before a session dies mid-drag.
// Returns the zero time for tokens without an exp claim.
func TokenExpiry(token string) (time.Time, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, err
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, nil
	}
	return exp.Time, nil
}

// CheckToken returns ErrTokenExpired when the token carries an exp claim in
// the past, and the remaining lifetime otherwise.
func CheckToken(token string, now time.Time) (time.Duration, error) {
	expiry, err := TokenExpiry(token)
	if err != nil {
		return 0, err
	}
	if expiry.IsZero() {
		return 0, nil
	}
	if expiry.Before(now) {
		return 0, ErrTokenExpired
	}
	return expiry.Sub(now), nil
}
