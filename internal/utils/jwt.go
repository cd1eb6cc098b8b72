package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoExpiry is returned when a token carries no exp claim.
var ErrNoExpiry = errors.New("token has no expiry")

// ParseBearerToken extracts the token from an "Authorization: Bearer <t>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}

// ParseSubjectFromJWT returns the sub claim of a session token without
// verifying its signature. The PDS signs session tokens with a key the
// client never sees, so the claims are only read, never trusted for
// authorization.
func ParseSubjectFromJWT(tokenString string) (string, error) {
	claims, err := parseUnverifiedClaims(tokenString)
	if err != nil {
		return "", err
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error occurred during getting subject from token: %w", err)
	}
	if sub == "" {
		return "", errors.New("empty subject error")
	}
	return sub, nil
}

// ParseExpiryFromJWT returns the exp claim of a token without verifying its
// signature.
func ParseExpiryFromJWT(tokenString string) (time.Time, error) {
	claims, err := parseUnverifiedClaims(tokenString)
	if err != nil {
		return time.Time{}, err
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("error occurred during getting expiry from token: %w", err)
	}
	if exp == nil {
		return time.Time{}, ErrNoExpiry
	}
	return exp.Time, nil
}

// IsJWTExpired reports whether the token expires within leeway of now.
// Unparseable tokens count as expired.
func IsJWTExpired(tokenString string, now time.Time, leeway time.Duration) bool {
	exp, err := ParseExpiryFromJWT(tokenString)
	if errors.Is(err, ErrNoExpiry) {
		return false
	}
	if err != nil {
		return true
	}
	return !now.Add(leeway).Before(exp)
}

func parseUnverifiedClaims(tokenString string) (jwt.MapClaims, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("error occurred parsing token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
