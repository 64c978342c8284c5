package utils

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry extracts the exp claim when the access token parses as a
// JWT, without verifying the signature. Verification is the issuer's job;
// the caller only needs to know whether a cached token is already stale.
// Tokens that are not JWTs get a zero expiry.
func TokenExpiry(token string) time.Time {
	if token == "" || strings.Count(token, ".") != 2 {
		return time.Time{}
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
