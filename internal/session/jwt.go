package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// jwtExpiry extracts the exp claim from a JWT-shaped token. The parse is
// unverified: the client holds no signing key and only wants the lifetime
// hint. Non-JWT tokens simply report no expiry.
func jwtExpiry(raw string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
