package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry inspects a bearer header value and returns the exp claim of
// the embedded JWT. The signature is NOT verified; the harness only uses
// this to warn before sending a token the server will certainly reject.
// ok is false for opaque tokens, non-bearer schemes and tokens without exp.
func TokenExpiry(value string) (time.Time, bool) {
	raw := strings.TrimSpace(value)
	if s, found := strings.CutPrefix(raw, "Bearer "); found {
		raw = s
	} else if s, found := strings.CutPrefix(raw, "bearer "); found {
		raw = s
	}
	if raw == "" || strings.Count(raw, ".") != 2 {
		return time.Time{}, false
	}
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Expired reports whether the bearer value carries a JWT that expired
// before now. Tokens without a readable exp claim are never expired.
func Expired(value string, now time.Time) bool {
	exp, ok := TokenExpiry(value)
	if !ok {
		return false
	}
	return exp.Before(now)
}
