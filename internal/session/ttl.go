package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultTTL    = 24 * time.Hour
	RememberMeTTL = 30 * 24 * time.Hour
)

// sessionTTL derives how long to keep a session. The token's own expiry wins
// when it can be read; the BFF does not verify the signature since it is not
// the token authority. Otherwise remember-me extends the default.
func sessionTTL(token string, rememberMe bool, now time.Time) time.Duration {
	if exp, ok := tokenExpiry(token); ok {
		if ttl := exp.Sub(now); ttl > 0 {
			return ttl
		}
		return 0
	}
	if rememberMe {
		return RememberMeTTL
	}
	return DefaultTTL
}

func tokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
