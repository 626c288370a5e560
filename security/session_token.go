package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid session token")

// SessionClaims is the signed part of a session token. The session id
// (jti) must also exist server side for the token to be honored.
type SessionClaims struct {
	jwt.RegisteredClaims
}

func (c SessionClaims) SessionID() string { return c.ID }
func (c SessionClaims) UserID() string    { return c.Subject }

type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a new session token for userID.
func (m *TokenManager) Issue(userID string, now time.Time) (string, SessionClaims, error) {
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			Issuer:    "luxetickets",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", SessionClaims{}, fmt.Errorf("sign session token: %w", err)
	}
	return token, claims, nil
}

// Parse verifies the signature and expiry of a session token.
func (m *TokenManager) Parse(token string) (SessionClaims, error) {
	var claims SessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer("luxetickets"))
	if err != nil || !parsed.Valid {
		return SessionClaims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.ID == "" || claims.Subject == "" {
		return SessionClaims{}, ErrInvalidToken
	}
	return claims, nil
}
