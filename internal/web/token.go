package web

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "day-planner"

// SessionTokens signs and verifies the session cookie. The token subject is
// the session ID. Tokens are re-issued on every request, so their expiry
// slides with the session's.
type SessionTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionTokens(secret string, ttl time.Duration) *SessionTokens {
	return &SessionTokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed token for sessionID.
func (t *SessionTokens) Issue(sessionID string) (string, error) {
	if sessionID == "" {
		return "", errors.New("empty session ID passed to Issue")
	}

	now := t.now()
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Parse validates a token and returns its session ID.
func (t *SessionTokens) Parse(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(t.now))
	if err != nil || !token.Valid {
		return "", errors.New("invalid session token")
	}
	if claims.Subject == "" {
		return "", errors.New("session token has no subject")
	}
	return claims.Subject, nil
}
