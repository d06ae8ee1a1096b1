// Package auth issues and verifies signed bearer tokens and compares
// credential secrets.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the claim set carried by an access token: the subject (the
// account's email) and the absolute expiration time.
type Claims struct {
	jwt.RegisteredClaims
}

// Token is a freshly minted access token.
type Token struct {
	Value     string
	Subject   string
	ExpiresAt time.Time
}

// TokenManager signs and verifies HS256 tokens with a single process-wide
// secret. It holds no mutable state and is safe for concurrent use.
//
// Claim timestamps have one-second precision, so expirations are truncated
// to the second.
type TokenManager struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

type Option func(*TokenManager)

// WithClock replaces time.Now as the source of the current time.
func WithClock(now func() time.Time) Option {
	return func(m *TokenManager) { m.now = now }
}

func NewTokenManager(secret []byte, validity time.Duration, opts ...Option) *TokenManager {
	m := &TokenManager{
		secret:   secret,
		validity: validity,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Validity returns the configured token lifetime.
func (m *TokenManager) Validity() time.Duration {
	return m.validity
}

// Issue mints a token for subject that expires one validity window from now.
func (m *TokenManager) Issue(subject string) (Token, error) {
	expiresAt := jwt.NewNumericDate(m.now().Add(m.validity))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: expiresAt,
		},
	})

	value, err := token.SignedString(m.secret)
	if err != nil {
		return Token{}, err
	}

	return Token{Value: value, Subject: subject, ExpiresAt: expiresAt.Time}, nil
}

// Verify checks the signature and expiry of tokenString and returns its
// subject. A token signed with this secret whose expiration is not after the
// current time yields common.ErrTokenExpired; anything else that fails
// yields common.ErrInvalidToken.
func (m *TokenManager) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		// the signature is checked before claims, so an expired error
		// implies a genuine token
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
