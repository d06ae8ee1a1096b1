package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"golang.org/x/crypto/bcrypt"
)

const (
	HashingPlain  = "plain"
	HashingBcrypt = "bcrypt"
)

// SecretComparer decides how credential secrets are stored and checked.
type SecretComparer interface {
	// Prepare returns the form of secret that gets persisted.
	Prepare(secret string) (string, error)
	// Compare reports whether supplied matches the stored form.
	Compare(stored, supplied string) bool
}

// PlainComparer stores secrets as supplied and compares them for exact
// equality in constant time.
type PlainComparer struct{}

func (PlainComparer) Prepare(secret string) (string, error) {
	return secret, nil
}

func (PlainComparer) Compare(stored, supplied string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}

// BcryptComparer stores salted bcrypt hashes.
type BcryptComparer struct {
	Cost int
}

func (c BcryptComparer) Prepare(secret string) (string, error) {
	cost := c.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: password is too long", common.ErrorValidation)
		}
		return "", err
	}
	return string(h), nil
}

func (c BcryptComparer) Compare(stored, supplied string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
}

// NewSecretComparer returns the comparer registered under name.
func NewSecretComparer(name string) (SecretComparer, error) {
	switch name {
	case "", HashingPlain:
		return PlainComparer{}, nil
	case HashingBcrypt:
		return BcryptComparer{}, nil
	default:
		return nil, fmt.Errorf("unknown password hashing %q", name)
	}
}
