package password

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultCost = bcrypt.DefaultCost
	MinLength   = 6
)

var ErrTooShort = fmt.Errorf("password must be at least %d characters long", MinLength)

type Hasher struct {
	Cost int
}

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{Cost: cost}
}

/*
* Generate a bcrypt hash for the password given
* Every call uses a fresh salt
 */
func (h *Hasher) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.Cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify returns false without error on a mismatch. A malformed stored hash is an error.
func (h *Hasher) Verify(plain, hashed string) (bool, error) {
	if strings.TrimSpace(hashed) == "" {
		return false, errors.New("stored password missing or invalid")
	}
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("verify password: %w", err)
}

func ValidateRules(plain string) error {
	if strings.TrimSpace(plain) == "" {
		return errors.New("password not provided")
	}
	if len(plain) < MinLength {
		return ErrTooShort
	}
	return nil
}
