package services

import (
	"golang.org/x/crypto/bcrypt"
)

// bcrypt cost factor (10-14 recommended for production)
const bcryptCost = 12

// PasswordHasher is the one-way hash + compare primitive consumed by the
// auth service.
type PasswordHasher interface {
	// Hash returns a one-way hash of the plaintext.
	Hash(plaintext string) (string, error)

	// Matches reports whether the plaintext matches the stored hash.
	Matches(plaintext, hash string) bool
}

// BcryptHasher implements PasswordHasher with bcrypt
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a bcrypt hasher with the default cost
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcryptCost}
}

// NewBcryptHasherWithCost creates a bcrypt hasher with an explicit cost.
// Tests use bcrypt.MinCost; production code should use NewBcryptHasher.
func NewBcryptHasherWithCost(cost int) *BcryptHasher {
	return &BcryptHasher{cost: cost}
}

// Hash returns the bcrypt hash of the plaintext
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Matches compares plaintext against the stored hash in constant time
func (h *BcryptHasher) Matches(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
