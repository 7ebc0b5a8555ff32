// Package password provides one-way credential hashing and verification.
//
// Hashing uses bcrypt with a fixed work factor. Each call salts the input
// with fresh randomness, so hashing the same credential twice yields two
// different hash strings.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/skillsenselab/equiphub/internal/errors"
)

// DefaultCost is the bcrypt work factor used in production.
const DefaultCost = 12

// ErrMismatch is returned by Verify when the credential does not match.
var ErrMismatch = errors.New("password: invalid password")

// Hasher defines the interface for credential hashing and verification.
type Hasher interface {
	// Hash returns a salted hash of the plaintext credential. A failure
	// means the credential must not be persisted in any form.
	Hash(plaintext string) (string, error)

	// Verify checks a plaintext credential against a stored hash.
	// Returns nil on match and ErrMismatch otherwise; malformed input
	// is a mismatch, never a panic.
	Verify(plaintext, hash string) error
}

// BcryptHasher implements Hasher using bcrypt.
type BcryptHasher struct {
	cost int
}

// Option configures the bcrypt hasher.
type Option func(*BcryptHasher)

// WithCost sets the bcrypt cost parameter (default: 12, range: 4-31).
func WithCost(cost int) Option {
	return func(h *BcryptHasher) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			h.cost = cost
		}
	}
}

// NewBcryptHasher creates a bcrypt-based credential hasher.
func NewBcryptHasher(opts ...Option) *BcryptHasher {
	h := &BcryptHasher{cost: DefaultCost}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	if len(plaintext) > 72 {
		// bcrypt silently truncates beyond 72 bytes.
		return "", apperrors.Hashing(errors.New("password exceeds 72 bytes"))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", apperrors.Hashing(err)
	}
	return string(hash), nil
}

func (h *BcryptHasher) Verify(plaintext, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)); err != nil {
		return ErrMismatch
	}
	return nil
}
