package credentials

import (
	"fmt"

	"signet/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

const defaultCost = 8

// BcryptHasher hashes user credentials with bcrypt. Comparison runs in the
// hash function's own constant-time comparator and never short-circuits.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(credential string) (string, error) {
	cost := h.Cost
	if cost <= 0 {
		cost = defaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(credential), cost)
	if err != nil {
		return "", fmt.Errorf("hashing credential: %w", err)
	}
	return string(hashed), nil
}

func (h BcryptHasher) Compare(hash, credential string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(credential)); err != nil {
		return domain.ErrInvalidCredential
	}
	return nil
}
