package helpers

import "golang.org/x/crypto/bcrypt"

// DefaultBcryptCost keeps a single hash deliberately slow.
const DefaultBcryptCost = 11

// PasswordHasher hashes and verifies plaintext passwords with bcrypt.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher with the given cost, falling back to
// DefaultBcryptCost when cost is outside bcrypt's accepted range.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &PasswordHasher{cost: cost}
}

// Cost reports the work factor used by Hash.
func (h *PasswordHasher) Cost() int { return h.cost }

// Hash hashes the plain text password using bcrypt
func (h *PasswordHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify compares a bcrypt hash with a plain password. Malformed hashes never match.
func (h *PasswordHasher) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
