package service

import "golang.org/x/crypto/bcrypt"

// DefaultBcryptCost is deliberately above the library default: offline
// brute-force resistance matters more here than login latency.
const DefaultBcryptCost = 12

// PasswordHasher wraps bcrypt with a fixed work factor chosen at startup.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher with the given cost. Out-of-range costs
// fall back to DefaultBcryptCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash produces a salted one-way digest of the plaintext.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches the digest. A malformed digest is
// simply a non-match, never a panic or an error.
func (h *PasswordHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
