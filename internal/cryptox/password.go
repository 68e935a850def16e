// Package cryptox implements one-way password hashing for stored accounts.
//
// New hashes are bcrypt. Verification also understands the werkzeug
// "pbkdf2:sha256:<iterations>$<salt>$<hex>" format so accounts imported from
// an older users table can still log in.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/quizweb/internal/common"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

const (
	pbkdf2Prefix            = "pbkdf2:"
	pbkdf2DefaultIterations = 600000

	// MaxPasswordBytes is the bcrypt input limit.
	MaxPasswordBytes = 72
)

// Hasher hashes and verifies passwords with a fixed bcrypt cost.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher using cost, clamped to bcrypt's valid range.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &Hasher{cost: cost}
}

// Hash returns a salted bcrypt hash of password.
func (h *Hasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Verify reports whether password matches hash. A mismatch is (false, nil);
// an error means the stored hash itself could not be interpreted.
func (h *Hasher) Verify(hash, password string) (bool, error) {
	if strings.HasPrefix(hash, pbkdf2Prefix) {
		return verifyPBKDF2(hash, password)
	}

	// bcrypt only reads the first MaxPasswordBytes
	if len(password) > MaxPasswordBytes {
		return false, nil
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", common.ErrUnsupportedHashType, err)
	}
}

// verifyPBKDF2 checks a werkzeug-style hash. Only sha256 is accepted.
func verifyPBKDF2(hash, password string) (bool, error) {
	method, rest, ok := strings.Cut(hash, "$")
	if !ok {
		return false, common.ErrUnsupportedHashType
	}
	salt, want, ok := strings.Cut(rest, "$")
	if !ok {
		return false, common.ErrUnsupportedHashType
	}

	parts := strings.Split(method, ":")
	if len(parts) < 2 || parts[1] != "sha256" {
		return false, common.ErrUnsupportedHashType
	}

	iterations := pbkdf2DefaultIterations
	if len(parts) == 3 {
		n, err := strconv.Atoi(parts[2])
		if err != nil || n <= 0 {
			return false, common.ErrUnsupportedHashType
		}
		iterations = n
	}

	expected, err := hex.DecodeString(want)
	if err != nil {
		return false, common.ErrUnsupportedHashType
	}

	got := pbkdf2.Key([]byte(password), []byte(salt), iterations, len(expected), sha256.New)
	return subtle.ConstantTimeCompare(got, expected) == 1, nil
}

// LegacyPBKDF2 builds a werkzeug-format hash. Used by tests and by operators
// preparing fixtures; new accounts always get bcrypt.
func LegacyPBKDF2(password, salt string, iterations int) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), iterations, sha256.Size, sha256.New)
	return fmt.Sprintf("pbkdf2:sha256:%d$%s$%s", iterations, salt, hex.EncodeToString(key))
}
