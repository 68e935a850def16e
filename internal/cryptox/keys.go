package cryptox

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
)

const derivedKeyLen = 32

// DeriveKey expands the configured secret into an independent key for one
// purpose, so the session token and the flash cookie never share a key.
func DeriveKey(secret, purpose string) ([]byte, error) {
	key := make([]byte, derivedKeyLen)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte("quizweb/"+purpose))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, err
	}
	return key, nil
}
