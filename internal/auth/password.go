package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"workshop/internal/common"
)

// DigestLength is the length of a stored password digest:
// base64(sha256(password)) is always 44 characters.
const DigestLength = 44

// HashPassword produces the stored digest for a password.
//
// The scheme is a single unsalted sha256 pass, kept for compatibility with
// digests already persisted by earlier deployments. It is a known weakness:
// identical passwords hash identically and the digest is cheap to brute-force
// offline. Migrating to a salted, memory-hard KDF requires a re-hash on login
// and is tracked as a migration concern, not done silently here.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: empty password", common.ErrInvalidInput)
	}
	sum := sha256.Sum256([]byte(password))
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}

// VerifyPassword reports whether password matches the stored digest.
// A digest that is not exactly DigestLength characters is rejected outright.
func VerifyPassword(password, digest string) (bool, error) {
	if password == "" {
		return false, fmt.Errorf("%w: empty password", common.ErrInvalidInput)
	}
	if len(digest) != DigestLength {
		return false, fmt.Errorf("%w: malformed digest", common.ErrInvalidInput)
	}
	candidate, err := HashPassword(password)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(digest)) == 1, nil
}
