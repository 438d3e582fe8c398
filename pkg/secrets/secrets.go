package secrets

import (
	"crypto/rand"
	"encoding/base64"

	dErrors "devportal/pkg/domain-errors"
)

// FragmentLength is how many trailing characters of a secret are kept for display.
const FragmentLength = 4

// Generate creates a cryptographically secure random secret.
func Generate() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not generate secret")
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Fragment returns the last FragmentLength characters of secret, or the whole
// secret when it is shorter.
func Fragment(secret string) string {
	r := []rune(secret)
	if len(r) <= FragmentLength {
		return secret
	}
	return string(r[len(r)-FragmentLength:])
}
