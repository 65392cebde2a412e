package secure

import (
	"crypto/rand"
	"io"
)

// Reader is the cryptographically secure random number generator used for
// private keys and random hex values. Tests may replace it with a
// deterministic source.
//
//nolint:gochecknoglobals // Package-level RNG is required for testability
var Reader io.Reader = rand.Reader

// RandomBytes generates n cryptographically secure random bytes.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(Reader, b); err != nil {
		return nil, err
	}
	return b, nil
}

// RandomSecureBytes generates random bytes in a SecureBytes container.
func RandomSecureBytes(n int) (*SecureBytes, error) {
	sb := NewSecureBytes(n)
	if _, err := io.ReadFull(Reader, sb.Bytes()); err != nil {
		sb.Destroy()
		return nil, err
	}
	return sb, nil
}
