package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math/big"
)

// TokenSize128 provides 128 bits of entropy (22 chars base64url).
const TokenSize128 = 16

// GenerateToken creates a cryptographically secure random token of size bytes,
// encoded as unpadded base64url.
func GenerateToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("token size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// RandomDigits returns n uniformly random decimal digits.
func RandomDigits(n int) (string, error) {
	const charset = "0123456789"
	if n <= 0 {
		return "", fmt.Errorf("digit count must be positive, got %d", n)
	}

	out := make([]byte, n)
	for i := range out {
		v, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digits: %w", err)
		}
		out[i] = charset[v.Int64()]
	}
	return string(out), nil
}
