package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// RandomHex reads n bytes from crypto/rand and returns them as upper-case hex,
// so the result is 2n characters long.
func RandomHex(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("byte count must be positive")
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return strings.ToUpper(hex.EncodeToString(b)), nil
}
