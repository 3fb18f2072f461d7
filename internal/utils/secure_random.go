package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// NewPortalToken returns the bearer token a member uses to read their own summary without an
// account. It carries nBytes of crypto/rand entropy, URL-safe base64 encoded without padding so
// it can travel in a query string. Only its hash is stored.
func NewPortalToken(nBytes int) (string, error) {
	if nBytes < 16 {
		return "", fmt.Errorf("portal tokens need at least 16 random bytes, got %d", nBytes)
	}
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
