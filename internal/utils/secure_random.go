package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// accessTokenBytes yields a 40-character URL-safe token, inside the
// 32-48 character contract for access link tokens.
const accessTokenBytes = 30

// GenerateAccessToken returns a cryptographically secure random token
// suitable for use as an opaque bearer credential.
func GenerateAccessToken() (string, error) {
	b := make([]byte, accessTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(b), nil
}
