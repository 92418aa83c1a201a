package token

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
)

// NewSessionToken генерирует непрозрачный токен сессии (UUIDv4)
func NewSessionToken() string {
	return uuid.NewString()
}

// Valid reports whether s has the shape of a token issued by NewSessionToken.
func Valid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil && len(s) == 36
}

// Fingerprint returns a short non-reversible id of a token, safe for logs.
func Fingerprint(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])[:12]
}
