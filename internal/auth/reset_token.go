package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// ResetTokenExpiry is the window in which a password reset token may be used.
const ResetTokenExpiry = 15 * time.Minute

// NewResetToken generates a random opaque reset token and returns both the
// raw value (to embed in the reset link) and its hash (to persist). The raw
// value is never stored.
func NewResetToken() (raw, hash string) {
	raw = uuid.New().String()
	return raw, HashResetToken(raw)
}

// HashResetToken returns the hex-encoded SHA-256 of a raw reset token.
func HashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
