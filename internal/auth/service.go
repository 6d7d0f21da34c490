// Package auth verifies the administrative confirmation code that gates
// destructive roster operations.
package auth

import (
	"crypto/subtle"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Confirmer checks caller-supplied confirmation codes against the configured
// administrative secret. The secret is either a plain value or a bcrypt hash.
// With neither configured every code is rejected.
type Confirmer struct {
	plain []byte
	hash  []byte
}

// NewConfirmer creates a Confirmer. When both are set the hash takes precedence.
func NewConfirmer(plain, hash string) *Confirmer {
	c := &Confirmer{}
	switch {
	case hash != "":
		c.hash = []byte(hash)
	case plain != "":
		c.plain = []byte(plain)
	default:
		slog.Warn("no administrative secret configured; trainer deletion is disabled")
	}
	return c
}

// Configured reports whether any secret is set.
func (c *Confirmer) Configured() bool {
	return len(c.plain) > 0 || len(c.hash) > 0
}

// Verify reports whether code matches the configured secret.
func (c *Confirmer) Verify(code string) bool {
	if code == "" {
		return false
	}
	if len(c.hash) > 0 {
		return bcrypt.CompareHashAndPassword(c.hash, []byte(code)) == nil
	}
	if len(c.plain) > 0 {
		return subtle.ConstantTimeCompare(c.plain, []byte(code)) == 1
	}
	return false
}

// HashSecret returns a bcrypt hash of secret suitable for ADMIN_PASSWORD_HASH.
func HashSecret(secret string, cost int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("secret must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", fmt.Errorf("hashing secret: %w", err)
	}
	return string(hash), nil
}
