package utils

import (
	"crypto/rand"
	"fmt"

	"github.com/unity-hallie/freezer-backend/internal/constants"
)

// inviteCodeAlphabet deliberately excludes lowercase letters so codes are
// easy to read aloud and re-type.
const inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateInviteCode generates a random 8-character household invite code
// drawn from uppercase letters and digits.
func GenerateInviteCode() (string, error) {
	bytes := make([]byte, constants.InviteCodeLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	code := make([]byte, constants.InviteCodeLength)
	for i, b := range bytes {
		code[i] = inviteCodeAlphabet[int(b)%len(inviteCodeAlphabet)]
	}
	return string(code), nil
}

// GenerateToken generates a URL-safe random token for email verification
// and password resets.
func GenerateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return fmt.Sprintf("%x", bytes), nil
}
