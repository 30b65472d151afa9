package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// invitationTokenBytes gives 256 bits of entropy; the hex encoding is
// 64 characters.
const invitationTokenBytes = 32

// NewInvitationToken returns a cryptographically random, URL-safe token.
// The token is the sole lookup key for invitation redemption, so it must
// be unguessable.
func NewInvitationToken() (string, error) {
	buf := make([]byte, invitationTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate invitation token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
