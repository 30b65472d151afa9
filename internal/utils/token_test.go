package utils

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInvitationToken(t *testing.T) {
	t.Run("produces a 64 character hex string", func(t *testing.T) {
		token, err := NewInvitationToken()
		require.NoError(t, err)
		assert.Len(t, token, 64)

		_, err = hex.DecodeString(token)
		assert.NoError(t, err)
	})

	t.Run("does not repeat", func(t *testing.T) {
		seen := make(map[string]struct{}, 10000)
		for i := 0; i < 10000; i++ {
			token, err := NewInvitationToken()
			require.NoError(t, err)
			_, dup := seen[token]
			require.False(t, dup, "token collision after %d draws", i)
			seen[token] = struct{}{}
		}
	})
}
