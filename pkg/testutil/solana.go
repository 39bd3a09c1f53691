package testutil

import (
	"crypto/ed25519"
	"crypto/sha256"
	"testing"

	"filippo.io/edwards25519"
	"github.com/stretchr/testify/require"
)

func GenerateSolanaKeypair(t *testing.T) ed25519.PrivateKey {
	_, p, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return p
}

func GenerateSolanaKey(t *testing.T) ed25519.PublicKey {
	return GenerateSolanaKeys(t, 1)[0]
}

func GenerateSolanaKeys(t *testing.T, n int) []ed25519.PublicKey {
	keys := make([]ed25519.PublicKey, n)
	for i := 0; i < n; i++ {
		p, _, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)
		keys[i] = p
	}
	return keys
}

// GenerateOffCurveKey returns a random 32 byte value that does not decode to
// an Edwards25519 point, so it has no private key.
func GenerateOffCurveKey(t *testing.T) ed25519.PublicKey {
	seed := GenerateSolanaKey(t)
	for i := 0; i < 1024; i++ {
		digest := sha256.Sum256(seed)
		if _, err := new(edwards25519.Point).SetBytes(digest[:]); err != nil {
			return digest[:]
		}
		seed = digest[:]
	}

	require.FailNow(t, "failed to generate off curve key")
	return nil
}
