package testutil

import (
	"testing"

	"filippo.io/edwards25519"
	"github.com/stretchr/testify/assert"
)

func TestGenerateSolanaKeys(t *testing.T) {
	keys := GenerateSolanaKeys(t, 10)
	assert.Len(t, keys, 10)

	seen := make(map[string]struct{})
	for _, key := range keys {
		assert.Len(t, key, 32)

		_, err := new(edwards25519.Point).SetBytes(key)
		assert.NoError(t, err)

		seen[string(key)] = struct{}{}
	}
	assert.Len(t, seen, len(keys))
}

func TestGenerateOffCurveKey(t *testing.T) {
	for i := 0; i < 10; i++ {
		key := GenerateOffCurveKey(t)
		assert.Len(t, key, 32)

		_, err := new(edwards25519.Point).SetBytes(key)
		assert.Error(t, err)
	}
}
