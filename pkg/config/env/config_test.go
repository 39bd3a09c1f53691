package env

import (
	"context"
	"crypto/ed25519"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xyber-labs/xyber-server/pkg/config"
)

func TestConfigDoesntExist(t *testing.T) {
	const env = "ENV_CONFIG_TEST_VAR"
	t.Setenv(env, "default")

	v, err := NewConfig(env).Get(context.Background())
	assert.Equal(t, []byte("default"), v)
	assert.Nil(t, err)

	t.Setenv(env, "")

	v, err = NewConfig(env).Get(context.Background())
	assert.Nil(t, v)
	assert.Equal(t, config.ErrNoValue, err)
}

func TestLowercaseKey(t *testing.T) {
	t.Setenv("ENV_CONFIG_TEST_LOWER", "  padded  ")

	v, err := NewConfig("env_config_test_lower").Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("padded"), v)
}

func TestPublicKeyConfig(t *testing.T) {
	const env = "ENV_CONFIG_TEST_PUBLIC_KEY"

	defaultValue, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	overridenValue, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	t.Setenv(env, "")
	assert.Equal(t, defaultValue, NewPublicKeyConfig(env, defaultValue).Get(context.Background()))

	t.Setenv(env, base58.Encode(overridenValue))
	actual, err := NewPublicKeyConfig(env, defaultValue).GetSafe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, overridenValue, actual)

	t.Setenv(env, "not-base58-0OIl")
	actual, err = NewPublicKeyConfig(env, defaultValue).GetSafe(context.Background())
	assert.Error(t, err)
	assert.Equal(t, defaultValue, actual)
}
