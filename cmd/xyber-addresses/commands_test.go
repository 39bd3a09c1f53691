package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/xyber-labs/xyber-server/pkg/testutil"
)

func TestParseSeeds(t *testing.T) {
	actual, err := parseSeeds([]string{
		"xyber_core",
		"hex:0102ff",
		"base58:4uQeVj5tqViQh7yWWGStvkEG1Zmhx6uasJtWCJziofM",
		"",
	})
	require.NoError(t, err)
	require.Len(t, actual, 4)

	assert.Equal(t, []byte("xyber_core"), actual[0])
	assert.Equal(t, []byte{1, 2, 255}, actual[1])
	assert.Len(t, actual[2], 32)
	assert.Empty(t, actual[3])

	for _, invalid := range []string{"hex:zz", "base58:0OIl"} {
		_, err := parseSeeds([]string{invalid})
		assert.Error(t, err, invalid)
	}
}

func TestProgramAddressCmd(t *testing.T) {
	out := runCmd(t, newProgramAddressCmd(), "--seed", "bump", "--seed", "hex:01")

	assert.Equal(t, "2S5DkY5mRY8pbXyYWuH1WsYQB3g6Aq4xnoLQzKxVXDso", out["address"])
	assert.EqualValues(t, 252, out["bump"])
}

func TestAssociatedAccountCmd(t *testing.T) {
	out := runCmd(t, newAssociatedAccountCmd(),
		"--owner", "4uQeVj5tqViQh7yWWGStvkEG1Zmhx6uasJtWCJziofM",
		"--mint", "8opHzTAnfzRpPEx21XtnrVTX28YQuCpAjcn1PczScKh",
	)
	assert.Equal(t, "H7MQwEzt97tUJryocn3qaEoy2ymWstwyEk1i9Yv3EmuZ", out["address"])

	c := newAssociatedAccountCmd()
	c.SetArgs([]string{
		"--owner", "8opHzTAnfzRpPEx21XtnrVTX28YQuCpAjcn1PczScKh",
		"--mint", "4uQeVj5tqViQh7yWWGStvkEG1Zmhx6uasJtWCJziofM",
	})
	c.SetOut(&bytes.Buffer{})
	c.SetErr(&bytes.Buffer{})
	assert.Error(t, c.ExecuteContext(context.Background()))

	out = runCmd(t, newAssociatedAccountCmd(),
		"--owner", "8opHzTAnfzRpPEx21XtnrVTX28YQuCpAjcn1PczScKh",
		"--mint", "4uQeVj5tqViQh7yWWGStvkEG1Zmhx6uasJtWCJziofM",
		"--allow-owner-off-curve",
	)
	assert.Equal(t, "5u8xVdMfuXTZQQ1bmRFjhJLS5wvNwHEaXv9bqkiExJcD", out["address"])
}

func TestDeriveCmd(t *testing.T) {
	out := runCmd(t, newDeriveCmd(),
		"--identity", "4uQeVj5tqViQh7yWWGStvkEG1Zmhx6uasJtWCJziofM",
		"--asset-seed", "DWYE8SQkpestTvpCxGNTCRjC2E9Kn6TCnu2SxkddrEEU",
	)

	addresses, ok := out["addresses"].(map[string]interface{})
	require.True(t, ok)
	assert.Len(t, addresses, 8)
	assert.Equal(t, "DBRFvPyVcNNrPA8gxbqhJcypfYcGrTrEAKTNTG8zKNd", addresses["token"])
	assert.Equal(t, "q7WC8sUA1ZfKjnv3e1V5LTgBkNXvqq5bwLTvjWxCVS5", addresses["vaultTokenAccount"])
	assert.NotContains(t, out, "assetSeedPrivateKey")

	bumps, ok := out["bumps"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 253, bumps["mint"])
}

func TestDeriveCmd_GeneratedAssetSeed(t *testing.T) {
	out := runCmd(t, newDeriveCmd(),
		"--identity", "4uQeVj5tqViQh7yWWGStvkEG1Zmhx6uasJtWCJziofM",
		"--generate-asset-seed",
	)
	assert.NotEmpty(t, out["assetSeed"])
	assert.NotEmpty(t, out["assetSeedPrivateKey"])
}

func TestDeriveCmd_Errors(t *testing.T) {
	for _, args := range [][]string{
		{"--asset-seed", "DWYE8SQkpestTvpCxGNTCRjC2E9Kn6TCnu2SxkddrEEU"},
		{"--identity", "4uQeVj5tqViQh7yWWGStvkEG1Zmhx6uasJtWCJziofM"},
		{
			"--identity", "4uQeVj5tqViQh7yWWGStvkEG1Zmhx6uasJtWCJziofM",
			"--asset-seed", "DWYE8SQkpestTvpCxGNTCRjC2E9Kn6TCnu2SxkddrEEU",
			"--generate-asset-seed",
		},
	} {
		c := newDeriveCmd()
		c.SetArgs(args)
		c.SetOut(&bytes.Buffer{})
		c.SetErr(&bytes.Buffer{})
		assert.Error(t, c.ExecuteContext(context.Background()), args)
	}
}

func runCmd(t *testing.T, c *cobra.Command, args ...string) map[string]interface{} {
	var stdout bytes.Buffer
	c.SetArgs(args)
	c.SetOut(&stdout)
	c.SetErr(&bytes.Buffer{})
	require.NoError(t, c.ExecuteContext(context.Background()))

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
	return out
}
