package metadata

import (
	"crypto/ed25519"
	"testing"

	"github.com/mr-tron/base58/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xyber-labs/xyber-server/pkg/solana"
)

func TestGetMetadataAddress(t *testing.T) {
	mint, err := base58.Decode("8opHzTAnfzRpPEx21XtnrVTX28YQuCpAjcn1PczScKh")
	require.NoError(t, err)

	address, bump, err := GetMetadataAddress(&GetMetadataAddressArgs{
		Mint: mint,
	})
	require.NoError(t, err)
	assert.Equal(t, "H7EA12ipCXvY4ZERpbPLWLLorzNktr5LyQRhsA6YVNHg", base58.Encode(address))
	assert.EqualValues(t, 255, bump)

	withExplicitProgram, explicitBump, err := GetMetadataAddress(&GetMetadataAddressArgs{
		Mint:    mint,
		Program: PROGRAM_ID,
	})
	require.NoError(t, err)
	assert.EqualValues(t, address, withExplicitProgram)
	assert.Equal(t, bump, explicitBump)
}

func TestGetMetadataAddress_ProgramOverride(t *testing.T) {
	mint, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	program, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	actual, bump, err := GetMetadataAddress(&GetMetadataAddressArgs{
		Mint:    mint,
		Program: program,
	})
	require.NoError(t, err)

	expected, expectedBump, err := solana.FindProgramAddressAndBump(program, []byte("metadata"), program, mint)
	require.NoError(t, err)
	assert.EqualValues(t, expected, actual)
	assert.Equal(t, expectedBump, bump)

	standard, _, err := GetMetadataAddress(&GetMetadataAddressArgs{
		Mint: mint,
	})
	require.NoError(t, err)
	assert.NotEqual(t, standard, actual)
}

func TestGetMetadataAddress_InvalidMint(t *testing.T) {
	_, _, err := GetMetadataAddress(&GetMetadataAddressArgs{})
	assert.ErrorIs(t, err, solana.ErrInvalidAddress)

	_, _, err = GetMetadataAddress(&GetMetadataAddressArgs{
		Mint: make([]byte, 16),
	})
	assert.ErrorIs(t, err, solana.ErrInvalidAddress)
}
