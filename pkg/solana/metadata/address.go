package metadata

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/xyber-labs/xyber-server/pkg/solana"
)

var (
	MetadataPrefix = []byte("metadata")
)

type GetMetadataAddressArgs struct {
	Mint ed25519.PublicKey

	// Program overrides PROGRAM_ID, which is used when not provided.
	Program ed25519.PublicKey
}

// GetMetadataAddress returns the token metadata account for a mint. The
// program id is both a seed and the deriving program.
func GetMetadataAddress(args *GetMetadataAddressArgs) (ed25519.PublicKey, uint8, error) {
	if len(args.Mint) != ed25519.PublicKeySize {
		return nil, 0, errors.Wrap(solana.ErrInvalidAddress, "invalid mint")
	}

	program := args.Program
	if program == nil {
		program = PROGRAM_ID
	}

	return solana.FindProgramAddressAndBump(
		program,
		MetadataPrefix,
		program,
		args.Mint,
	)
}
