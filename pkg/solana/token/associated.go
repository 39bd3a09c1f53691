package token

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/xyber-labs/xyber-server/pkg/solana"
)

// AssociatedTokenAccountProgramKey  is the address of the associated token account program that should be used.
//
// Current key: ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL
var AssociatedTokenAccountProgramKey = ed25519.PublicKey{140, 151, 37, 143, 78, 36, 137, 241, 187, 61, 16, 41, 20, 142, 13, 131, 11, 90, 19, 153, 218, 255, 16, 132, 4, 142, 123, 216, 219, 233, 248, 89}

var (
	// ErrOwnerOffCurve indicates the owner of an associated account isn't a
	// wallet address, and the caller didn't opt into program owned accounts.
	ErrOwnerOffCurve = errors.New("token owner is off curve")
)

type GetAssociatedAccountAddressArgs struct {
	Owner ed25519.PublicKey
	Mint  ed25519.PublicKey

	// TokenProgram owning the mint. ProgramKey is used when not provided.
	TokenProgram ed25519.PublicKey

	// AllowOwnerOffCurve permits owners without a private key, such as PDAs
	// acting as escrows or vaults.
	AllowOwnerOffCurve bool
}

// GetAssociatedAccountAddress returns the associated account address for an
// owner and mint.
func GetAssociatedAccountAddress(args *GetAssociatedAccountAddressArgs) (ed25519.PublicKey, error) {
	if len(args.Owner) != ed25519.PublicKeySize {
		return nil, errors.Wrap(solana.ErrInvalidAddress, "invalid owner")
	}
	if len(args.Mint) != ed25519.PublicKeySize {
		return nil, errors.Wrap(solana.ErrInvalidAddress, "invalid mint")
	}

	tokenProgram := args.TokenProgram
	if tokenProgram == nil {
		tokenProgram = ProgramKey
	}
	if len(tokenProgram) != ed25519.PublicKeySize {
		return nil, errors.Wrap(solana.ErrInvalidProgramID, "invalid token program")
	}

	if !args.AllowOwnerOffCurve && !solana.IsOnCurve(args.Owner) {
		return nil, ErrOwnerOffCurve
	}

	return solana.FindProgramAddress(
		AssociatedTokenAccountProgramKey,
		args.Owner,
		tokenProgram,
		args.Mint,
	)
}

// GetAssociatedAccount returns the associated account address for an SPL token
// held by a wallet.
//
// Reference: https://spl.solana.com/associated-token-account#finding-the-associated-token-account-address
func GetAssociatedAccount(wallet, mint ed25519.PublicKey) (ed25519.PublicKey, error) {
	return GetAssociatedAccountAddress(&GetAssociatedAccountAddressArgs{
		Owner: wallet,
		Mint:  mint,
	})
}
