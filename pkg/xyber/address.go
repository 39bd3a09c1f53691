package xyber

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/xyber-labs/xyber-server/pkg/solana"
	"github.com/xyber-labs/xyber-server/pkg/solana/metadata"
	"github.com/xyber-labs/xyber-server/pkg/solana/token"
)

var (
	CorePrefix  = []byte("xyber_core")
	TokenPrefix = []byte("xyber_token")
	MintPrefix  = []byte("MINT")
)

type GetCoreAddressArgs struct {
	Program ed25519.PublicKey
}

// GetCoreAddress returns the global state account shared by all tokens
func GetCoreAddress(args *GetCoreAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		args.Program,
		CorePrefix,
	)
}

type GetTokenAddressArgs struct {
	Program ed25519.PublicKey
	Creator ed25519.PublicKey
	Seed    ed25519.PublicKey
}

// GetTokenAddress returns the per-token state account, which also owns the
// token's escrow and vault accounts
func GetTokenAddress(args *GetTokenAddressArgs) (ed25519.PublicKey, uint8, error) {
	if err := validateAddresses(args.Creator, args.Seed); err != nil {
		return nil, 0, err
	}

	return solana.FindProgramAddressAndBump(
		args.Program,
		TokenPrefix,
		args.Creator,
		args.Seed,
	)
}

type GetMintAddressArgs struct {
	TokenFactoryProgram ed25519.PublicKey
	Seed                ed25519.PublicKey
}

func GetMintAddress(args *GetMintAddressArgs) (ed25519.PublicKey, uint8, error) {
	if err := validateAddresses(args.Seed); err != nil {
		return nil, 0, err
	}

	return solana.FindProgramAddressAndBump(
		args.TokenFactoryProgram,
		MintPrefix,
		args.Seed,
	)
}

type GetMetadataAddressArgs struct {
	MetadataProgram ed25519.PublicKey
	Mint            ed25519.PublicKey
}

func GetMetadataAddress(args *GetMetadataAddressArgs) (ed25519.PublicKey, uint8, error) {
	if len(args.MetadataProgram) != ed25519.PublicKeySize {
		return nil, 0, solana.ErrInvalidProgramID
	}

	return metadata.GetMetadataAddress(&metadata.GetMetadataAddressArgs{
		Mint:    args.Mint,
		Program: args.MetadataProgram,
	})
}

type GetAssociatedAccountsArgs struct {
	Creator     ed25519.PublicKey
	Mint        ed25519.PublicKey
	Token       ed25519.PublicKey
	PaymentMint ed25519.PublicKey
}

type AssociatedAccounts struct {
	// Held by the creator
	CreatorTokenAccount   ed25519.PublicKey
	CreatorPaymentAccount ed25519.PublicKey

	// Held by the token state account, which is a PDA
	EscrowTokenAccount ed25519.PublicKey
	VaultTokenAccount  ed25519.PublicKey
}

// GetAssociatedAccounts returns the creator's and the token state account's
// associated token accounts for the token and payment mints
func GetAssociatedAccounts(args *GetAssociatedAccountsArgs) (*AssociatedAccounts, error) {
	var res AssociatedAccounts
	for _, account := range []struct {
		name string
		args *token.GetAssociatedAccountAddressArgs
		dst  *ed25519.PublicKey
	}{
		{
			name: "creator token account",
			args: &token.GetAssociatedAccountAddressArgs{Owner: args.Creator, Mint: args.Mint},
			dst:  &res.CreatorTokenAccount,
		},
		{
			name: "creator payment account",
			args: &token.GetAssociatedAccountAddressArgs{Owner: args.Creator, Mint: args.PaymentMint},
			dst:  &res.CreatorPaymentAccount,
		},
		{
			name: "escrow token account",
			args: &token.GetAssociatedAccountAddressArgs{Owner: args.Token, Mint: args.PaymentMint, AllowOwnerOffCurve: true},
			dst:  &res.EscrowTokenAccount,
		},
		{
			name: "vault token account",
			args: &token.GetAssociatedAccountAddressArgs{Owner: args.Token, Mint: args.Mint, AllowOwnerOffCurve: true},
			dst:  &res.VaultTokenAccount,
		},
	} {
		address, err := token.GetAssociatedAccountAddress(account.args)
		if err != nil {
			return nil, errors.Wrapf(err, "error deriving %s", account.name)
		}
		*account.dst = address
	}

	return &res, nil
}

func validateAddresses(addresses ...ed25519.PublicKey) error {
	for _, address := range addresses {
		if len(address) != ed25519.PublicKeySize {
			return solana.ErrInvalidAddress
		}
	}
	return nil
}
