package xyber

import (
	"bytes"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/xyber-labs/xyber-server/pkg/solana"
	"github.com/xyber-labs/xyber-server/pkg/solana/metadata"
)

var (
	ErrInvalidProgramConfig = errors.New("invalid program config")
)

// Changing any of these is a breaking protocol change. Every address derived
// from them would need to be derived again.
var (
	PROGRAM_ADDRESS               = "8FydojysL5DJ8M3s15JLFEbsKzyQ1BcFgSMVDvJetEEq"
	TOKEN_FACTORY_PROGRAM_ADDRESS = "851Ez1PDMZY4yGYahRba87g7CYtmCfD8v5TP85cGj95p"
	PAYMENT_MINT_ADDRESS          = "6WQQPDXsBxkgMwuApkXbV2bUf3CZAJmGBDqk62aMpmKR"

	PROGRAM_ID               = ed25519.PublicKey(solana.MustPublicKeyFromBase58(PROGRAM_ADDRESS))
	TOKEN_FACTORY_PROGRAM_ID = ed25519.PublicKey(solana.MustPublicKeyFromBase58(TOKEN_FACTORY_PROGRAM_ADDRESS))
	PAYMENT_MINT             = ed25519.PublicKey(solana.MustPublicKeyFromBase58(PAYMENT_MINT_ADDRESS))
)

// ProgramConfig holds the on-chain identifiers addresses are derived against
type ProgramConfig struct {
	// ApplicationProgram derives the core and per-token state accounts
	ApplicationProgram ed25519.PublicKey

	// TokenFactoryProgram derives token mints
	TokenFactoryProgram ed25519.PublicKey

	// MetadataProgram derives token metadata accounts
	MetadataProgram ed25519.PublicKey

	// PaymentMint is the mint of the token used to buy and sell
	PaymentMint ed25519.PublicKey
}

// DefaultProgramConfig returns the production program configuration
func DefaultProgramConfig() *ProgramConfig {
	return &ProgramConfig{
		ApplicationProgram:  PROGRAM_ID,
		TokenFactoryProgram: TOKEN_FACTORY_PROGRAM_ID,
		MetadataProgram:     metadata.PROGRAM_ID,
		PaymentMint:         PAYMENT_MINT,
	}
}

func (c *ProgramConfig) Validate() error {
	if c == nil {
		return errors.Wrap(ErrInvalidProgramConfig, "config is nil")
	}

	for _, field := range []struct {
		name  string
		value ed25519.PublicKey
	}{
		{"application program", c.ApplicationProgram},
		{"token factory program", c.TokenFactoryProgram},
		{"metadata program", c.MetadataProgram},
		{"payment mint", c.PaymentMint},
	} {
		if len(field.value) != ed25519.PublicKeySize {
			return errors.Wrapf(ErrInvalidProgramConfig, "%s must be %d bytes, got %d", field.name, ed25519.PublicKeySize, len(field.value))
		}
	}

	return nil
}

func (c *ProgramConfig) Equals(other *ProgramConfig) bool {
	if c == nil || other == nil {
		return c == other
	}

	return bytes.Equal(c.ApplicationProgram, other.ApplicationProgram) &&
		bytes.Equal(c.TokenFactoryProgram, other.TokenFactoryProgram) &&
		bytes.Equal(c.MetadataProgram, other.MetadataProgram) &&
		bytes.Equal(c.PaymentMint, other.PaymentMint)
}

func (c *ProgramConfig) String() string {
	return "ProgramConfig{" +
		"application=" + base58.Encode(c.ApplicationProgram) +
		", token_factory=" + base58.Encode(c.TokenFactoryProgram) +
		", metadata=" + base58.Encode(c.MetadataProgram) +
		", payment_mint=" + base58.Encode(c.PaymentMint) +
		"}"
}
