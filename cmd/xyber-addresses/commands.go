package main

import (
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"io"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/xyber-labs/xyber-server/pkg/solana"
	"github.com/xyber-labs/xyber-server/pkg/solana/token"
	"github.com/xyber-labs/xyber-server/pkg/xyber"
)

const (
	base58SeedPrefix = "base58:"
	hexSeedPrefix    = "hex:"
)

func newDeriveCmd() *cobra.Command {
	var identity, assetSeed string
	var generateAssetSeed bool

	c := &cobra.Command{
		Use:   "derive",
		Short: "Derive every address of a token launched by an identity",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			source := xyber.NewEnvProgramConfigSource()
			defer source.Shutdown()

			conf, err := xyber.LoadProgramConfig(c.Context(), source)
			if err != nil {
				return err
			}

			deriver, err := xyber.NewDeriver(conf)
			if err != nil {
				return err
			}

			var identityKey ed25519.PublicKey
			if len(identity) > 0 {
				identityKey, err = solana.PublicKeyFromBase58(identity)
				if err != nil {
					return errors.Wrap(err, "invalid identity")
				}
			}

			out := make(map[string]interface{})

			var seedKey ed25519.PublicKey
			switch {
			case generateAssetSeed && len(assetSeed) > 0:
				return errors.New("--asset-seed and --generate-asset-seed are mutually exclusive")
			case generateAssetSeed:
				pub, priv, err := ed25519.GenerateKey(nil)
				if err != nil {
					return errors.Wrap(err, "error generating asset seed")
				}
				seedKey = pub

				// The keypair must be kept to sign for the mint's creation
				out["assetSeedPrivateKey"] = base58.Encode(priv)
			case len(assetSeed) > 0:
				seedKey, err = solana.PublicKeyFromBase58(assetSeed)
				if err != nil {
					return errors.Wrap(err, "invalid asset seed")
				}
			default:
				return errors.New("one of --asset-seed or --generate-asset-seed is required")
			}

			addresses, err := deriver.Derive(c.Context(), xyber.NewStaticIdentityProvider(identityKey), seedKey)
			if err != nil {
				return err
			}

			out["assetSeed"] = base58.Encode(seedKey)
			out["addresses"] = addresses.ToBase58()
			out["bumps"] = map[string]uint8{
				"core":     addresses.CoreBump,
				"token":    addresses.TokenBump,
				"mint":     addresses.MintBump,
				"metadata": addresses.MetadataBump,
			}
			return writeJSON(c.OutOrStdout(), out)
		},
	}

	c.Flags().StringVar(&identity, "identity", "", "base58 address of the token creator's wallet")
	c.Flags().StringVar(&assetSeed, "asset-seed", "", "base58 public key of the token's seed keypair")
	c.Flags().BoolVar(&generateAssetSeed, "generate-asset-seed", false, "generate a new seed keypair for the token")
	return c
}

func newProgramAddressCmd() *cobra.Command {
	var program string
	var seeds []string

	c := &cobra.Command{
		Use:   "pda",
		Short: "Derive a program address and its canonical bump",
		Long: "Derive a program address and its canonical bump. Seeds are UTF-8 strings unless " +
			"prefixed with " + base58SeedPrefix + " or " + hexSeedPrefix + ".",
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			programID, err := solana.PublicKeyFromBase58(program)
			if err != nil {
				return errors.Wrap(err, "invalid program")
			}

			decoded, err := parseSeeds(seeds)
			if err != nil {
				return err
			}

			address, bump, err := solana.FindProgramAddressAndBump(programID, decoded...)
			if err != nil {
				return err
			}

			return writeJSON(c.OutOrStdout(), map[string]interface{}{
				"address": base58.Encode(address),
				"bump":    bump,
			})
		},
	}

	c.Flags().StringVar(&program, "program", xyber.PROGRAM_ADDRESS, "base58 program id")
	c.Flags().StringArrayVar(&seeds, "seed", nil, "seed, in order (repeatable)")
	return c
}

func newAssociatedAccountCmd() *cobra.Command {
	var owner, mint, tokenProgram string
	var allowOwnerOffCurve bool

	c := &cobra.Command{
		Use:   "ata",
		Short: "Derive the associated token account of an owner and mint",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			args := &token.GetAssociatedAccountAddressArgs{
				AllowOwnerOffCurve: allowOwnerOffCurve,
			}

			var err error
			for _, field := range []struct {
				name  string
				value string
				dst   *ed25519.PublicKey
			}{
				{"owner", owner, &args.Owner},
				{"mint", mint, &args.Mint},
				{"token program", tokenProgram, &args.TokenProgram},
			} {
				*field.dst, err = solana.PublicKeyFromBase58(field.value)
				if err != nil {
					return errors.Wrapf(err, "invalid %s", field.name)
				}
			}

			address, err := token.GetAssociatedAccountAddress(args)
			if err != nil {
				return err
			}

			return writeJSON(c.OutOrStdout(), map[string]interface{}{
				"address": base58.Encode(address),
			})
		},
	}

	c.Flags().StringVar(&owner, "owner", "", "base58 address of the account owner")
	c.Flags().StringVar(&mint, "mint", xyber.PAYMENT_MINT_ADDRESS, "base58 address of the mint")
	c.Flags().StringVar(&tokenProgram, "token-program", base58.Encode(token.ProgramKey), "base58 token program id")
	c.Flags().BoolVar(&allowOwnerOffCurve, "allow-owner-off-curve", false, "allow program derived owners")
	return c
}

func parseSeeds(seeds []string) ([][]byte, error) {
	res := make([][]byte, len(seeds))
	for i, seed := range seeds {
		var err error
		switch {
		case strings.HasPrefix(seed, base58SeedPrefix):
			res[i], err = base58.Decode(strings.TrimPrefix(seed, base58SeedPrefix))
		case strings.HasPrefix(seed, hexSeedPrefix):
			res[i], err = hex.DecodeString(strings.TrimPrefix(seed, hexSeedPrefix))
		default:
			res[i] = []byte(seed)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "invalid seed at %d", i)
		}
	}
	return res, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
