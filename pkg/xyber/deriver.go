package xyber

import (
	"context"
	"crypto/ed25519"
	"time"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/xyber-labs/xyber-server/pkg/metrics"
	"github.com/xyber-labs/xyber-server/pkg/solana"
)

const (
	metricsStructName = "xyber.deriver"

	deriveSuccessMetricName  = "Xyber/Deriver/DeriveSuccess"
	deriveDurationMetricName = "Xyber/Deriver/DeriveDuration"
	deriveFailureEventName   = "XyberDeriveFailure"
)

// ProgramAddresses are the addresses derived directly from the application's
// programs. Bumps are required by instructions that re-derive the address on
// chain.
type ProgramAddresses struct {
	Core     ed25519.PublicKey
	CoreBump uint8

	Token     ed25519.PublicKey
	TokenBump uint8

	Mint     ed25519.PublicKey
	MintBump uint8

	Metadata     ed25519.PublicKey
	MetadataBump uint8
}

// AddressSet is the complete set of addresses for a single token launched by
// an identity
type AddressSet struct {
	ProgramAddresses
	AssociatedAccounts
}

// ToBase58 returns each named address in its base58 encoding
func (s *AddressSet) ToBase58() map[string]string {
	return map[string]string{
		"core":                  base58.Encode(s.Core),
		"token":                 base58.Encode(s.Token),
		"mint":                  base58.Encode(s.Mint),
		"metadata":              base58.Encode(s.Metadata),
		"creatorTokenAccount":   base58.Encode(s.CreatorTokenAccount),
		"creatorPaymentAccount": base58.Encode(s.CreatorPaymentAccount),
		"escrowTokenAccount":    base58.Encode(s.EscrowTokenAccount),
		"vaultTokenAccount":     base58.Encode(s.VaultTokenAccount),
	}
}

// Deriver derives the application's addresses against a fixed program
// configuration. It holds no mutable state and is safe for concurrent use.
type Deriver struct {
	log  *logrus.Entry
	conf *ProgramConfig
}

func NewDeriver(conf *ProgramConfig) (*Deriver, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	return &Deriver{
		log:  logrus.StandardLogger().WithField("type", "xyber/deriver"),
		conf: conf,
	}, nil
}

// Derive derives the full AddressSet for the identity currently supplied by
// provider, and the public key of the token's seed keypair.
//
// ErrIdentityMissing is returned when there is no identity. No partial result
// is ever returned.
func (d *Deriver) Derive(ctx context.Context, provider IdentityProvider, assetSeed ed25519.PublicKey) (*AddressSet, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "Derive")
	defer tracer.End()

	start := time.Now()

	log := d.log.WithField("method", "Derive")

	identity, err := resolveIdentity(ctx, provider)
	if err != nil {
		log.WithError(err).Warn("failure resolving identity")
		d.onFailure(ctx, tracer, "Derive", err)
		return nil, err
	}

	res, err := d.derive(ctx, log, identity, assetSeed)
	if err != nil {
		d.onFailure(ctx, tracer, "Derive", err)
		return nil, err
	}

	d.onSuccess(ctx, start)
	return res, nil
}

// DeriveForIdentity is like Derive, for an identity that's already known.
func (d *Deriver) DeriveForIdentity(ctx context.Context, identity, assetSeed ed25519.PublicKey) (*AddressSet, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "DeriveForIdentity")
	defer tracer.End()

	start := time.Now()

	log := d.log.WithField("method", "DeriveForIdentity")

	identity, err := validateIdentity(identity)
	if err != nil {
		log.WithError(err).Warn("invalid identity")
		d.onFailure(ctx, tracer, "DeriveForIdentity", err)
		return nil, err
	}

	res, err := d.derive(ctx, log, identity, assetSeed)
	if err != nil {
		d.onFailure(ctx, tracer, "DeriveForIdentity", err)
		return nil, err
	}

	d.onSuccess(ctx, start)
	return res, nil
}

func (d *Deriver) derive(ctx context.Context, log *logrus.Entry, identity, assetSeed ed25519.PublicKey) (*AddressSet, error) {
	log = log.WithField("identity", base58.Encode(identity))

	pdas, err := d.DerivePDAs(ctx, identity, assetSeed)
	if err != nil {
		log.WithError(err).Warn("failure deriving program addresses")
		return nil, err
	}

	associated, err := d.DeriveAssociatedAccounts(ctx, identity, pdas.Mint, pdas.Token)
	if err != nil {
		log.WithError(err).Warn("failure deriving associated accounts")
		return nil, err
	}

	// Nothing is persisted, but a cancelled caller never observes a result
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &AddressSet{
		ProgramAddresses:   *pdas,
		AssociatedAccounts: *associated,
	}
	log.WithFields(logrus.Fields{
		"token": base58.Encode(res.Token),
		"mint":  base58.Encode(res.Mint),
	}).Debug("derived address set")
	return res, nil
}

// DerivePDAs derives the addresses owned by the application's programs. Core,
// token and mint don't depend on each other and are derived concurrently;
// metadata waits on the mint.
func (d *Deriver) DerivePDAs(ctx context.Context, identity, assetSeed ed25519.PublicKey) (*ProgramAddresses, error) {
	if len(identity) != ed25519.PublicKeySize {
		return nil, errors.Wrap(ErrInvalidIdentity, "identity must be 32 bytes")
	}
	if len(assetSeed) != ed25519.PublicKeySize {
		return nil, errors.Wrap(solana.ErrInvalidAddress, "asset seed must be 32 bytes")
	}

	var res ProgramAddresses

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gCtx.Err(); err != nil {
			return err
		}

		var err error
		res.Core, res.CoreBump, err = GetCoreAddress(&GetCoreAddressArgs{
			Program: d.conf.ApplicationProgram,
		})
		return errors.Wrap(err, "error deriving core address")
	})
	g.Go(func() error {
		if err := gCtx.Err(); err != nil {
			return err
		}

		var err error
		res.Token, res.TokenBump, err = GetTokenAddress(&GetTokenAddressArgs{
			Program: d.conf.ApplicationProgram,
			Creator: identity,
			Seed:    assetSeed,
		})
		return errors.Wrap(err, "error deriving token address")
	})
	g.Go(func() error {
		if err := gCtx.Err(); err != nil {
			return err
		}

		var err error
		res.Mint, res.MintBump, err = GetMintAddress(&GetMintAddressArgs{
			TokenFactoryProgram: d.conf.TokenFactoryProgram,
			Seed:                assetSeed,
		})
		return errors.Wrap(err, "error deriving mint address")
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var err error
	res.Metadata, res.MetadataBump, err = GetMetadataAddress(&GetMetadataAddressArgs{
		MetadataProgram: d.conf.MetadataProgram,
		Mint:            res.Mint,
	})
	if err != nil {
		return nil, errors.Wrap(err, "error deriving metadata address")
	}

	return &res, nil
}

// DeriveAssociatedAccounts derives the associated token accounts for a token
// whose mint and state account have already been derived.
func (d *Deriver) DeriveAssociatedAccounts(ctx context.Context, identity, mint, token ed25519.PublicKey) (*AssociatedAccounts, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return GetAssociatedAccounts(&GetAssociatedAccountsArgs{
		Creator:     identity,
		Mint:        mint,
		Token:       token,
		PaymentMint: d.conf.PaymentMint,
	})
}

// ProgramConfig returns the configuration addresses are derived against
func (d *Deriver) ProgramConfig() *ProgramConfig {
	return d.conf
}

func (d *Deriver) onSuccess(ctx context.Context, start time.Time) {
	metrics.RecordCount(ctx, deriveSuccessMetricName, 1)
	metrics.RecordDuration(ctx, deriveDurationMetricName, time.Since(start))
}

func (d *Deriver) onFailure(ctx context.Context, tracer *metrics.MethodTracer, method string, err error) {
	tracer.OnError(err)
	metrics.RecordEvent(ctx, deriveFailureEventName, map[string]interface{}{
		"method": method,
		"error":  err.Error(),
	})
}
