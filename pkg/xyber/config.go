package xyber

import (
	"context"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/xyber-labs/xyber-server/pkg/config"
	"github.com/xyber-labs/xyber-server/pkg/config/env"
	"github.com/xyber-labs/xyber-server/pkg/solana/metadata"
)

const (
	envConfigPrefix = "XYBER_"

	ApplicationProgramConfigEnvName  = envConfigPrefix + "PROGRAM_ID"
	TokenFactoryProgramConfigEnvName = envConfigPrefix + "TOKEN_FACTORY_PROGRAM_ID"
	MetadataProgramConfigEnvName     = envConfigPrefix + "METADATA_PROGRAM_ID"
	PaymentMintConfigEnvName         = envConfigPrefix + "PAYMENT_MINT"
)

// ProgramConfigSource provides the individually configurable program identifiers
type ProgramConfigSource struct {
	ApplicationProgram  config.PublicKey
	TokenFactoryProgram config.PublicKey
	MetadataProgram     config.PublicKey
	PaymentMint         config.PublicKey
}

// NewEnvProgramConfigSource returns a source reading identifiers from the
// environment, defaulting to the production values.
func NewEnvProgramConfigSource() *ProgramConfigSource {
	return &ProgramConfigSource{
		ApplicationProgram:  env.NewPublicKeyConfig(ApplicationProgramConfigEnvName, PROGRAM_ID),
		TokenFactoryProgram: env.NewPublicKeyConfig(TokenFactoryProgramConfigEnvName, TOKEN_FACTORY_PROGRAM_ID),
		MetadataProgram:     env.NewPublicKeyConfig(MetadataProgramConfigEnvName, metadata.PROGRAM_ID),
		PaymentMint:         env.NewPublicKeyConfig(PaymentMintConfigEnvName, PAYMENT_MINT),
	}
}

// LoadProgramConfig reads and validates a ProgramConfig from source
func LoadProgramConfig(ctx context.Context, source *ProgramConfigSource) (*ProgramConfig, error) {
	if source == nil {
		return nil, errors.Wrap(ErrInvalidProgramConfig, "source is nil")
	}

	var conf ProgramConfig
	for _, field := range []struct {
		name   string
		source config.PublicKey
		dst    *ed25519.PublicKey
	}{
		{ApplicationProgramConfigEnvName, source.ApplicationProgram, &conf.ApplicationProgram},
		{TokenFactoryProgramConfigEnvName, source.TokenFactoryProgram, &conf.TokenFactoryProgram},
		{MetadataProgramConfigEnvName, source.MetadataProgram, &conf.MetadataProgram},
		{PaymentMintConfigEnvName, source.PaymentMint, &conf.PaymentMint},
	} {
		if field.source == nil {
			return nil, errors.Wrapf(ErrInvalidProgramConfig, "%s source is nil", field.name)
		}

		value, err := field.source.GetSafe(ctx)
		if err != nil {
			return nil, errors.Wrapf(err, "error loading %s", field.name)
		}
		*field.dst = value
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

// Shutdown releases the resources of every underlying config
func (s *ProgramConfigSource) Shutdown() {
	for _, c := range []config.PublicKey{s.ApplicationProgram, s.TokenFactoryProgram, s.MetadataProgram, s.PaymentMint} {
		if c != nil {
			c.Shutdown()
		}
	}
}
