package xyber

import (
	"context"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/xyber-labs/xyber-server/pkg/solana"
)

var (
	// ErrIdentityMissing indicates there is no authenticated identity to derive
	// addresses for
	ErrIdentityMissing = errors.New("identity missing")

	// ErrInvalidIdentity indicates the identity isn't a well-formed address
	ErrInvalidIdentity = errors.New("invalid identity")
)

// IdentityProvider supplies the currently authenticated identity, typically a
// connected wallet. A nil identity, or ErrIdentityMissing, indicates there is
// none. Implementations may block until the identity is available, and should
// respect ctx cancellation while doing so.
type IdentityProvider interface {
	GetIdentity(ctx context.Context) (ed25519.PublicKey, error)
}

type staticIdentityProvider struct {
	identity ed25519.PublicKey
}

// NewStaticIdentityProvider returns an IdentityProvider that always yields
// identity. A nil identity results in ErrIdentityMissing.
func NewStaticIdentityProvider(identity ed25519.PublicKey) IdentityProvider {
	return &staticIdentityProvider{
		identity: identity,
	}
}

// GetIdentity implements IdentityProvider.GetIdentity
func (p *staticIdentityProvider) GetIdentity(_ context.Context) (ed25519.PublicKey, error) {
	if len(p.identity) == 0 {
		return nil, ErrIdentityMissing
	}
	return p.identity, nil
}

// IdentityProviderFunc adapts a function to an IdentityProvider
type IdentityProviderFunc func(ctx context.Context) (ed25519.PublicKey, error)

// GetIdentity implements IdentityProvider.GetIdentity
func (f IdentityProviderFunc) GetIdentity(ctx context.Context) (ed25519.PublicKey, error) {
	return f(ctx)
}

// resolveIdentity fetches and re-validates the identity, rather than trusting
// prior validation by the provider.
func resolveIdentity(ctx context.Context, provider IdentityProvider) (ed25519.PublicKey, error) {
	if provider == nil {
		return nil, ErrIdentityMissing
	}

	identity, err := provider.GetIdentity(ctx)
	if errors.Is(err, ErrIdentityMissing) {
		return nil, ErrIdentityMissing
	} else if err != nil {
		return nil, errors.Wrap(err, "error getting identity")
	}

	return validateIdentity(identity)
}

func validateIdentity(identity ed25519.PublicKey) (ed25519.PublicKey, error) {
	if len(identity) == 0 {
		return nil, ErrIdentityMissing
	}

	if len(identity) != ed25519.PublicKeySize {
		return nil, errors.Wrapf(ErrInvalidIdentity, "expected %d bytes, got %d", ed25519.PublicKeySize, len(identity))
	}

	// Identities are wallets, so there must be a private key for them
	if !solana.IsOnCurve(identity) {
		return nil, errors.Wrap(ErrInvalidIdentity, "identity is off curve")
	}

	return identity, nil
}
