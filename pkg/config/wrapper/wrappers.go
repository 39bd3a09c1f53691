package wrapper

import (
	"context"
	"crypto/ed25519"
	"sync"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/xyber-labs/xyber-server/pkg/config"
)

var (
	// ErrUnsuportedConversion indicates the wrapper does not implement conversion from the source type
	ErrUnsuportedConversion = errors.New("config: wrapper conversion from source type not implemented")

	// ErrInvalidPublicKey indicates the source value isn't a 32 byte address
	ErrInvalidPublicKey = errors.New("config: value is not a valid public key")
)

// PublicKeyConfig is a utility wrapper for an address config. Sources may
// provide raw 32 byte keys, or base58 encoded strings.
type PublicKeyConfig struct {
	config       config.Config
	defaultValue ed25519.PublicKey

	stateMu   sync.RWMutex
	lastValue ed25519.PublicKey
}

// NewPublicKeyConfig returns a new address config utility wrapper
func NewPublicKeyConfig(config config.Config, defaultValue ed25519.PublicKey) config.PublicKey {
	return &PublicKeyConfig{
		config:       config,
		defaultValue: defaultValue,
		lastValue:    defaultValue,
	}
}

// GetSafe gets a config value and propagates any errors that arise. A best-effort
// attempt is made to return the last known value
func (c *PublicKeyConfig) GetSafe(ctx context.Context) (ed25519.PublicKey, error) {
	override, err := c.config.Get(ctx)
	c.stateMu.RLock()
	lastValue := c.lastValue
	c.stateMu.RUnlock()
	if err == config.ErrNoValue {
		c.set(c.defaultValue)
		return c.defaultValue, nil
	} else if err != nil {
		return lastValue, err
	}

	var newValue ed25519.PublicKey
	switch override := override.(type) {
	case ed25519.PublicKey:
		newValue = override
	case []byte:
		// Environment sources always yield bytes, which are the base58 text
		newValue, err = decodePublicKey(string(override))
	case string:
		newValue, err = decodePublicKey(override)
	default:
		return lastValue, ErrUnsuportedConversion
	}
	if err != nil {
		return lastValue, err
	}
	if len(newValue) != ed25519.PublicKeySize {
		return lastValue, ErrInvalidPublicKey
	}

	c.set(newValue)
	return newValue, nil
}

// Get is a wrapper for GetSafe that ignores the returned error
func (c *PublicKeyConfig) Get(ctx context.Context) ed25519.PublicKey {
	val, _ := c.GetSafe(ctx)
	return val
}

// Shutdown signals the config to stop all underlying resources
func (c *PublicKeyConfig) Shutdown() {
	c.config.Shutdown()
}

func (c *PublicKeyConfig) set(value ed25519.PublicKey) {
	c.stateMu.Lock()
	c.lastValue = value
	c.stateMu.Unlock()
}

func decodePublicKey(value string) (ed25519.PublicKey, error) {
	decoded, err := base58.Decode(value)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidPublicKey, err.Error())
	}
	return decoded, nil
}
