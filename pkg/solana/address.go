package solana

import (
	"crypto/ed25519"
	"math"

	"filippo.io/edwards25519"
	"github.com/minio/sha256-simd"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

const (
	maxSeeds      = 16
	maxSeedLength = 32

	programDerivedAddressMarker = "ProgramDerivedAddress"
)

var (
	ErrTooManySeeds          = errors.New("too many seeds")
	ErrMaxSeedLengthExceeded = errors.New("max seed length exceeded")
	ErrInvalidProgramID      = errors.New("invalid program id")
	ErrInvalidAddress        = errors.New("invalid address")

	ErrInvalidPublicKey = errors.New("invalid public key")
	ErrNoValidBumpFound = errors.New("no valid bump seed found")
)

var (
	programHashCtor = sha256.New
)

// CreateProgramAddress mirrors the implementation of the Solana SDK's CreateProgramAddress.
//
// ProgramAddresses are public keys that _do not_ lie on the ed25519 curve to ensure that
// there is no associated private key. In the event that the program and seed parameters
// result in a valid public key, ErrInvalidPublicKey is returned.
//
// Reference: https://github.com/solana-labs/solana/blob/5548e599fe4920b71766e0ad1d121755ce9c63d5/sdk/program/src/pubkey.rs#L158
func CreateProgramAddress(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, error) {
	if err := validateProgramAddressInputs(program, seeds); err != nil {
		return nil, err
	}

	return createProgramAddress(program, seeds)
}

func createProgramAddress(program ed25519.PublicKey, seeds [][]byte) (ed25519.PublicKey, error) {
	h := programHashCtor()
	for _, s := range seeds {
		if _, err := h.Write(s); err != nil {
			return nil, errors.Wrap(err, "failed to hash seed")
		}
	}

	for _, v := range [][]byte{program, []byte(programDerivedAddressMarker)} {
		if _, err := h.Write(v); err != nil {
			return nil, errors.Wrap(err, "failed to hash seed")
		}
	}

	hash := h.Sum(nil)
	var pub [ed25519.PublicKeySize]byte
	copy(pub[:], hash)

	// Following the Solana SDK, we _reject_ the generated public key if it's a
	// valid compressed EdwardsPoint.
	//
	// Reference: https://github.com/solana-labs/solana/blob/5548e599fe4920b71766e0ad1d121755ce9c63d5/sdk/program/src/pubkey.rs#L182-L187
	if IsOnCurve(pub[:]) {
		return nil, ErrInvalidPublicKey
	}

	return pub[:], nil
}

// FindProgramAddressAndBump mirrors the implementation of the Solana SDK's
// FindProgramAddress. It returns the address and bump seed.
//
// Bumps are tried from 255 down to 0, and the first off-curve candidate is the
// canonical address. ErrNoValidBumpFound is returned if every candidate lies on
// the curve.
//
// Reference: https://github.com/solana-labs/solana/blob/5548e599fe4920b71766e0ad1d121755ce9c63d5/sdk/program/src/pubkey.rs#L234
func FindProgramAddressAndBump(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, uint8, error) {
	// The bump occupies the last seed slot
	if len(seeds) >= maxSeeds {
		return nil, 0, ErrTooManySeeds
	}
	if err := validateProgramAddressInputs(program, seeds); err != nil {
		return nil, 0, err
	}

	bumpSeed := []byte{math.MaxUint8}
	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	withBump[len(seeds)] = bumpSeed

	for {
		pub, err := createProgramAddress(program, withBump)
		if err == nil {
			return pub, bumpSeed[0], nil
		}
		if err != ErrInvalidPublicKey {
			return nil, 0, err
		}

		if bumpSeed[0] == 0 {
			break
		}
		bumpSeed[0]--
	}

	return nil, 0, ErrNoValidBumpFound
}

// FindProgramAddress mirrors the implementation of the Solana SDK's FindProgramAddress.
// It only returns the address.
//
// Reference: https://github.com/solana-labs/solana/blob/5548e599fe4920b71766e0ad1d121755ce9c63d5/sdk/program/src/pubkey.rs#L234
func FindProgramAddress(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, error) {
	pub, _, err := FindProgramAddressAndBump(program, seeds...)
	return pub, err
}

// IsOnCurve reports whether b is a valid compressed Edwards25519 point.
//
// Non-canonical encodings are accepted, matching curve25519-dalek's
// CompressedEdwardsY::decompress used by the Solana runtime.
func IsOnCurve(b []byte) bool {
	if len(b) != ed25519.PublicKeySize {
		return false
	}

	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}

// PublicKeyFromBase58 decodes a base58 encoded 32 byte address.
func PublicKeyFromBase58(value string) (ed25519.PublicKey, error) {
	decoded, err := base58.Decode(value)
	if err != nil {
		return nil, errors.Wrap(err, "error decoding string as base58")
	}

	if len(decoded) != ed25519.PublicKeySize {
		return nil, errors.Wrapf(ErrInvalidAddress, "expected %d bytes, got %d", ed25519.PublicKeySize, len(decoded))
	}
	return decoded, nil
}

// MustPublicKeyFromBase58 is like PublicKeyFromBase58, but panics on error. It
// is intended for well-known constants.
func MustPublicKeyFromBase58(value string) ed25519.PublicKey {
	pub, err := PublicKeyFromBase58(value)
	if err != nil {
		panic(err)
	}
	return pub
}

func validateProgramAddressInputs(program ed25519.PublicKey, seeds [][]byte) error {
	if len(program) != ed25519.PublicKeySize {
		return ErrInvalidProgramID
	}

	if len(seeds) > maxSeeds {
		return ErrTooManySeeds
	}

	for _, s := range seeds {
		if len(s) > maxSeedLength {
			return ErrMaxSeedLengthExceeded
		}
	}

	return nil
}
