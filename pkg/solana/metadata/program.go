package metadata

import (
	"crypto/ed25519"

	"github.com/xyber-labs/xyber-server/pkg/solana"
)

var (
	PROGRAM_ADDRESS = "metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s"
	PROGRAM_ID      = ed25519.PublicKey(solana.MustPublicKeyFromBase58(PROGRAM_ADDRESS))
)
