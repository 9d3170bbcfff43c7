package ledger

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/egornomic/aavegotchi-pet-sitter/internal/domain/gotchi"
)

// Client defines the on-chain operations the pet sitter needs.
// This decouples the application logic from the specific RPC/contract library.
type Client interface {
	// GotchiIDsOfOwner enumerates every gotchi token id held by owner.
	GotchiIDsOfOwner(ctx context.Context, owner common.Address) ([]gotchi.ID, error)
	// GetGotchi fetches the on-chain detail for a single gotchi.
	GetGotchi(ctx context.Context, id gotchi.ID) (*gotchi.Gotchi, error)
	// Pet submits one interact transaction covering all ids, waits for it to
	// be mined and returns the transaction hash.
	Pet(ctx context.Context, ids []gotchi.ID) (string, error)
	// EstimatePetGas estimates the gas cost of petting the given ids.
	EstimatePetGas(ctx context.Context, ids []gotchi.ID) (uint64, error)
	// CheckConnectivity reports whether the RPC node is reachable.
	CheckConnectivity(ctx context.Context) bool
	// BlockNumber returns the current chain height.
	BlockNumber(ctx context.Context) (uint64, error)
}
