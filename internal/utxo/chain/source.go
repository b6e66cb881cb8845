// Package chain defines the contracts and error taxonomy shared between upstream sources, the store and the ingesters.
package chain

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
)

// Upstream is the four-call contract every chain data source implements.
type Upstream interface {
	// TipHeight returns the height of the most recent block known upstream.
	TipHeight(ctx context.Context) (uint64, error)
	// BlockHash resolves a height to a block hash.
	BlockHash(ctx context.Context, height uint64) (string, error)
	// Block returns block detail for a hash. Txs is populated only when the upstream embeds them.
	Block(ctx context.Context, hash string) (*model.BlockPayload, error)
	// BlockTxs returns the full transaction list of a block.
	BlockTxs(ctx context.Context, hash string, txCount uint32) ([]model.TxPayload, error)
}

// MarketSource reports market snapshots for the off-chain sampler.
type MarketSource interface {
	Snapshot(ctx context.Context) (*model.MarketSnapshot, error)
}
