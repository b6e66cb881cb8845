package ingester

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
	"go.uber.org/zap"
)

// Resolver turns a chain height into a fully populated block payload.
type Resolver struct {
	upstream Upstream
	logger   *zap.Logger
}

// NewResolver constructs a Resolver over upstream.
func NewResolver(upstream Upstream, logger *zap.Logger) (*Resolver, error) {
	if upstream == nil {
		return nil, errors.New("upstream is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{upstream: upstream, logger: logger}, nil
}

// TipHeight returns the current chain tip height.
func (r *Resolver) TipHeight(ctx context.Context) (uint64, error) {
	return r.upstream.TipHeight(ctx)
}

// ResolveTip resolves the block at the current tip.
func (r *Resolver) ResolveTip(ctx context.Context) (*model.BlockPayload, error) {
	tip, err := r.upstream.TipHeight(ctx)
	if err != nil {
		return nil, err
	}
	return r.ResolveHeight(ctx, tip)
}

// ResolveHeight fetches hash, block detail and, when the detail does not embed them, the transactions.
func (r *Resolver) ResolveHeight(ctx context.Context, height uint64) (*model.BlockPayload, error) {
	hash, err := r.upstream.BlockHash(ctx, height)
	if err != nil {
		return nil, err
	}

	block, err := r.upstream.Block(ctx, hash)
	if err != nil {
		return nil, err
	}
	if block.Height != height {
		return nil, chain.Malformed("block", "", nil,
			fmt.Errorf("block %s reports height %d, expected %d", hash, block.Height, height))
	}

	if len(block.Txs) == 0 && block.TxCount > 0 {
		txs, err := r.upstream.BlockTxs(ctx, hash, block.TxCount)
		if err != nil {
			return nil, err
		}
		block.Txs = txs
	}

	r.logger.Debug("block resolved",
		zap.Uint64("height", height),
		zap.String("hash", hash),
		zap.Int("txs", len(block.Txs)),
	)
	return block, nil
}
