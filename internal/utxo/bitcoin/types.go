package bitcoin

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

import (
	"context"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

type (
	// HTTPClient fetches upstream REST resources and classifies failures.
	HTTPClient interface {
		URL(path string) string
		GetText(ctx context.Context, operation, path string) (string, error)
		GetJSON(ctx context.Context, operation, path string, dst any) error
	}

	// RPCClient is the subset of the btcd rpc client used by RPCSource.
	RPCClient interface {
		GetBlockCount() (int64, error)
		GetBlockHash(blockHeight int64) (*chainhash.Hash, error)
		GetBlockVerboseTx(blockHash *chainhash.Hash) (*btcjson.GetBlockVerboseTxResult, error)
	}
)
