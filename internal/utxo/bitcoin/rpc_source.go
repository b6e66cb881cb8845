package bitcoin

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-explorer/pkg/safe"
)

// RPCSource reads chain data from a bitcoind node. Block detail embeds transactions.
type RPCSource struct {
	client  RPCClient
	host    string
	timeout time.Duration
}

// NewRPCSource constructs a source. host is only used to annotate errors.
func NewRPCSource(client RPCClient, host string, timeout time.Duration) *RPCSource {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RPCSource{client: client, host: host, timeout: timeout}
}

// TipHeight returns the node's block count.
func (s *RPCSource) TipHeight(ctx context.Context) (uint64, error) {
	count, err := withTimeout(ctx, s, "tip_height", s.client.GetBlockCount)
	if err != nil {
		return 0, err
	}
	height, err := safe.Uint64(count)
	if err != nil {
		return 0, chain.Malformed("tip_height", s.host, nil, err)
	}
	return height, nil
}

// BlockHash resolves a height to a block hash.
func (s *RPCSource) BlockHash(ctx context.Context, height uint64) (string, error) {
	h, err := safe.Int64(height)
	if err != nil {
		return "", fmt.Errorf("block hash height: %w", err)
	}
	hash, err := withTimeout(ctx, s, "block_hash", func() (*chainhash.Hash, error) {
		return s.client.GetBlockHash(h)
	})
	if err != nil {
		return "", err
	}
	if hash == nil {
		return "", chain.Malformed("block_hash", s.host, nil, errors.New("empty hash"))
	}
	return hash.String(), nil
}

// Block returns block detail with embedded transactions.
func (s *RPCSource) Block(ctx context.Context, hash string) (*model.BlockPayload, error) {
	blockHash, err := chainhash.NewHashFromStr(hash)
	if err != nil {
		return nil, fmt.Errorf("parse block hash %q: %w", hash, err)
	}
	res, err := withTimeout(ctx, s, "block", func() (*btcjson.GetBlockVerboseTxResult, error) {
		return s.client.GetBlockVerboseTx(blockHash)
	})
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, chain.Malformed("block", s.host, nil, errors.New("empty block result"))
	}
	payload, err := PayloadFromVerbose(res)
	if err != nil {
		return nil, chain.Malformed("block", s.host, nil, err)
	}
	return payload, nil
}

// BlockTxs fetches the block again and returns its transactions. Only reached for blocks whose
// detail came without transactions.
func (s *RPCSource) BlockTxs(ctx context.Context, hash string, _ uint32) ([]model.TxPayload, error) {
	payload, err := s.Block(ctx, hash)
	if err != nil {
		return nil, err
	}
	return payload.Txs, nil
}

// withTimeout runs a context-unaware rpc call and gives up once ctx or the per-call timeout expires.
// btcd's ConnConfig has no HTTP timeout, so an abandoned call holds its goroutine until the node answers.
func withTimeout[T any](ctx context.Context, s *RPCSource, operation string, call func() (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type result struct {
		value T
		err   error
	}
	done := make(chan result, 1)
	go func() {
		value, err := call()
		done <- result{value: value, err: err}
	}()

	var zero T
	select {
	case <-ctx.Done():
		return zero, chain.Unavailable(operation, s.host, ctx.Err())
	case r := <-done:
		if r.err != nil {
			return zero, classifyRPCError(operation, s.host, r.err)
		}
		return r.value, nil
	}
}

// httpStatusPattern matches the error btcd returns for a non-JSON-RPC reply, e.g. a 401 from bitcoind.
var httpStatusPattern = regexp.MustCompile(`status code: (\d{3})`)

func classifyRPCError(operation, host string, err error) error {
	var rpcErr *btcjson.RPCError
	if errors.As(err, &rpcErr) {
		return chain.RPCFailure(operation, host, int(rpcErr.Code), rpcErr.Message)
	}
	if m := httpStatusPattern.FindStringSubmatch(err.Error()); m != nil {
		code, convErr := strconv.Atoi(m[1])
		if convErr == nil {
			return chain.StatusError(operation, host, code, []byte(err.Error()))
		}
	}
	return chain.Unavailable(operation, host, err)
}
