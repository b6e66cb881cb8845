package ingester

import (
	"context"
	"errors"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
	"go.uber.org/zap"
)

// PersistResult reports what the writer did with one block.
type PersistResult struct {
	Height       uint64
	Skipped      bool
	Transactions int
	Inputs       int
	Outputs      int
	Failed       int
}

// Written returns the number of rows inserted, the summary and height marker included.
func (r PersistResult) Written() int {
	if r.Skipped {
		return 0
	}
	return 2 + r.Transactions + r.Inputs + r.Outputs
}

// LedgerWriter inserts a normalized block once per height and assigns surrogate ids.
// It must not run concurrently with itself; the sync controller serializes calls.
type LedgerWriter struct {
	repo   Repository
	ids    IDReserver
	logger *zap.Logger
}

// NewLedgerWriter constructs a LedgerWriter.
func NewLedgerWriter(repo Repository, ids IDReserver, logger *zap.Logger) (*LedgerWriter, error) {
	if repo == nil {
		return nil, errors.New("repository is nil")
	}
	if ids == nil {
		return nil, errors.New("id reserver is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerWriter{repo: repo, ids: ids, logger: logger}, nil
}

// Persist writes block unless its height is already stored. Failed child rows are logged and counted;
// a failure to read the store or to write the summary aborts the block. Once the summary is stored the
// block is never revisited, so every later failure is confined to its own row.
func (w *LedgerWriter) Persist(ctx context.Context, block model.NormalizedBlock) (PersistResult, error) {
	height := block.Block.Height
	res := PersistResult{Height: height}
	logger := w.logger.With(zap.Uint64("height", height), zap.String("hash", block.Block.Hash))

	// another process may have written since the last call
	w.ids.Reset()

	exists, err := w.repo.BlockInfoExists(ctx, height)
	if err != nil {
		return res, chain.StoreUnavailable("block_info_exists", string(model.TableBlockInfo), err)
	}
	if exists {
		res.Skipped = true
		logger.Debug("block already stored")
		return res, nil
	}

	info := block.Block
	if info.ID, err = w.ids.Reserve(ctx, model.TableBlockInfo); err != nil {
		return res, chain.StoreUnavailable("reserve_id", string(model.TableBlockInfo), err)
	}
	if err = w.repo.InsertBlockInfo(ctx, info); err != nil {
		w.ids.Reset(model.TableBlockInfo)
		return res, chain.StoreWrite("insert", string(model.TableBlockInfo), err)
	}

	marker := model.BlockHeight{Height: height}
	if w.reserve(ctx, logger, model.TableBlockHeights, &marker.ID) {
		if err = w.repo.InsertBlockHeight(ctx, marker); err != nil {
			w.insertFailed(logger, model.TableBlockHeights, err)
			res.Failed++
		}
	} else {
		res.Failed++
	}

	for _, ntx := range block.Transactions {
		w.persistTransaction(ctx, logger, ntx, &res)
	}
	return res, nil
}

func (w *LedgerWriter) persistTransaction(
	ctx context.Context,
	logger *zap.Logger,
	ntx model.NormalizedTransaction,
	res *PersistResult,
) {
	tx := ntx.Transaction
	logger = logger.With(zap.String("txid", tx.Hash))
	if !w.reserve(ctx, logger, model.TableTransactions, &tx.ID) {
		res.Failed += 1 + len(ntx.Inputs) + len(ntx.Outputs)
		return
	}
	if err := w.repo.InsertTransaction(ctx, tx); err != nil {
		w.insertFailed(logger, model.TableTransactions, err)
		// children would reference a missing row
		res.Failed += 1 + len(ntx.Inputs) + len(ntx.Outputs)
		return
	}
	res.Transactions++

	for _, in := range ntx.Inputs {
		in.TransactionID = tx.ID
		if !w.reserve(ctx, logger, model.TableTransactionInputs, &in.ID) {
			res.Failed++
			continue
		}
		if err := w.repo.InsertTransactionInput(ctx, in); err != nil {
			w.insertFailed(logger, model.TableTransactionInputs, err)
			res.Failed++
			continue
		}
		res.Inputs++
	}

	for _, out := range ntx.Outputs {
		out.TransactionID = tx.ID
		if !w.reserve(ctx, logger, model.TableTransactionOutputs, &out.ID) {
			res.Failed++
			continue
		}
		if err := w.repo.InsertTransactionOutput(ctx, out); err != nil {
			w.insertFailed(logger, model.TableTransactionOutputs, err)
			res.Failed++
			continue
		}
		res.Outputs++
	}
}

// reserve stores the next id of table in id. On failure it logs, drops the table's cursor and reports false.
func (w *LedgerWriter) reserve(ctx context.Context, logger *zap.Logger, table model.Table, id *int64) bool {
	next, err := w.ids.Reserve(ctx, table)
	if err != nil {
		w.rowFailed(logger, table, chain.StoreUnavailable("reserve_id", string(table), err))
		return false
	}
	*id = next
	return true
}

// insertFailed handles an insert that may or may not have landed.
func (w *LedgerWriter) insertFailed(logger *zap.Logger, table model.Table, err error) {
	w.rowFailed(logger, table, chain.StoreWrite("insert", string(table), err))
}

// rowFailed logs an isolated row failure and forces the table's sequence to re-read the store.
func (w *LedgerWriter) rowFailed(logger *zap.Logger, table model.Table, err error) {
	w.ids.Reset(table)
	logger.Warn("row skipped",
		zap.String("table", string(table)),
		zap.Error(err),
	)
}
