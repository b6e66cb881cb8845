package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
	"github.com/jackc/pgx/v5"
)

// InsertTransaction stores one transaction row.
func (r *Repository) InsertTransaction(ctx context.Context, tx model.Transaction) error {
	const query = `INSERT INTO transactions (id, block_height, hash, btc, fee, time) VALUES ($1, $2, $3, $4, $5, $6)`
	return r.exec(ctx, "insert_transaction", query, tx.ID, tx.BlockHeight, tx.Hash, tx.Value, tx.Fee, tx.Time)
}

// InsertTransactionInput stores one input row.
func (r *Repository) InsertTransactionInput(ctx context.Context, in model.TransactionInput) error {
	const query = `INSERT INTO transaction_inputs (id, transaction_id, previous_output, value) VALUES ($1, $2, $3, $4)`
	return r.exec(ctx, "insert_transaction_input", query, in.ID, in.TransactionID, in.PreviousOutput, in.Value)
}

// InsertTransactionOutput stores one output row.
func (r *Repository) InsertTransactionOutput(ctx context.Context, out model.TransactionOutput) error {
	const query = `INSERT INTO transaction_outputs (id, transaction_id, address, value) VALUES ($1, $2, $3, $4)`
	return r.exec(ctx, "insert_transaction_output", query, out.ID, out.TransactionID, out.Address, out.Value)
}

// TransactionsByHeight lists the transactions of a block in insertion order.
func (r *Repository) TransactionsByHeight(ctx context.Context, height uint64) (txs []model.Transaction, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("transactions_by_height", err, start)
	}()

	const query = `
SELECT id, block_height, hash, btc, fee, time
FROM transactions
WHERE block_height = $1
ORDER BY id`

	rows, err := r.db.Query(ctx, query, height)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	txs, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Transaction, error) {
		var tx model.Transaction
		err := row.Scan(&tx.ID, &tx.BlockHeight, &tx.Hash, &tx.Value, &tx.Fee, &tx.Time)
		tx.Time = tx.Time.UTC()
		return tx, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect transactions: %w", err)
	}
	return txs, nil
}

// InputsByHeight lists the inputs of every transaction in a block.
func (r *Repository) InputsByHeight(ctx context.Context, height uint64) (inputs []model.TransactionInput, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("inputs_by_height", err, start)
	}()

	const query = `
SELECT i.id, i.transaction_id, i.previous_output, i.value
FROM transaction_inputs i
JOIN transactions t ON t.id = i.transaction_id
WHERE t.block_height = $1
ORDER BY i.id`

	rows, err := r.db.Query(ctx, query, height)
	if err != nil {
		return nil, fmt.Errorf("query inputs: %w", err)
	}
	inputs, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.TransactionInput, error) {
		var in model.TransactionInput
		err := row.Scan(&in.ID, &in.TransactionID, &in.PreviousOutput, &in.Value)
		return in, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect inputs: %w", err)
	}
	return inputs, nil
}

// OutputsByHeight lists the outputs of every transaction in a block.
func (r *Repository) OutputsByHeight(ctx context.Context, height uint64) (outputs []model.TransactionOutput, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("outputs_by_height", err, start)
	}()

	const query = `
SELECT o.id, o.transaction_id, o.address, o.value
FROM transaction_outputs o
JOIN transactions t ON t.id = o.transaction_id
WHERE t.block_height = $1
ORDER BY o.id`

	rows, err := r.db.Query(ctx, query, height)
	if err != nil {
		return nil, fmt.Errorf("query outputs: %w", err)
	}
	outputs, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.TransactionOutput, error) {
		var out model.TransactionOutput
		err := row.Scan(&out.ID, &out.TransactionID, &out.Address, &out.Value)
		return out, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect outputs: %w", err)
	}
	return outputs, nil
}
