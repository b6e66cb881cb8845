package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
)

// InsertTransaction stores one transaction row.
func (r *Repository) InsertTransaction(ctx context.Context, tx model.Transaction) error {
	const query = `INSERT INTO transactions (id, block_height, hash, btc, fee, time) VALUES (?, ?, ?, ?, ?, ?)`
	return r.exec(ctx, "insert_transaction", query, tx.ID, tx.BlockHeight, tx.Hash, tx.Value, tx.Fee, tx.Time)
}

// InsertTransactionInput stores one input row.
func (r *Repository) InsertTransactionInput(ctx context.Context, in model.TransactionInput) error {
	const query = `INSERT INTO transaction_inputs (id, transaction_id, previous_output, value) VALUES (?, ?, ?, ?)`
	return r.exec(ctx, "insert_transaction_input", query, in.ID, in.TransactionID, in.PreviousOutput, in.Value)
}

// InsertTransactionOutput stores one output row.
func (r *Repository) InsertTransactionOutput(ctx context.Context, out model.TransactionOutput) error {
	const query = `INSERT INTO transaction_outputs (id, transaction_id, address, value) VALUES (?, ?, ?, ?)`
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
WHERE block_height = ?
ORDER BY id`

	rows, err := r.conn.Query(ctx, query, height)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer closeRows(rows, &err)

	for rows.Next() {
		var tx model.Transaction
		if err = rows.Scan(&tx.ID, &tx.BlockHeight, &tx.Hash, &tx.Value, &tx.Fee, &tx.Time); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
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
SELECT id, transaction_id, previous_output, value
FROM transaction_inputs
WHERE transaction_id IN (SELECT id FROM transactions WHERE block_height = ?)
ORDER BY id`

	rows, err := r.conn.Query(ctx, query, height)
	if err != nil {
		return nil, fmt.Errorf("query inputs: %w", err)
	}
	defer closeRows(rows, &err)

	for rows.Next() {
		var in model.TransactionInput
		if err = rows.Scan(&in.ID, &in.TransactionID, &in.PreviousOutput, &in.Value); err != nil {
			return nil, fmt.Errorf("scan input: %w", err)
		}
		inputs = append(inputs, in)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inputs: %w", err)
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
SELECT id, transaction_id, address, value
FROM transaction_outputs
WHERE transaction_id IN (SELECT id FROM transactions WHERE block_height = ?)
ORDER BY id`

	rows, err := r.conn.Query(ctx, query, height)
	if err != nil {
		return nil, fmt.Errorf("query outputs: %w", err)
	}
	defer closeRows(rows, &err)

	for rows.Next() {
		var out model.TransactionOutput
		if err = rows.Scan(&out.ID, &out.TransactionID, &out.Address, &out.Value); err != nil {
			return nil, fmt.Errorf("scan output: %w", err)
		}
		outputs = append(outputs, out)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outputs: %w", err)
	}
	return outputs, nil
}
