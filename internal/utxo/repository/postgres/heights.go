package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
)

// MaxID returns the highest surrogate id in table, 0 when the table is empty.
func (r *Repository) MaxID(ctx context.Context, table model.Table) (maxID int64, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("max_id", err, start)
	}()

	if !table.Valid() {
		return 0, fmt.Errorf("unknown table %q", table)
	}

	query := fmt.Sprintf("SELECT COALESCE(MAX(id), 0) FROM %s", table)
	if err = r.db.QueryRow(ctx, query).Scan(&maxID); err != nil {
		return 0, fmt.Errorf("query max id %s: %w", table, err)
	}
	return maxID, nil
}

// InsertBlockHeight records an observed tip.
func (r *Repository) InsertBlockHeight(ctx context.Context, h model.BlockHeight) error {
	const query = `INSERT INTO block_heights (id, height) VALUES ($1, $2)`
	return r.exec(ctx, "insert_block_height", query, h.ID, h.Height)
}

// LatestObservedHeight returns the most recently recorded tip, falling back to the highest
// stored block summary.
func (r *Repository) LatestObservedHeight(ctx context.Context) (height uint64, ok bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("latest_observed_height", err, start)
	}()

	const markerQuery = `SELECT height FROM block_heights ORDER BY id DESC LIMIT 1`
	if height, ok, err = r.optionalHeight(ctx, markerQuery); err != nil || ok {
		return height, ok, err
	}

	const summaryQuery = `SELECT height FROM block_info ORDER BY height DESC LIMIT 1`
	return r.optionalHeight(ctx, summaryQuery)
}

// MaxBlockHeight returns the highest stored block summary height.
func (r *Repository) MaxBlockHeight(ctx context.Context) (height uint64, ok bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("max_block_height", err, start)
	}()

	const query = `SELECT height FROM block_info ORDER BY height DESC LIMIT 1`
	return r.optionalHeight(ctx, query)
}
