package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
)

// InsertBlockHeight records an observed tip.
func (r *Repository) InsertBlockHeight(ctx context.Context, h model.BlockHeight) error {
	const query = `INSERT INTO block_heights (id, height) VALUES (?, ?)`
	return r.exec(ctx, "insert_block_height", query, h.ID, h.Height)
}

// LatestObservedHeight returns the most recently recorded tip, falling back to the highest
// stored block summary. ok is false when neither table has rows.
func (r *Repository) LatestObservedHeight(ctx context.Context) (height uint64, ok bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("latest_observed_height", err, start)
	}()

	const markerQuery = `SELECT height FROM block_heights ORDER BY id DESC LIMIT 1`
	if height, ok, err = r.singleHeight(ctx, markerQuery); err != nil || ok {
		return height, ok, err
	}

	const summaryQuery = `SELECT height FROM block_info ORDER BY height DESC LIMIT 1`
	return r.singleHeight(ctx, summaryQuery)
}

// MaxBlockHeight returns the highest stored block summary height.
func (r *Repository) MaxBlockHeight(ctx context.Context) (height uint64, ok bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("max_block_height", err, start)
	}()

	const query = `SELECT height FROM block_info ORDER BY height DESC LIMIT 1`
	return r.singleHeight(ctx, query)
}

func (r *Repository) singleHeight(ctx context.Context, query string) (height uint64, ok bool, err error) {
	var rows driver.Rows
	rows, err = r.conn.Query(ctx, query)
	if err != nil {
		return 0, false, fmt.Errorf("query height: %w", err)
	}
	defer closeRows(rows, &err)

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return 0, false, fmt.Errorf("iterate height: %w", err)
		}
		return 0, false, nil
	}
	if err = rows.Scan(&height); err != nil {
		return 0, false, fmt.Errorf("scan height: %w", err)
	}
	return height, true, nil
}
