package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
)

const blockInfoColumns = `id, height, hash, tx_count, difficulty, block_time, timestamp, size, weight`

// BlockInfoExists reports whether a summary for height is stored.
func (r *Repository) BlockInfoExists(ctx context.Context, height uint64) (exists bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("block_info_exists", err, start)
	}()

	const query = `SELECT count() FROM block_info WHERE height = ?`

	rows, err := r.conn.Query(ctx, query, height)
	if err != nil {
		return false, fmt.Errorf("query block info exists: %w", err)
	}
	defer closeRows(rows, &err)

	var count uint64
	if !rows.Next() {
		return false, fmt.Errorf("block info count not returned")
	}
	if err = rows.Scan(&count); err != nil {
		return false, fmt.Errorf("scan block info count: %w", err)
	}
	return count > 0, nil
}

// InsertBlockInfo stores one block summary.
func (r *Repository) InsertBlockInfo(ctx context.Context, b model.BlockInfo) error {
	const query = `INSERT INTO block_info (` + blockInfoColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	return r.exec(ctx, "insert_block_info", query,
		b.ID, b.Height, b.Hash, b.TxCount, b.Difficulty, b.BlockTime, b.Timestamp, b.Size, b.Weight)
}

// BlockInfos lists summaries newest first.
func (r *Repository) BlockInfos(ctx context.Context, limit int) (infos []model.BlockInfo, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("block_infos", err, start)
	}()

	const query = `SELECT ` + blockInfoColumns + ` FROM block_info ORDER BY height DESC LIMIT ?`

	rows, err := r.conn.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query block infos: %w", err)
	}
	defer closeRows(rows, &err)

	infos = make([]model.BlockInfo, 0, limit)
	for rows.Next() {
		var b model.BlockInfo
		if err = scanBlockInfo(rows, &b); err != nil {
			return nil, err
		}
		infos = append(infos, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate block infos: %w", err)
	}
	return infos, nil
}

// BlockInfoByHeight returns the summary at height or nil when missing.
func (r *Repository) BlockInfoByHeight(ctx context.Context, height uint64) (info *model.BlockInfo, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("block_info_by_height", err, start)
	}()

	const query = `SELECT ` + blockInfoColumns + ` FROM block_info WHERE height = ? ORDER BY id LIMIT 1`

	rows, err := r.conn.Query(ctx, query, height)
	if err != nil {
		return nil, fmt.Errorf("query block info: %w", err)
	}
	defer closeRows(rows, &err)

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, fmt.Errorf("iterate block info: %w", err)
		}
		return nil, nil
	}
	var b model.BlockInfo
	if err = scanBlockInfo(rows, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func scanBlockInfo(rows driver.Rows, b *model.BlockInfo) error {
	if err := rows.Scan(
		&b.ID, &b.Height, &b.Hash, &b.TxCount, &b.Difficulty, &b.BlockTime, &b.Timestamp, &b.Size, &b.Weight,
	); err != nil {
		return fmt.Errorf("scan block info: %w", err)
	}
	return nil
}
