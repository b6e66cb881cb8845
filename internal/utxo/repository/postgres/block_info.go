package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
	"github.com/jackc/pgx/v5"
)

const blockInfoColumns = `id, height, hash, tx_count, difficulty, block_time, timestamp, size, weight`

// BlockInfoExists reports whether a summary for height is stored.
func (r *Repository) BlockInfoExists(ctx context.Context, height uint64) (exists bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("block_info_exists", err, start)
	}()

	const query = `SELECT EXISTS (SELECT 1 FROM block_info WHERE height = $1)`
	if err = r.db.QueryRow(ctx, query, height).Scan(&exists); err != nil {
		return false, fmt.Errorf("query block info exists: %w", err)
	}
	return exists, nil
}

// InsertBlockInfo stores one block summary.
func (r *Repository) InsertBlockInfo(ctx context.Context, b model.BlockInfo) error {
	const query = `INSERT INTO block_info (` + blockInfoColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	return r.exec(ctx, "insert_block_info", query,
		b.ID, b.Height, b.Hash, b.TxCount, b.Difficulty, b.BlockTime, b.Timestamp, b.Size, b.Weight)
}

// BlockInfos lists summaries newest first.
func (r *Repository) BlockInfos(ctx context.Context, limit int) (infos []model.BlockInfo, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("block_infos", err, start)
	}()

	const query = `SELECT ` + blockInfoColumns + ` FROM block_info ORDER BY height DESC LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query block infos: %w", err)
	}
	infos, err = pgx.CollectRows(rows, scanBlockInfo)
	if err != nil {
		return nil, fmt.Errorf("collect block infos: %w", err)
	}
	return infos, nil
}

// BlockInfoByHeight returns the summary at height or nil when missing.
func (r *Repository) BlockInfoByHeight(ctx context.Context, height uint64) (info *model.BlockInfo, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("block_info_by_height", err, start)
	}()

	const query = `SELECT ` + blockInfoColumns + ` FROM block_info WHERE height = $1`

	rows, err := r.db.Query(ctx, query, height)
	if err != nil {
		return nil, fmt.Errorf("query block info: %w", err)
	}
	b, err := pgx.CollectOneRow(rows, scanBlockInfo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("collect block info: %w", err)
	}
	return &b, nil
}

func scanBlockInfo(row pgx.CollectableRow) (model.BlockInfo, error) {
	var b model.BlockInfo
	err := row.Scan(&b.ID, &b.Height, &b.Hash, &b.TxCount, &b.Difficulty, &b.BlockTime, &b.Timestamp, &b.Size, &b.Weight)
	b.Timestamp = b.Timestamp.UTC()
	return b, err
}
