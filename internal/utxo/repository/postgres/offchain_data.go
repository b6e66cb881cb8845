package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
	"github.com/jackc/pgx/v5"
)

const offchainColumns = `id, block_height, btc_price, market_sentiment, volume, high, low, timestamp`

// OffchainSampleByKey returns the sample stored for (height, price), or nil.
func (r *Repository) OffchainSampleByKey(ctx context.Context, height uint64, price float64) (sample *model.OffchainSample, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("offchain_sample_by_key", err, start)
	}()

	const query = `SELECT ` + offchainColumns + `
FROM offchain_data
WHERE block_height = $1 AND btc_price = $2
ORDER BY id
LIMIT 1`

	rows, err := r.db.Query(ctx, query, height, price)
	if err != nil {
		return nil, fmt.Errorf("query offchain sample: %w", err)
	}
	s, err := pgx.CollectOneRow(rows, scanOffchainSample)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("collect offchain sample: %w", err)
	}
	return &s, nil
}

// InsertOffchainSample stores a new sample.
func (r *Repository) InsertOffchainSample(ctx context.Context, s model.OffchainSample) error {
	const query = `INSERT INTO offchain_data (` + offchainColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	return r.exec(ctx, "insert_offchain_sample", query,
		s.ID, s.BlockHeight, s.Price, s.Sentiment, s.Volume, s.High, s.Low, s.Timestamp)
}

// UpdateOffchainSample rewrites the non-key fields of the sample with s.ID.
func (r *Repository) UpdateOffchainSample(ctx context.Context, s model.OffchainSample) error {
	const query = `
UPDATE offchain_data
SET market_sentiment = $1, volume = $2, high = $3, low = $4, timestamp = $5
WHERE id = $6`
	return r.exec(ctx, "update_offchain_sample", query, s.Sentiment, s.Volume, s.High, s.Low, s.Timestamp, s.ID)
}

// OffchainSamples lists samples newest first.
func (r *Repository) OffchainSamples(ctx context.Context, limit int) (samples []model.OffchainSample, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("offchain_samples", err, start)
	}()

	const query = `SELECT ` + offchainColumns + ` FROM offchain_data ORDER BY timestamp DESC, id DESC LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query offchain samples: %w", err)
	}
	samples, err = pgx.CollectRows(rows, scanOffchainSample)
	if err != nil {
		return nil, fmt.Errorf("collect offchain samples: %w", err)
	}
	return samples, nil
}

func scanOffchainSample(row pgx.CollectableRow) (model.OffchainSample, error) {
	var s model.OffchainSample
	err := row.Scan(&s.ID, &s.BlockHeight, &s.Price, &s.Sentiment, &s.Volume, &s.High, &s.Low, &s.Timestamp)
	s.Timestamp = s.Timestamp.UTC()
	return s, err
}
