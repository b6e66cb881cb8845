package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
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
WHERE block_height = ? AND btc_price = ?
ORDER BY id
LIMIT 1`

	rows, err := r.conn.Query(ctx, query, height, price)
	if err != nil {
		return nil, fmt.Errorf("query offchain sample: %w", err)
	}
	defer closeRows(rows, &err)

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, fmt.Errorf("iterate offchain sample: %w", err)
		}
		return nil, nil
	}
	var s model.OffchainSample
	if err = scanOffchainSample(rows, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// InsertOffchainSample stores a new sample.
func (r *Repository) InsertOffchainSample(ctx context.Context, s model.OffchainSample) error {
	const query = `INSERT INTO offchain_data (` + offchainColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	return r.exec(ctx, "insert_offchain_sample", query,
		s.ID, s.BlockHeight, s.Price, s.Sentiment, s.Volume, s.High, s.Low, s.Timestamp)
}

// UpdateOffchainSample rewrites the non-key fields of the sample with s.ID.
// The mutation runs synchronously so a following read observes it.
func (r *Repository) UpdateOffchainSample(ctx context.Context, s model.OffchainSample) error {
	const query = `
ALTER TABLE offchain_data
UPDATE market_sentiment = ?, volume = ?, high = ?, low = ?, timestamp = ?
WHERE id = ?
SETTINGS mutations_sync = 1`
	return r.exec(ctx, "update_offchain_sample", query,
		s.Sentiment, s.Volume, s.High, s.Low, s.Timestamp, s.ID)
}

// OffchainSamples lists samples newest first.
func (r *Repository) OffchainSamples(ctx context.Context, limit int) (samples []model.OffchainSample, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("offchain_samples", err, start)
	}()

	const query = `SELECT ` + offchainColumns + ` FROM offchain_data ORDER BY timestamp DESC, id DESC LIMIT ?`

	rows, err := r.conn.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query offchain samples: %w", err)
	}
	defer closeRows(rows, &err)

	for rows.Next() {
		var s model.OffchainSample
		if err = scanOffchainSample(rows, &s); err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate offchain samples: %w", err)
	}
	return samples, nil
}

func scanOffchainSample(rows driver.Rows, s *model.OffchainSample) error {
	if err := rows.Scan(&s.ID, &s.BlockHeight, &s.Price, &s.Sentiment, &s.Volume, &s.High, &s.Low, &s.Timestamp); err != nil {
		return fmt.Errorf("scan offchain sample: %w", err)
	}
	return nil
}
