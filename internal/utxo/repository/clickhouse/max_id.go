package clickhouse

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

	rows, err := r.conn.Query(ctx, maxIDQuery(table))
	if err != nil {
		return 0, fmt.Errorf("query max id %s: %w", table, err)
	}
	defer closeRows(rows, &err)

	if !rows.Next() {
		return 0, fmt.Errorf("max id %s not found", table)
	}
	if err = rows.Scan(&maxID); err != nil {
		return 0, fmt.Errorf("scan max id %s: %w", table, err)
	}
	if err = rows.Err(); err != nil {
		return 0, fmt.Errorf("iterate max id %s: %w", table, err)
	}
	return maxID, nil
}

func maxIDQuery(table model.Table) string {
	return fmt.Sprintf("SELECT coalesce(max(id), toInt64(0)) FROM %s", table)
}
