// Package repository selects the relational store backing the explorer.
package repository

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/repository/clickhouse"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/repository/postgres"
)

// Supported drivers.
const (
	DriverClickhouse = "clickhouse"
	DriverPostgres   = "postgres"
)

// Store is the full surface shared by both drivers.
type Store interface {
	Ping(ctx context.Context) error
	Close() error

	MaxID(ctx context.Context, table model.Table) (int64, error)
	InsertBlockHeight(ctx context.Context, h model.BlockHeight) error
	LatestObservedHeight(ctx context.Context) (uint64, bool, error)
	MaxBlockHeight(ctx context.Context) (uint64, bool, error)

	BlockInfoExists(ctx context.Context, height uint64) (bool, error)
	InsertBlockInfo(ctx context.Context, b model.BlockInfo) error
	BlockInfos(ctx context.Context, limit int) ([]model.BlockInfo, error)
	BlockInfoByHeight(ctx context.Context, height uint64) (*model.BlockInfo, error)

	InsertTransaction(ctx context.Context, tx model.Transaction) error
	InsertTransactionInput(ctx context.Context, in model.TransactionInput) error
	InsertTransactionOutput(ctx context.Context, out model.TransactionOutput) error
	TransactionsByHeight(ctx context.Context, height uint64) ([]model.Transaction, error)
	InputsByHeight(ctx context.Context, height uint64) ([]model.TransactionInput, error)
	OutputsByHeight(ctx context.Context, height uint64) ([]model.TransactionOutput, error)

	OffchainSampleByKey(ctx context.Context, height uint64, price float64) (*model.OffchainSample, error)
	InsertOffchainSample(ctx context.Context, s model.OffchainSample) error
	UpdateOffchainSample(ctx context.Context, s model.OffchainSample) error
	OffchainSamples(ctx context.Context, limit int) ([]model.OffchainSample, error)
}

var (
	_ Store = (*clickhouse.Repository)(nil)
	_ Store = (*postgres.Repository)(nil)
)

// Config selects and tunes the store.
type Config struct {
	Driver string
	DSN    string
	Pool   postgres.PoolConfig
}

// Open connects to the configured store and verifies it is reachable.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case DriverClickhouse:
		repo, err := clickhouse.NewRepository(cfg.DSN, metrics.NewRepository(DriverClickhouse))
		if err != nil {
			return nil, fmt.Errorf("init clickhouse repository: %w", err)
		}
		if err := repo.Ping(ctx); err != nil {
			_ = repo.Close()
			return nil, err
		}
		return repo, nil
	case DriverPostgres:
		repo, err := postgres.NewRepository(ctx, cfg.DSN, cfg.Pool, metrics.NewRepository(DriverPostgres))
		if err != nil {
			return nil, fmt.Errorf("init postgres repository: %w", err)
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
