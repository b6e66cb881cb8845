package ingester

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Upstream interface {
		TipHeight(ctx context.Context) (uint64, error)
		BlockHash(ctx context.Context, height uint64) (string, error)
		Block(ctx context.Context, hash string) (*model.BlockPayload, error)
		BlockTxs(ctx context.Context, hash string, txCount uint32) ([]model.TxPayload, error)
	}
	MarketSource interface {
		Snapshot(ctx context.Context) (*model.MarketSnapshot, error)
	}
	BlockResolver interface {
		TipHeight(ctx context.Context) (uint64, error)
		ResolveHeight(ctx context.Context, height uint64) (*model.BlockPayload, error)
	}
	BlockDecomposer interface {
		Decompose(payload *model.BlockPayload) model.NormalizedBlock
	}
	BlockWriter interface {
		Persist(ctx context.Context, block model.NormalizedBlock) (PersistResult, error)
	}
	IDReserver interface {
		Reserve(ctx context.Context, table model.Table) (int64, error)
		Reset(tables ...model.Table)
	}
	HeightReader interface {
		MaxBlockHeight(ctx context.Context) (uint64, bool, error)
	}
	Repository interface {
		BlockInfoExists(ctx context.Context, height uint64) (bool, error)
		MaxBlockHeight(ctx context.Context) (uint64, bool, error)
		MaxID(ctx context.Context, table model.Table) (int64, error)
		InsertBlockHeight(ctx context.Context, height model.BlockHeight) error
		InsertBlockInfo(ctx context.Context, info model.BlockInfo) error
		InsertTransaction(ctx context.Context, tx model.Transaction) error
		InsertTransactionInput(ctx context.Context, input model.TransactionInput) error
		InsertTransactionOutput(ctx context.Context, output model.TransactionOutput) error
	}
	SampleRepository interface {
		LatestObservedHeight(ctx context.Context) (uint64, bool, error)
		OffchainSampleByKey(ctx context.Context, height uint64, price float64) (*model.OffchainSample, error)
		InsertOffchainSample(ctx context.Context, sample model.OffchainSample) error
		UpdateOffchainSample(ctx context.Context, sample model.OffchainSample) error
		MaxID(ctx context.Context, table model.Table) (int64, error)
	}
	HealthReporter interface {
		SetServing(serving bool)
	}
	SyncIngesterMetrics interface {
		ObserveCycle(outcome string, started time.Time)
		ObserveSkippedTick()
		ObserveRows(written, failed int)
		ObserveTip(height uint64)
	}
	OffchainSamplerMetrics interface {
		ObserveSample(action string, started time.Time)
	}
)
