// Package transport exposes the explorer query API over HTTP and the ingester health over gRPC.
package transport

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	QueryRepository interface {
		LatestObservedHeight(ctx context.Context) (uint64, bool, error)
		BlockInfos(ctx context.Context, limit int) ([]model.BlockInfo, error)
		BlockInfoByHeight(ctx context.Context, height uint64) (*model.BlockInfo, error)
		TransactionsByHeight(ctx context.Context, height uint64) ([]model.Transaction, error)
		InputsByHeight(ctx context.Context, height uint64) ([]model.TransactionInput, error)
		OutputsByHeight(ctx context.Context, height uint64) ([]model.TransactionOutput, error)
		OffchainSamples(ctx context.Context, limit int) ([]model.OffchainSample, error)
		Ping(ctx context.Context) error
	}
	HTTPMetrics interface {
		ObserveRequest(route string, code int, started time.Time)
	}
)
