package ingester

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
	"go.uber.org/zap"
)

// OffchainSamplerService periodically tags a market snapshot with the last observed chain height
// and upserts it keyed by (height, price). It shares no tables with the sync controller.
type OffchainSamplerService struct {
	logger   *zap.Logger
	metrics  OffchainSamplerMetrics
	repo     SampleRepository
	source   MarketSource
	ids      IDReserver
	interval time.Duration
	every    func(context.Context, time.Duration, func(context.Context)) error
}

// NewOffchainSamplerService constructs a sampler. A non-positive interval uses the default.
func NewOffchainSamplerService(
	interval time.Duration,
	repo SampleRepository,
	source MarketSource,
	ids IDReserver,
	metrics OffchainSamplerMetrics,
	logger *zap.Logger,
) (*OffchainSamplerService, error) {
	if metrics == nil {
		return nil, errors.New("metrics is nil")
	}
	if repo == nil || source == nil || ids == nil {
		return nil, errors.New("repository, source and id reserver are required")
	}
	if interval <= 0 {
		interval = defaultSampleInterval
	}
	return &OffchainSamplerService{
		logger:   logger.Named("offchain_sampler"),
		metrics:  metrics,
		repo:     repo,
		source:   source,
		ids:      ids,
		interval: interval,
		every:    clock.Every,
	}, nil
}

// Run samples on every interval until ctx is canceled.
func (s *OffchainSamplerService) Run(ctx context.Context) error {
	s.logger.Info("offchain sampler started", zap.Duration("interval", s.interval))
	err := s.every(ctx, s.interval, func(ctx context.Context) {
		action, err := s.Sample(ctx)
		if err != nil {
			s.logger.Error("offchain sample failed", errorFields(err)...)
			return
		}
		s.logger.Debug("offchain sample done", zap.String("action", action))
	})
	s.logger.Info("offchain sampler stopped")

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Sample takes one snapshot and upserts it. It returns the action taken.
func (s *OffchainSamplerService) Sample(ctx context.Context) (action string, err error) {
	started := time.Now()
	defer func() {
		if err != nil {
			action = ActionError
		}
		s.metrics.ObserveSample(action, started)
	}()

	height, ok, err := s.repo.LatestObservedHeight(ctx)
	if err != nil {
		return "", chain.StoreUnavailable("latest_observed_height", string(model.TableBlockHeights), err)
	}
	if !ok {
		s.logger.Debug("no chain height observed yet, sample skipped")
		return ActionSkip, nil
	}

	snapshot, err := s.source.Snapshot(ctx)
	if err != nil {
		return "", fmt.Errorf("market snapshot: %w", err)
	}

	sample := model.OffchainSample{
		BlockHeight: height,
		Price:       snapshot.Price,
		Sentiment:   snapshot.Sentiment,
		Volume:      snapshot.Volume,
		High:        snapshot.High,
		Low:         snapshot.Low,
		Timestamp:   snapshot.SampledAt.UTC(),
	}

	existing, err := s.repo.OffchainSampleByKey(ctx, height, snapshot.Price)
	if err != nil {
		return "", chain.StoreUnavailable("offchain_sample_by_key", string(model.TableOffchainData), err)
	}
	if existing != nil {
		sample.ID = existing.ID
		if err = s.repo.UpdateOffchainSample(ctx, sample); err != nil {
			return "", chain.StoreWrite("update", string(model.TableOffchainData), err)
		}
		return ActionUpdate, nil
	}

	s.ids.Reset(model.TableOffchainData)
	if sample.ID, err = s.ids.Reserve(ctx, model.TableOffchainData); err != nil {
		return "", chain.StoreUnavailable("reserve_id", string(model.TableOffchainData), err)
	}
	if err = s.repo.InsertOffchainSample(ctx, sample); err != nil {
		return "", chain.StoreWrite("insert", string(model.TableOffchainData), err)
	}
	s.logger.Info("offchain sample stored",
		zap.Uint64("height", height),
		zap.Float64("price", snapshot.Price),
		zap.Int64("id", sample.ID),
	)
	return ActionInsert, nil
}
