package ingester

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-explorer/pkg/workerpool"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// SyncConfig tunes the sync controller. Zero values fall back to defaults.
type SyncConfig struct {
	Interval       time.Duration
	CatchUp        uint64
	FetchWorkers   int
	UnhealthyAfter int
}

// SyncIngesterService runs one sync cycle per tick: resolve, decompose, persist.
// Ticks that arrive while a cycle is running are skipped, not queued.
type SyncIngesterService struct {
	logger     *zap.Logger
	coin       model.Coin
	network    model.Network
	metrics    SyncIngesterMetrics
	health     HealthReporter
	resolver   BlockResolver
	decomposer BlockDecomposer
	writer     BlockWriter
	heights    HeightReader
	every      func(context.Context, time.Duration, func(context.Context)) error

	interval       time.Duration
	catchUp        uint64
	fetchWorkers   int
	unhealthyAfter int

	guard    *semaphore.Weighted
	failures int
	wg       sync.WaitGroup
}

// NewSyncIngesterService wires a controller from its collaborators.
func NewSyncIngesterService(
	cfg SyncConfig,
	coin model.Coin,
	network model.Network,
	resolver BlockResolver,
	decomposer BlockDecomposer,
	writer BlockWriter,
	heights HeightReader,
	metrics SyncIngesterMetrics,
	health HealthReporter,
	logger *zap.Logger,
) (*SyncIngesterService, error) {
	if metrics == nil {
		return nil, errors.New("metrics is nil")
	}
	if resolver == nil || decomposer == nil || writer == nil {
		return nil, errors.New("resolver, decomposer and writer are required")
	}
	if cfg.CatchUp > 1 && heights == nil {
		return nil, errors.New("catch-up requires a height reader")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = defaultSyncInterval
	}
	if cfg.FetchWorkers <= 0 {
		cfg.FetchWorkers = defaultFetchWorkers
	}
	if cfg.UnhealthyAfter <= 0 {
		cfg.UnhealthyAfter = defaultUnhealthyAfter
	}

	return &SyncIngesterService{
		logger: logger.With(
			zap.String("coin", string(coin)),
			zap.String("network", string(network)),
		).Named("sync_ingester"),
		coin:           coin,
		network:        network,
		metrics:        metrics,
		health:         health,
		resolver:       resolver,
		decomposer:     decomposer,
		writer:         writer,
		heights:        heights,
		every:          clock.Every,
		interval:       cfg.Interval,
		catchUp:        cfg.CatchUp,
		fetchWorkers:   cfg.FetchWorkers,
		unhealthyAfter: cfg.UnhealthyAfter,
		guard:          semaphore.NewWeighted(1),
	}, nil
}

// Run ticks until ctx is canceled and waits for the in-flight cycle before returning.
func (s *SyncIngesterService) Run(ctx context.Context) error {
	s.logger.Info("sync ingester started", zap.Duration("interval", s.interval), zap.Uint64("catch_up", s.catchUp))
	err := s.every(ctx, s.interval, func(ctx context.Context) {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			_, _ = s.Tick(ctx)
		}()
	})
	s.wg.Wait()
	s.logger.Info("sync ingester stopped")

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Tick runs one cycle unless another one holds the guard. ran is false for a skipped tick.
func (s *SyncIngesterService) Tick(ctx context.Context) (ran bool, err error) {
	if !s.guard.TryAcquire(1) {
		s.metrics.ObserveSkippedTick()
		s.logger.Debug("previous cycle still running, tick skipped")
		return false, nil
	}
	defer s.guard.Release(1)

	started := time.Now()
	var results []PersistResult
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sync cycle panic: %v", r)
		}
		s.finish(results, err, started)
	}()

	ran = true
	results, err = s.cycle(ctx)
	return ran, err
}

func (s *SyncIngesterService) cycle(ctx context.Context) ([]PersistResult, error) {
	tip, err := s.resolver.TipHeight(ctx)
	if err != nil {
		return nil, fmt.Errorf("tip height: %w", err)
	}
	s.metrics.ObserveTip(tip)

	heights, err := s.plan(ctx, tip)
	if err != nil {
		return nil, err
	}

	payloads, err := workerpool.Map(ctx, s.fetchWorkers, heights, s.resolve)
	if err != nil {
		return nil, fmt.Errorf("resolve blocks %d..%d: %w", heights[0], heights[len(heights)-1], err)
	}

	results := make([]PersistResult, 0, len(payloads))
	for _, payload := range payloads {
		res, err := s.writer.Persist(ctx, s.decomposer.Decompose(payload))
		results = append(results, res)
		s.metrics.ObserveRows(res.Written(), res.Failed)
		if err != nil {
			return results, fmt.Errorf("persist block %d: %w", payload.Height, err)
		}
	}
	return results, nil
}

// resolve runs on a workerpool goroutine, out of reach of Tick's recover.
func (s *SyncIngesterService) resolve(ctx context.Context, height uint64) (payload *model.BlockPayload, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("resolve block %d panic: %v", height, r)
		}
	}()
	return s.resolver.ResolveHeight(ctx, height)
}

// plan returns the ascending heights to sync this cycle: only the tip unless catch-up is enabled.
func (s *SyncIngesterService) plan(ctx context.Context, tip uint64) ([]uint64, error) {
	if s.catchUp <= 1 {
		return []uint64{tip}, nil
	}

	stored, ok, err := s.heights.MaxBlockHeight(ctx)
	if err != nil {
		return nil, chain.StoreUnavailable("max_block_height", string(model.TableBlockInfo), err)
	}

	var from uint64
	if tip+1 > s.catchUp {
		from = tip + 1 - s.catchUp
	}
	if ok && stored+1 > from {
		from = stored + 1
	}
	if from > tip {
		return []uint64{tip}, nil
	}

	heights := make([]uint64, 0, tip-from+1)
	for h := from; h <= tip; h++ {
		heights = append(heights, h)
	}
	return heights, nil
}

func (s *SyncIngesterService) finish(results []PersistResult, err error, started time.Time) {
	outcome := OutcomeSuccess
	written, failed, skipped := 0, 0, 0
	for _, res := range results {
		written += res.Written()
		failed += res.Failed
		if res.Skipped {
			skipped++
		}
	}
	switch {
	case err != nil:
		outcome = OutcomeError
	case failed > 0:
		outcome = OutcomePartial
	}

	s.metrics.ObserveCycle(outcome, started)
	s.reportHealth(outcome)

	fields := []zap.Field{
		zap.String("outcome", outcome),
		zap.Int("blocks", len(results)),
		zap.Int("skipped", skipped),
		zap.Int("rows_written", written),
		zap.Int("rows_failed", failed),
		zap.Duration("duration", time.Since(started)),
	}
	if len(results) > 0 {
		fields = append(fields, zap.Uint64("height", results[len(results)-1].Height))
	}

	switch outcome {
	case OutcomeSuccess:
		s.logger.Info("sync cycle completed", fields...)
	case OutcomePartial:
		s.logger.Warn("sync cycle completed", fields...)
	default:
		fields = append(fields, errorFields(err)...)
		s.logger.Error("sync cycle failed", fields...)
	}
}

func (s *SyncIngesterService) reportHealth(outcome string) {
	if outcome == OutcomeError {
		s.failures++
	} else {
		s.failures = 0
	}
	if s.health == nil {
		return
	}
	switch {
	case s.failures == 0:
		s.health.SetServing(true)
	case s.failures >= s.unhealthyAfter:
		s.health.SetServing(false)
	}
}

func errorFields(err error) []zap.Field {
	fields := []zap.Field{zap.String("kind", chain.Kind(err)), zap.Error(err)}
	var upErr *chain.UpstreamError
	if errors.As(err, &upErr) {
		fields = append(fields, zap.String("operation", upErr.Operation), zap.String("url", upErr.URL))
		if upErr.StatusCode != 0 {
			fields = append(fields, zap.Int("status", upErr.StatusCode))
		}
		if upErr.RPCCode != 0 {
			fields = append(fields, zap.Int("rpc_code", upErr.RPCCode))
		}
		if upErr.Body != "" {
			fields = append(fields, zap.String("body", upErr.Body))
		}
	}
	return fields
}
