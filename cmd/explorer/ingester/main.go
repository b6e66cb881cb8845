package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/metrics"
	rpcclient "github.com/goodnatureofminers/blockinsight7000-explorer/internal/pkg/btcd/rpcclient"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/pkg/httpclient"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/transport"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/ledger"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/market"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/repository"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/repository/postgres"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/service/ingester"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	upstreamEsplora  = "esplora"
	upstreamBitcoind = "bitcoind"
)

type config struct {
	StoreDriver       string        `long:"store-driver" env:"EXPLORER_STORE_DRIVER" description:"relational store driver" choice:"clickhouse" choice:"postgres" default:"clickhouse"`
	StoreDSN          string        `long:"store-dsn" env:"EXPLORER_STORE_DSN" description:"store DSN" required:"true"`
	PGMaxConns        int32         `long:"pg-max-conns" env:"EXPLORER_PG_MAX_CONNS" description:"postgres pool size"`
	PGMaxConnLifetime time.Duration `long:"pg-max-conn-lifetime" env:"EXPLORER_PG_MAX_CONN_LIFETIME" description:"postgres connection lifetime"`
	Coin              model.Coin    `long:"coin" env:"EXPLORER_COIN" description:"coin name" default:"BTC"`
	Network           model.Network `long:"network" env:"EXPLORER_NETWORK" description:"network name" default:"mainnet"`
	Upstream          string        `long:"upstream" env:"EXPLORER_UPSTREAM" description:"chain upstream" choice:"esplora" choice:"bitcoind" default:"esplora"`
	EsploraURL        string        `long:"esplora-url" env:"EXPLORER_ESPLORA_URL" description:"Esplora REST base URL" default:"https://mempool.space/api"`
	UpstreamTimeout   time.Duration `long:"upstream-timeout" env:"EXPLORER_UPSTREAM_TIMEOUT" description:"per-call upstream timeout" default:"10s"`
	UpstreamRPS       int           `long:"upstream-rps" env:"EXPLORER_UPSTREAM_RPS" description:"max upstream requests per second, 0 for unlimited" default:"5"`
	RPCURL            string        `long:"rpc-url" env:"EXPLORER_RPC_URL" description:"bitcoind RPC URL" default:"http://127.0.0.1:8332"`
	RPCUser           string        `long:"rpc-user" env:"EXPLORER_RPC_USER" description:"bitcoind RPC username"`
	RPCPassword       string        `long:"rpc-password" env:"EXPLORER_RPC_PASSWORD" description:"bitcoind RPC password"`
	SyncInterval      time.Duration `long:"sync-interval" env:"EXPLORER_SYNC_INTERVAL" description:"sync cycle interval" default:"10s"`
	CatchUp           uint64        `long:"catch-up" env:"EXPLORER_CATCH_UP" description:"heights below the tip to backfill per cycle, 0 for tip only" default:"0"`
	FetchWorkers      int           `long:"fetch-workers" env:"EXPLORER_FETCH_WORKERS" description:"concurrent block fetches in catch-up mode" default:"4"`
	UnhealthyAfter    int           `long:"unhealthy-after" env:"EXPLORER_UNHEALTHY_AFTER" description:"failed cycles before reporting NOT_SERVING" default:"3"`
	DisableSampler    bool          `long:"disable-sampler" env:"EXPLORER_DISABLE_SAMPLER" description:"do not sample off-chain market data"`
	SampleInterval    time.Duration `long:"sample-interval" env:"EXPLORER_SAMPLE_INTERVAL" description:"off-chain sample interval" default:"1m"`
	MarketURL         string        `long:"market-url" env:"EXPLORER_MARKET_URL" description:"CoinGecko API base URL" default:"https://api.coingecko.com/api/v3"`
	MarketCoinID      string        `long:"market-coin-id" env:"EXPLORER_MARKET_COIN_ID" description:"CoinGecko coin id" default:"bitcoin"`
	MarketCurrency    string        `long:"market-currency" env:"EXPLORER_MARKET_CURRENCY" description:"quote currency" default:"usd"`
	MarketRPS         int           `long:"market-rps" env:"EXPLORER_MARKET_RPS" description:"max market requests per second, 0 for unlimited" default:"1"`
	SentimentURL      string        `long:"sentiment-url" env:"EXPLORER_SENTIMENT_URL" description:"Fear & Greed API base URL, empty to disable"`
	MetricsAddr       string        `long:"metrics-addr" env:"EXPLORER_METRICS_ADDR" description:"address for metrics server" default:":2112"`
	GRPCAddr          string        `long:"grpc-addr" env:"EXPLORER_GRPC_ADDR" description:"address for the gRPC health server" default:":9090"`
	LogProduction     bool          `long:"log-production" env:"EXPLORER_LOG_PRODUCTION" description:"JSON logs at info level"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	envErr := godotenv.Load()
	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := newLogger(cfg.LogProduction)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		logger.Warn("failed to load .env", zap.Error(envErr))
	}
	grpcZap.ReplaceGrpcLoggerV2(logger)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("explorer ingester failed", zap.Error(err))
	}
}

func newLogger(production bool) (*zap.Logger, error) {
	if production {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	store, err := repository.Open(ctx, repository.Config{
		Driver: cfg.StoreDriver,
		DSN:    cfg.StoreDSN,
		Pool: postgres.PoolConfig{
			MaxConns:        cfg.PGMaxConns,
			MaxConnLifetime: cfg.PGMaxConnLifetime,
		},
	})
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close store", zap.Error(err))
		}
	}()

	upstream, closeUpstream, err := newUpstream(cfg)
	if err != nil {
		return fmt.Errorf("init upstream: %w", err)
	}
	defer closeUpstream()

	decoder, err := bitcoin.NewAddressDecoder(cfg.Network)
	if err != nil {
		return fmt.Errorf("init address decoder: %w", err)
	}

	health := transport.NewHealthServer(logger)
	grpcServer := transport.NewGRPCServer(logger, health)
	syncLogger := logger.Named("sync")
	resolver, err := ingester.NewResolver(upstream, syncLogger.Named("resolver"))
	if err != nil {
		return err
	}
	writer, err := ingester.NewLedgerWriter(store, ledger.NewSequences(store), syncLogger.Named("writer"))
	if err != nil {
		return err
	}
	syncSvc, err := ingester.NewSyncIngesterService(
		ingester.SyncConfig{
			Interval:       cfg.SyncInterval,
			CatchUp:        cfg.CatchUp,
			FetchWorkers:   cfg.FetchWorkers,
			UnhealthyAfter: cfg.UnhealthyAfter,
		},
		cfg.Coin,
		cfg.Network,
		resolver,
		ledger.NewDecomposer(decoder),
		writer,
		store,
		metrics.NewSyncIngester(cfg.Coin, cfg.Network),
		health,
		logger,
	)
	if err != nil {
		return err
	}

	var sampler *ingester.OffchainSamplerService
	if !cfg.DisableSampler {
		sampler, err = ingester.NewOffchainSamplerService(
			cfg.SampleInterval,
			store,
			newMarketSource(cfg),
			ledger.NewSequences(store),
			metrics.NewOffchainSampler(),
			logger,
		)
		if err != nil {
			return err
		}
	}

	socket, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen grpc: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting gRPC health server", zap.String("addr", cfg.GRPCAddr))
		return grpcServer.Serve(socket)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down gRPC server")
		grpcServer.GracefulStop()
		return nil
	})
	g.Go(func() error {
		return syncSvc.Run(gctx)
	})
	if sampler != nil {
		g.Go(func() error {
			return sampler.Run(gctx)
		})
	}

	return g.Wait()
}

// newUpstream builds the configured chain source and a func releasing its resources.
func newUpstream(cfg config) (ingester.Upstream, func(), error) {
	switch cfg.Upstream {
	case upstreamEsplora:
		client := httpclient.New(httpclient.Config{
			BaseURL:           cfg.EsploraURL,
			Timeout:           cfg.UpstreamTimeout,
			RequestsPerSecond: cfg.UpstreamRPS,
		}, metrics.NewUpstreamClient(upstreamEsplora, cfg.Coin, cfg.Network))
		return bitcoin.NewEsploraSource(client), func() {}, nil
	case upstreamBitcoind:
		parsed, err := url.Parse(cfg.RPCURL)
		if err != nil {
			return nil, nil, fmt.Errorf("parse rpc url: %w", err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return nil, nil, fmt.Errorf("rpc url scheme %q not supported, use http or https", parsed.Scheme)
		}
		if parsed.Host == "" {
			return nil, nil, errors.New("rpc url missing host")
		}
		raw, err := rpcclient.Dial(rpcclient.ConnConfig{
			Host:       parsed.Host,
			User:       cfg.RPCUser,
			Password:   cfg.RPCPassword,
			DisableTLS: parsed.Scheme == "http",
		})
		if err != nil {
			return nil, nil, err
		}
		observed := rpcclient.NewObservedClient(raw, metrics.NewUpstreamClient(upstreamBitcoind, cfg.Coin, cfg.Network))
		return bitcoin.NewRPCSource(observed, parsed.Host, cfg.UpstreamTimeout), func() {
			raw.Shutdown()
			raw.WaitForShutdown()
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown upstream %q", cfg.Upstream)
	}
}

func newMarketSource(cfg config) *market.Source {
	prices := httpclient.New(httpclient.Config{
		BaseURL:           cfg.MarketURL,
		Timeout:           cfg.UpstreamTimeout,
		RequestsPerSecond: cfg.MarketRPS,
	}, metrics.NewUpstreamClient("coingecko", cfg.Coin, cfg.Network))

	var opts []market.Option
	if cfg.SentimentURL != "" {
		sentiment := httpclient.New(httpclient.Config{
			BaseURL:           cfg.SentimentURL,
			Timeout:           cfg.UpstreamTimeout,
			RequestsPerSecond: cfg.MarketRPS,
		}, metrics.NewUpstreamClient("fear_greed", cfg.Coin, cfg.Network))
		opts = append(opts, market.WithSentiment(sentiment))
	}
	return market.NewSource(prices, cfg.MarketCoinID, cfg.MarketCurrency, opts...)
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}
