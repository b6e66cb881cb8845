package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/transport"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/repository"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/repository/postgres"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type config struct {
	StoreDriver       string        `long:"store-driver" env:"EXPLORER_STORE_DRIVER" description:"relational store driver" choice:"clickhouse" choice:"postgres" default:"clickhouse"`
	StoreDSN          string        `long:"store-dsn" env:"EXPLORER_STORE_DSN" description:"store DSN" required:"true"`
	PGMaxConns        int32         `long:"pg-max-conns" env:"EXPLORER_PG_MAX_CONNS" description:"postgres pool size"`
	PGMaxConnLifetime time.Duration `long:"pg-max-conn-lifetime" env:"EXPLORER_PG_MAX_CONN_LIFETIME" description:"postgres connection lifetime"`
	Addr              string        `long:"addr" env:"EXPLORER_API_ADDR" description:"query API address" default:":8001"`
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

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("explorer api failed", zap.Error(err))
	}
}

func newLogger(production bool) (*zap.Logger, error) {
	if production {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
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

	handler, err := transport.NewExplorerHandler(store, metrics.NewHTTPServer(), logger)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", handler.Routes())

	s := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("shutting down the http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("starting HTTP server", zap.String("addr", cfg.Addr))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen and serve: %w", err)
	}
	return nil
}
