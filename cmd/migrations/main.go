package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	_ "github.com/ClickHouse/clickhouse-go/v2"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/clickhouse"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

const (
	driverClickhouse = "clickhouse"
	driverPostgres   = "postgres"
)

type config struct {
	Driver        string `long:"driver" env:"EXPLORER_STORE_DRIVER" choice:"clickhouse" choice:"postgres" default:"clickhouse" description:"target store"`
	DSN           string `long:"dsn" env:"EXPLORER_STORE_DSN" default:"clickhouse://localhost:9000/default" description:"store DSN (clickhouse://... or postgres://...)"`
	MigrationsDir string `long:"migrations-dir" env:"MIGRATIONS_DIR" description:"path to migration files, defaults to migrations/<driver>"`
	Down          bool   `long:"down" description:"roll every migration back instead of applying"`
}

func main() {
	_ = godotenv.Load()

	cfg := config{}
	if _, err := flags.Parse(&cfg); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		log.Fatalf("failed to parse flags: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runMigrations(ctx, cfg); err != nil {
		log.Fatalf("migration run failed: %v", err)
	}
}

// databaseURL rewrites dsn into the scheme the golang-migrate driver registers under.
func databaseURL(driver, dsn string) (string, error) {
	switch driver {
	case driverClickhouse:
		return dsn, nil
	case driverPostgres:
		for _, prefix := range []string{"postgres://", "postgresql://"} {
			if strings.HasPrefix(dsn, prefix) {
				return "pgx5://" + strings.TrimPrefix(dsn, prefix), nil
			}
		}
		if strings.HasPrefix(dsn, "pgx5://") {
			return dsn, nil
		}
		return "", errors.New("postgres dsn must start with postgres:// or pgx5://")
	default:
		return "", fmt.Errorf("unknown driver %q", driver)
	}
}

func runMigrations(ctx context.Context, cfg config) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dbURL, err := databaseURL(cfg.Driver, cfg.DSN)
	if err != nil {
		return err
	}

	migrationsDir := cfg.MigrationsDir
	if migrationsDir == "" {
		migrationsDir = filepath.Join("migrations", cfg.Driver)
	}
	dir, err := filepath.Abs(migrationsDir)
	if err != nil {
		return fmt.Errorf("resolve migrations dir: %w", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("stat migrations dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	sourceURL := fmt.Sprintf("file://%s", filepath.ToSlash(dir))
	m, err := migrate.New(sourceURL, dbURL)
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			log.Printf("migration source close error: %v", srcErr)
		}
		if dbErr != nil {
			log.Printf("migration database close error: %v", dbErr)
		}
	}()

	apply := m.Up
	if cfg.Down {
		apply = m.Down
	}
	if err := apply(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Println("no migrations to apply")
			return nil
		}
		return err
	}

	log.Printf("%s migrations applied successfully", cfg.Driver)
	return nil
}
