package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/rezkam/todolist/internal/application/export"
	"github.com/rezkam/todolist/internal/clock"
	"github.com/rezkam/todolist/internal/config"
	blobfs "github.com/rezkam/todolist/internal/infrastructure/blob/fs"
	"github.com/rezkam/todolist/internal/infrastructure/blob/gcs"
	"github.com/rezkam/todolist/internal/infrastructure/observability"
	"github.com/rezkam/todolist/internal/infrastructure/persistence"
)

// Writes a JSON snapshot of one account's lists to the configured sink.
func main() {
	account := flag.String("account", "", "Account UUID to export (required)")
	flag.Parse()

	if err := run(*account); err != nil {
		fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
		os.Exit(1)
	}
}

func run(accountID string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.LoadExportConfig(accountID)
	if err != nil {
		flag.Usage()
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	telemetry, err := observability.Setup(ctx, observability.Config{LogOutput: os.Stderr})
	if err != nil {
		return err
	}
	defer telemetry.Shutdown(context.Background())
	slog.SetDefault(telemetry.Logger)

	store, err := persistence.Open(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	sink, closeSink, err := openSink(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSink()

	keys, err := export.NewService(store, sink, clock.System{}).ExportAccount(ctx, cfg.AccountID)
	for _, key := range keys {
		fmt.Println(key)
	}
	return err
}

func openSink(ctx context.Context, cfg *config.ExportConfig) (export.BlobStore, func(), error) {
	switch cfg.Sink {
	case config.SinkGCS:
		store, err := gcs.NewStore(ctx, cfg.GCSBucket)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		store, err := blobfs.NewStore(cfg.FSDir)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
}
