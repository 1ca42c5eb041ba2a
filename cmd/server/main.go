package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/rezkam/todolist/internal/application/auth"
	"github.com/rezkam/todolist/internal/application/todo"
	"github.com/rezkam/todolist/internal/clock"
	"github.com/rezkam/todolist/internal/config"
	httpserver "github.com/rezkam/todolist/internal/infrastructure/http"
	"github.com/rezkam/todolist/internal/infrastructure/http/handler"
	"github.com/rezkam/todolist/internal/infrastructure/observability"
	"github.com/rezkam/todolist/internal/infrastructure/persistence"
)

// telemetryFlushTimeout bounds the final flush when the collector is unreachable.
const telemetryFlushTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to run: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is normal outside development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.LoadServerConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	telemetry, err := observability.Setup(ctx, observability.Config{
		Enabled:     cfg.Observability.OTelEnabled,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		return fmt.Errorf("failed to init observability: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), telemetryFlushTimeout)
		defer cancel()
		if err := telemetry.Shutdown(flushCtx); err != nil {
			fmt.Fprintf(os.Stderr, "failed to shut down telemetry: %v\n", err)
		}
	}()
	slog.SetDefault(telemetry.Logger)

	slog.InfoContext(ctx, "starting todolist service", "storage", cfg.Storage.Type, "timezone", cfg.Todo.Timezone.String())

	store, err := persistence.Open(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	clk := clock.System{}
	todoConfig := todo.Config{
		MaxPageSize: cfg.Todo.MaxPageSize,
		Location:    cfg.Todo.Timezone,
	}
	services := handler.Services{
		Lists:   todo.NewListService(store, clk, todoConfig),
		Entries: todo.NewEntryService(store, store, clk, todoConfig),
		Notes:   todo.NewNoteService(store, store, todoConfig),
	}

	api, err := handler.NewOpenAPIRouter(services, handler.Config{
		ListsPageSize:   cfg.Todo.ListsPageSize,
		EntriesPageSize: cfg.Todo.EntriesPageSize,
		NotesPageSize:   cfg.Todo.NotesPageSize,
	})
	if err != nil {
		_ = store.Close()
		return fmt.Errorf("failed to build API router: %w", err)
	}

	authenticator := auth.NewAuthenticator(ctx, store, auth.Config{
		OperationTimeout: cfg.Auth.OperationTimeout,
		UpdateQueueSize:  cfg.Auth.UpdateQueueSize,
		Clock:            clk,
	})

	server := httpserver.NewAPIServer(api, authenticator, httpserver.ServerConfig{
		Host:              cfg.HTTP.Host,
		Port:              cfg.HTTP.Port,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MaxBodyBytes:      cfg.HTTP.MaxBodyBytes,
		ServiceName:       cfg.Observability.ServiceName,
	})

	errResult := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errResult <- fmt.Errorf("failed to serve HTTP: %w", err)
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		slog.InfoContext(ctx, "shutting down")
	case serveErr = <-errResult:
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	return errors.Join(serveErr, newCleanup(shutdownCtx, server, authenticator, store)())
}
