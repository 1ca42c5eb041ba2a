// Package persistence opens the store selected by configuration.
package persistence

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/rezkam/todolist/internal/application/auth"
	"github.com/rezkam/todolist/internal/application/todo"
	"github.com/rezkam/todolist/internal/config"
	"github.com/rezkam/todolist/internal/infrastructure/persistence/postgres"
	"github.com/rezkam/todolist/internal/infrastructure/persistence/sqlite"
)

// Store is implemented by both backends.
type Store interface {
	todo.Repository
	auth.Repository
	Close() error
}

// Open migrates and opens the configured backend.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Type {
	case config.StoragePostgres:
		store, err := postgres.Open(ctx, postgres.DBConfig{
			DSN:             cfg.DSN,
			MaxConns:        cfg.MaxConns,
			MinConns:        cfg.MinConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.ConnMaxIdleTime,
		})
		if err != nil {
			return nil, err
		}
		slog.InfoContext(ctx, "storage initialized", "type", cfg.Type, "dsn", MaskPassword(cfg.DSN))
		return store, nil

	case config.StorageSQLite:
		store, err := sqlite.Open(ctx, sqlite.DBConfig{
			Path:          cfg.SQLitePath,
			BusyTimeoutMS: cfg.SQLiteBusyTimeout,
		})
		if err != nil {
			return nil, err
		}
		slog.InfoContext(ctx, "storage initialized", "type", cfg.Type, "path", cfg.SQLitePath)
		return store, nil

	default:
		return nil, fmt.Errorf("unknown storage type: %q", cfg.Type)
	}
}

// MaskPassword masks the password in a connection string for logging.
func MaskPassword(connStr string) string {
	u, err := url.Parse(connStr)
	if err != nil {
		return "[REDACTED]"
	}
	if u.User != nil {
		if _, hasPassword := u.User.Password(); hasPassword {
			u.User = url.UserPassword(u.User.Username(), "xxxxxx")
		}
	}
	return u.String()
}
