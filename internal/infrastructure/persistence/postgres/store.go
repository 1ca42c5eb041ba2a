package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rezkam/todolist/internal/application/auth"
	"github.com/rezkam/todolist/internal/application/todo"
)

// querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// Store is the PostgreSQL implementation of the todo and auth repositories.
//
// A Store returned by NewStore runs each statement on the pool. Inside
// Atomic the callback receives a Store bound to the open transaction.
type Store struct {
	pool *pgxpool.Pool
	db   querier
}

var (
	_ todo.Repository = (*Store)(nil)
	_ auth.Repository = (*Store)(nil)
)

// NewStore wraps an existing pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, db: pool}
}

// Pool returns the underlying connection pool.
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

// Close closes the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// finalizeTx rolls back when *err is set and commits otherwise.
// Panics are handled by the caller before finalizeTx runs.
func finalizeTx(ctx context.Context, tx pgx.Tx, err *error) {
	if *err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			slog.ErrorContext(ctx, "rollback failed",
				"original_error", *err,
				"rollback_error", rbErr)
			*err = fmt.Errorf("transaction failed: %w (rollback error: %v)", *err, rbErr)
		}
		return
	}

	if cErr := tx.Commit(ctx); cErr != nil {
		slog.ErrorContext(ctx, "transaction commit failed", "error", cErr)
		*err = fmt.Errorf("failed to commit transaction: %w", cErr)
	}
}

// executeInTransaction runs fn with a Store bound to a new transaction.
func (s *Store) executeInTransaction(ctx context.Context, operation string, fn func(tx *Store) error) (err error) {
	start := time.Now() //nolint:clocknow

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			slog.ErrorContext(ctx, "transaction panic, rolling back",
				"operation", operation,
				"panic", p)
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				slog.ErrorContext(ctx, "rollback after panic failed",
					"operation", operation,
					"rollback_error", rbErr)
			}
			panic(p)
		}

		finalizeTx(ctx, tx, &err)
		if err == nil {
			slog.DebugContext(ctx, "transaction completed",
				"operation", operation,
				"duration_ms", time.Since(start).Milliseconds())
		}
	}()

	err = fn(&Store{pool: s.pool, db: tx})
	return err
}

// Atomic runs fn inside one transaction. Every repository call made through
// the Repository passed to fn commits or rolls back together.
func (s *Store) Atomic(ctx context.Context, fn func(repo todo.Repository) error) error {
	// Already inside a transaction: join it.
	if _, ok := s.db.(pgx.Tx); ok {
		return fn(s)
	}
	return s.executeInTransaction(ctx, "atomic", func(tx *Store) error {
		return fn(tx)
	})
}
