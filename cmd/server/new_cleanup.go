package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// shutdowner is anything that drains within a deadline.
type shutdowner interface {
	Shutdown(context.Context) error
}

// newCleanup returns the shutdown sequence: stop accepting requests, drain
// pending last-used updates, then close the store they write to. Every step
// runs even when an earlier one fails.
func newCleanup(ctx context.Context, server, authenticator shutdowner, store io.Closer) func() error {
	return func() error {
		var errs []error

		if server != nil {
			if err := server.Shutdown(ctx); err != nil {
				slog.ErrorContext(ctx, "failed to shut down HTTP server", "error", err)
				errs = append(errs, fmt.Errorf("http server: %w", err))
			}
		}

		if authenticator != nil {
			if err := authenticator.Shutdown(ctx); err != nil {
				slog.WarnContext(ctx, "authenticator shutdown timeout", "error", err)
				errs = append(errs, fmt.Errorf("authenticator: %w", err))
			}
		}

		if store != nil {
			if err := store.Close(); err != nil {
				slog.ErrorContext(ctx, "failed to close store", "error", err)
				errs = append(errs, fmt.Errorf("store: %w", err))
			}
		}

		return errors.Join(errs...)
	}
}
