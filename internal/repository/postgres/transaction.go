package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"appforge/internal/domain/repositories"
)

// TransactionManager implements the TransactionManager interface
type TransactionManager struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewTransactionManager creates a new transaction manager
func NewTransactionManager(pool *pgxpool.Pool, logger *slog.Logger) repositories.TransactionManager {
	return &TransactionManager{pool: pool, logger: logger}
}

// ExecTx executes a function within a transaction
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	tx, err := tm.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	// Safe even after a successful commit.
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			tm.logger.Warn("rollback failed", "error", err)
		}
	}()

	// Store the transaction in the context so repositories pick it up.
	txCtx := repositories.SetTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
