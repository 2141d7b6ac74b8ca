package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"personapi/internal/repository"
)

const defaultTxTimeout = 5 * time.Second

// Transactor opens one database transaction per RunInTx call.
type Transactor struct {
	db      *sql.DB
	timeout time.Duration
}

// NewTransactor creates a Transactor using the default timeout.
func NewTransactor(db *sql.DB) *Transactor {
	return &Transactor{db: db, timeout: defaultTxTimeout}
}

var _ repository.Transactor = (*Transactor)(nil)

// RunInTx hands fn a repository bound to a fresh transaction. The
// transaction commits when fn returns nil and is rolled back on every
// other path, panics included. A timeout is applied when ctx has no deadline.
func (t *Transactor) RunInTx(ctx context.Context, opts repository.TxOptions, fn func(repo repository.PersonRepository) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("transaction aborted: %w", err)
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline && t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: opts.ReadOnly})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(NewPersonPostgres(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
