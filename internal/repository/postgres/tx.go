package postgres

import (
	"context"

	repo "github.com/baharkarakas/autoblog-backend/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type unitOfWork struct{ pool *pgxpool.Pool }

// WithUserTx takes a transaction-scoped advisory lock keyed by the user id before
// running fn, so balance check and ledger append of one user never interleave.
// Under READ COMMITTED every statement after the lock sees rows committed by the
// previous holder.
func (u *unitOfWork) WithUserTx(ctx context.Context, userID string, fn func(repo.Store) error) error {
	tx, err := u.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.ReadCommitted,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, userID); err != nil {
		return err
	}
	store := repo.Store{
		Credits:    &creditsRepo{tx},
		Usage:      &usageRepo{tx},
		Workspaces: &workspacesRepo{tx},
	}
	if err := fn(store); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
