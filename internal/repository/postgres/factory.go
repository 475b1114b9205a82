package postgres

import (
	"context"

	repo "github.com/baharkarakas/autoblog-backend/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repositories struct {
	Credits    repo.Credits
	Usage      repo.Usage
	APIKeys    repo.APIKeys
	Workspaces repo.Workspaces
	UnitOfWork repo.UnitOfWork
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Credits:    &creditsRepo{pool},
		Usage:      &usageRepo{pool},
		APIKeys:    &apiKeysRepo{pool},
		Workspaces: &workspacesRepo{pool},
		UnitOfWork: &unitOfWork{pool},
	}
}
