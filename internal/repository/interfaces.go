package repository

import (
	"context"
	"errors"

	"github.com/baharkarakas/autoblog-backend/internal/models"
)

var ErrNotFound = errors.New("not found")

type Credits interface {
	// HasCredits delegates to the check_user_credits aggregate.
	HasCredits(ctx context.Context, userID string, amount int64) (bool, error)
	Append(ctx context.Context, e models.CreditEntry) (models.CreditEntry, error)
	Balance(ctx context.Context, userID string) (int64, error)
	HasEntryOfType(ctx context.Context, userID string, t models.CreditTxnType) (bool, error)
}

type Usage interface {
	Create(ctx context.Context, u models.APIUsage) (models.APIUsage, error)
	ListByWorkspace(ctx context.Context, workspaceID string, limit, offset int) ([]models.APIUsage, error)
}

type APIKeys interface {
	GetActive(ctx context.Context, workspaceID, apiType string) (models.APIKey, error)
	Upsert(ctx context.Context, k models.APIKey) error
	SetActive(ctx context.Context, workspaceID, apiType string, active bool) error
}

type Workspaces interface {
	Create(ctx context.Context, w models.Workspace) (models.Workspace, error)
	AddMember(ctx context.Context, workspaceID, userID, role string) error
}

// Store is the set of repositories bound to a single database transaction.
type Store struct {
	Credits    Credits
	Usage      Usage
	Workspaces Workspaces
}

type UnitOfWork interface {
	// WithUserTx runs fn atomically while holding the ledger lock of userID.
	// Any error from fn rolls the whole unit back.
	WithUserTx(ctx context.Context, userID string, fn func(Store) error) error
}
