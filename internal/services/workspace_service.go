package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/baharkarakas/autoblog-backend/internal/models"
	repo "github.com/baharkarakas/autoblog-backend/internal/repository"
)

type WorkspaceService struct {
	uow            repo.UnitOfWork
	initialCredits int64
	log            *slog.Logger
}

func NewWorkspaceService(uow repo.UnitOfWork, initialCredits int64, log *slog.Logger) *WorkspaceService {
	if log == nil {
		log = slog.Default()
	}
	return &WorkspaceService{uow: uow, initialCredits: initialCredits, log: log}
}

type CreateWorkspaceInput struct {
	Name    string
	OwnerID string
}

// Create inserts the workspace and its owner membership. An owner without an
// initial ledger entry receives the welcome grant in the same transaction.
func (s *WorkspaceService) Create(ctx context.Context, in CreateWorkspaceInput) (models.Workspace, error) {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return models.Workspace{}, fmt.Errorf("%w: name", ErrMissingParameter)
	case strings.TrimSpace(in.OwnerID) == "":
		return models.Workspace{}, fmt.Errorf("%w: userId", ErrMissingParameter)
	}
	w := models.Workspace{Name: in.Name, OwnerID: strings.TrimSpace(in.OwnerID)}
	if err := w.Validate(); err != nil {
		return models.Workspace{}, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}

	granted := false
	err := s.uow.WithUserTx(ctx, w.OwnerID, func(st repo.Store) error {
		created, err := st.Workspaces.Create(ctx, w)
		if err != nil {
			return fmt.Errorf("create workspace: %w", err)
		}
		if err := st.Workspaces.AddMember(ctx, created.ID, created.OwnerID, models.RoleOwner); err != nil {
			return fmt.Errorf("add owner: %w", err)
		}
		w = created

		if s.initialCredits <= 0 {
			return nil
		}
		has, err := st.Credits.HasEntryOfType(ctx, w.OwnerID, models.CreditInitial)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCreditCheckFailed, err)
		}
		if has {
			return nil
		}
		if _, err := st.Credits.Append(ctx, models.CreditEntry{
			UserID:      w.OwnerID,
			WorkspaceID: w.ID,
			Amount:      s.initialCredits,
			Type:        models.CreditInitial,
		}); err != nil {
			return fmt.Errorf("%w: %v", ErrLedgerWriteFailed, err)
		}
		granted = true
		return nil
	})
	if err != nil {
		return models.Workspace{}, err
	}
	s.log.Info("workspace created", "workspace_id", w.ID, "owner_id", w.OwnerID, "initial_grant", granted)
	return w, nil
}
