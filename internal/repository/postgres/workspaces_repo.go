package postgres

import (
	"context"

	"github.com/baharkarakas/autoblog-backend/internal/models"
	"github.com/google/uuid"
)

type workspacesRepo struct{ q querier }

func (r *workspacesRepo) Create(ctx context.Context, w models.Workspace) (models.Workspace, error) {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	err := r.q.QueryRow(ctx,
		`INSERT INTO workspaces (id, name, owner_id) VALUES ($1, $2, $3) RETURNING created_at`,
		w.ID, w.Name, w.OwnerID,
	).Scan(&w.CreatedAt)
	return w, err
}

func (r *workspacesRepo) AddMember(ctx context.Context, workspaceID, userID, role string) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO workspace_members (workspace_id, user_id, role) VALUES ($1, $2, $3)
		 ON CONFLICT (workspace_id, user_id) DO UPDATE SET role = EXCLUDED.role`,
		workspaceID, userID, role,
	)
	return err
}
