package postgres

import (
	"context"
	"errors"

	"github.com/baharkarakas/autoblog-backend/internal/models"
	repo "github.com/baharkarakas/autoblog-backend/internal/repository"
	"github.com/jackc/pgx/v5"
)

type apiKeysRepo struct{ q querier }

func (r *apiKeysRepo) GetActive(ctx context.Context, workspaceID, apiType string) (models.APIKey, error) {
	var k models.APIKey
	err := r.q.QueryRow(ctx,
		`SELECT workspace_id, api_type, api_key, is_active, updated_at
		   FROM api_keys
		  WHERE workspace_id = $1 AND api_type = $2 AND is_active`,
		workspaceID, apiType,
	).Scan(&k.WorkspaceID, &k.APIType, &k.Secret, &k.IsActive, &k.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.APIKey{}, repo.ErrNotFound
	}
	return k, err
}

func (r *apiKeysRepo) Upsert(ctx context.Context, k models.APIKey) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO api_keys (workspace_id, api_type, api_key, is_active)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (workspace_id, api_type) DO UPDATE
		 SET api_key = EXCLUDED.api_key, is_active = EXCLUDED.is_active, updated_at = now()`,
		k.WorkspaceID, k.APIType, k.Secret, k.IsActive,
	)
	return err
}

func (r *apiKeysRepo) SetActive(ctx context.Context, workspaceID, apiType string, active bool) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE api_keys SET is_active = $3, updated_at = now() WHERE workspace_id = $1 AND api_type = $2`,
		workspaceID, apiType, active,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}
