package postgres

import (
	"context"

	"github.com/baharkarakas/autoblog-backend/internal/models"
	"github.com/google/uuid"
)

type usageRepo struct{ q querier }

func (r *usageRepo) Create(ctx context.Context, u models.APIUsage) (models.APIUsage, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	err := r.q.QueryRow(ctx,
		`INSERT INTO api_usage (id, user_id, workspace_id, api_type, usage_amount, credits_consumed, operation_type)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING timestamp`,
		u.ID, u.UserID, u.WorkspaceID, u.APIType, u.UsageAmount, u.CreditsConsumed, u.OperationType,
	).Scan(&u.Timestamp)
	return u, err
}

func (r *usageRepo) ListByWorkspace(ctx context.Context, workspaceID string, limit, offset int) ([]models.APIUsage, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, user_id, workspace_id, api_type, usage_amount, credits_consumed, operation_type, timestamp
		   FROM api_usage
		  WHERE workspace_id = $1
		  ORDER BY timestamp DESC
		  LIMIT $2 OFFSET $3`,
		workspaceID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.APIUsage{}
	for rows.Next() {
		var u models.APIUsage
		if err := rows.Scan(&u.ID, &u.UserID, &u.WorkspaceID, &u.APIType, &u.UsageAmount, &u.CreditsConsumed, &u.OperationType, &u.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
