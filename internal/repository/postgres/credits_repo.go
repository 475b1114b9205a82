package postgres

import (
	"context"

	"github.com/baharkarakas/autoblog-backend/internal/models"
	"github.com/google/uuid"
)

type creditsRepo struct{ q querier }

func (r *creditsRepo) HasCredits(ctx context.Context, userID string, amount int64) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx, `SELECT check_user_credits($1, $2)`, userID, amount).Scan(&ok)
	return ok, err
}

func (r *creditsRepo) Append(ctx context.Context, e models.CreditEntry) (models.CreditEntry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	err := r.q.QueryRow(ctx,
		`INSERT INTO credits (id, user_id, workspace_id, credit_amount, transaction_type)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		e.ID, e.UserID, e.WorkspaceID, e.Amount, e.Type,
	).Scan(&e.CreatedAt)
	return e, err
}

func (r *creditsRepo) Balance(ctx context.Context, userID string) (int64, error) {
	var total int64
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(credit_amount), 0) FROM credits WHERE user_id = $1`,
		userID,
	).Scan(&total)
	return total, err
}

func (r *creditsRepo) HasEntryOfType(ctx context.Context, userID string, t models.CreditTxnType) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM credits WHERE user_id = $1 AND transaction_type = $2)`,
		userID, t,
	).Scan(&exists)
	return exists, err
}
