package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/baharkarakas/autoblog-backend/internal/middleware"
	"github.com/baharkarakas/autoblog-backend/internal/models"
	"github.com/baharkarakas/autoblog-backend/internal/services"
)

type CreditGate interface {
	Consume(ctx context.Context, in services.ConsumeInput) error
	Balance(ctx context.Context, userID string) (int64, error)
	Grant(ctx context.Context, in services.GrantInput) (models.CreditEntry, error)
	ListUsage(ctx context.Context, workspaceID string, limit, offset int) ([]models.APIUsage, error)
}

type CompetitorAnalyzer interface {
	Analyze(ctx context.Context, in services.AnalyzeInput) (services.AnalyzeResult, error)
}

type KeywordGenerator interface {
	Generate(ctx context.Context, in services.GenerateInput) (models.KeywordResult, error)
}

type WorkspaceCreator interface {
	Create(ctx context.Context, in services.CreateWorkspaceInput) (models.Workspace, error)
}

type CredentialStore interface {
	SetCredential(ctx context.Context, workspaceID, apiType, secret string) error
	DeactivateCredential(ctx context.Context, workspaceID, apiType string) error
}

type Handler struct {
	Credits     CreditGate
	Competitors CompetitorAnalyzer
	Keywords    KeywordGenerator
	Workspaces  WorkspaceCreator
	Credentials CredentialStore
	Log         *slog.Logger
}

// callerID reconciles the body's userId with the authenticated caller. A token
// fills a missing userId; a different one is refused.
func callerID(r *http.Request, bodyUserID string) (string, error) {
	bodyUserID = strings.TrimSpace(bodyUserID)
	uid, ok := middleware.UserID(r.Context())
	if !ok {
		return bodyUserID, nil
	}
	if bodyUserID == "" || bodyUserID == uid {
		return uid, nil
	}
	return "", services.ErrForbidden
}

func (h *Handler) logger(r *http.Request) *slog.Logger {
	log := h.Log
	if log == nil {
		log = slog.Default()
	}
	return log.With("request_id", middleware.RequestIDFrom(r.Context()))
}
