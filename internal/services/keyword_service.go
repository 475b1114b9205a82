package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/baharkarakas/autoblog-backend/internal/llm"
	"github.com/baharkarakas/autoblog-backend/internal/metrics"
	"github.com/baharkarakas/autoblog-backend/internal/models"
	"github.com/google/uuid"
)

const KeywordCreditCost = 2

type KeywordService struct {
	credits  *CreditService
	creds    *CredentialService
	provider llm.Completer
	log      *slog.Logger
}

func NewKeywordService(credits *CreditService, creds *CredentialService, provider llm.Completer, log *slog.Logger) *KeywordService {
	if log == nil {
		log = slog.Default()
	}
	return &KeywordService{credits: credits, creds: creds, provider: provider, log: log}
}

type GenerateInput struct {
	Content        string
	PrimaryCount   int
	SecondaryCount int
	Note           string
	UserID         string
	WorkspaceID    string
}

// Generate debits the caller before the provider call. A failed call or an
// unusable reply is compensated with a refund.
func (s *KeywordService) Generate(ctx context.Context, in GenerateInput) (models.KeywordResult, error) {
	if strings.TrimSpace(in.Content) == "" {
		return models.KeywordResult{}, ErrMissingContent
	}
	if strings.TrimSpace(in.UserID) == "" || strings.TrimSpace(in.WorkspaceID) == "" {
		return models.KeywordResult{}, ErrMissingAuthContext
	}
	apiType := s.provider.APIType()

	apiKey, err := s.creds.ActiveCredential(ctx, in.WorkspaceID, apiType)
	if err != nil {
		s.outcome("no_credential")
		return models.KeywordResult{}, err
	}

	charge := ConsumeInput{
		UserID:      in.UserID,
		WorkspaceID: in.WorkspaceID,
		APIType:     apiType,
		Operation:   models.OpKeywordGeneration,
		Credits:     KeywordCreditCost,
	}
	if err := s.credits.Consume(ctx, charge); err != nil {
		s.outcome("rejected")
		return models.KeywordResult{}, err
	}

	primaryN, secondaryN := llm.NormalizeCounts(in.PrimaryCount, in.SecondaryCount)
	prompt := llm.BuildKeywordPrompt(llm.KeywordPrompt{
		Content:   in.Content,
		Primary:   primaryN,
		Secondary: secondaryN,
		Note:      in.Note,
	})

	raw, err := s.provider.Complete(ctx, apiKey, prompt)
	if err != nil {
		s.log.Error("keyword provider call failed", "provider", apiType, "workspace_id", in.WorkspaceID, "err", err)
		s.refund(ctx, charge)
		s.outcome("provider_error")
		return models.KeywordResult{}, fmt.Errorf("%w: %v", ErrProviderCallFailed, err)
	}
	primary, secondary, err := llm.ParseKeywords(raw, primaryN, secondaryN)
	if err != nil {
		s.log.Warn("malformed keyword reply", "provider", apiType, "err", err, "reply_len", len(raw))
		s.refund(ctx, charge)
		s.outcome("malformed")
		return models.KeywordResult{}, fmt.Errorf("%w: %v", ErrMalformedModelResponse, err)
	}

	s.outcome("ok")
	return models.KeywordResult{
		Primary:   tagKeywords(primary),
		Secondary: tagKeywords(secondary),
	}, nil
}

// refund ignores cancellation of the request context.
func (s *KeywordService) refund(ctx context.Context, charge ConsumeInput) {
	if err := s.credits.Refund(context.WithoutCancel(ctx), charge); err != nil {
		s.log.Error("keyword refund failed", "user_id", charge.UserID, "credits", charge.Credits, "err", err)
	}
}

func (s *KeywordService) outcome(o string) {
	metrics.KeywordGenerations.WithLabelValues(s.provider.APIType(), o).Inc()
}

func tagKeywords(in []string) []models.KeywordSuggestion {
	out := make([]models.KeywordSuggestion, 0, len(in))
	for _, kw := range in {
		out = append(out, models.KeywordSuggestion{ID: uuid.NewString(), Text: kw})
	}
	return out
}
