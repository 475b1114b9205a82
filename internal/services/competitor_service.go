package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/baharkarakas/autoblog-backend/internal/competitor"
	"github.com/baharkarakas/autoblog-backend/internal/metrics"
	"github.com/baharkarakas/autoblog-backend/internal/models"
	repo "github.com/baharkarakas/autoblog-backend/internal/repository"
	"github.com/baharkarakas/autoblog-backend/internal/worker"
)

const (
	CompetitorCreditCost = 2
	usageWriteTimeout    = 5 * time.Second
)

type CompetitorService struct {
	src   competitor.Source
	usage repo.Usage
	wp    *worker.Pool
	log   *slog.Logger
}

func NewCompetitorService(src competitor.Source, usage repo.Usage, wp *worker.Pool, log *slog.Logger) *CompetitorService {
	if log == nil {
		log = slog.Default()
	}
	return &CompetitorService{src: src, usage: usage, wp: wp, log: log}
}

type AnalyzeInput struct {
	Keyword     string
	Country     string
	UserID      string
	WorkspaceID string
}

type AnalyzeResult struct {
	Keyword  string                    `json:"keyword"`
	Country  string                    `json:"country"`
	Analysis models.CompetitorAnalysis `json:"analysis"`
}

func (s *CompetitorService) Analyze(ctx context.Context, in AnalyzeInput) (AnalyzeResult, error) {
	keyword := strings.TrimSpace(in.Keyword)
	if keyword == "" {
		return AnalyzeResult{}, ErrMissingKeyword
	}
	country := competitor.ResolveCountry(in.Country)

	stats, err := s.src.Fetch(ctx, keyword, country)
	if err != nil {
		s.log.Error("competitor source failed", "source", s.src.Name(), "keyword", keyword, "err", err)
		return AnalyzeResult{}, fmt.Errorf("%w: %v", ErrCompetitorSourceFailed, err)
	}
	analysis, err := competitor.Aggregate(stats)
	if errors.Is(err, competitor.ErrNoData) {
		return AnalyzeResult{}, ErrNoCompetitorData
	}
	if err != nil {
		return AnalyzeResult{}, err
	}
	metrics.CompetitorAnalyses.WithLabelValues(s.src.Name()).Inc()

	if strings.TrimSpace(in.UserID) != "" && strings.TrimSpace(in.WorkspaceID) != "" {
		s.recordUsage(models.APIUsage{
			UserID:          in.UserID,
			WorkspaceID:     in.WorkspaceID,
			APIType:         models.APITypeCompetitorAnalysis,
			UsageAmount:     1,
			CreditsConsumed: CompetitorCreditCost,
			OperationType:   models.OpCompetitorAnalyze,
		})
	}
	return AnalyzeResult{Keyword: keyword, Country: country, Analysis: analysis}, nil
}

// recordUsage is best-effort: failures are logged, never returned.
func (s *CompetitorService) recordUsage(u models.APIUsage) {
	write := func() {
		ctx, cancel := context.WithTimeout(context.Background(), usageWriteTimeout)
		defer cancel()
		if _, err := s.usage.Create(ctx, u); err != nil {
			s.log.Warn("competitor usage record failed", "user_id", u.UserID, "workspace_id", u.WorkspaceID, "err", err)
		}
	}
	if s.wp == nil {
		write()
		return
	}
	s.wp.Submit(write)
}
