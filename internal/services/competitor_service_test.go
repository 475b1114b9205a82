package services

import (
	"context"
	"errors"
	"testing"

	"github.com/baharkarakas/autoblog-backend/internal/competitor"
	"github.com/baharkarakas/autoblog-backend/internal/logger"
	"github.com/baharkarakas/autoblog-backend/internal/models"
	"github.com/baharkarakas/autoblog-backend/internal/worker"
)

type countingSource struct {
	competitor.Source
	calls int
	err   error
}

func (s *countingSource) Fetch(ctx context.Context, keyword, country string) ([]models.CompetitorStat, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.Source.Fetch(ctx, keyword, country)
}

func TestAnalyzeEmptyKeyword(t *testing.T) {
	db := newMemDB()
	src := &countingSource{Source: competitor.NewFixtureSource()}
	svc := NewCompetitorService(src, db.usage(), nil, logger.Discard())

	_, err := svc.Analyze(context.Background(), AnalyzeInput{Keyword: "   ", UserID: "u1", WorkspaceID: "ws-1"})
	if !errors.Is(err, ErrMissingKeyword) {
		t.Fatalf("err = %v, want ErrMissingKeyword", err)
	}
	if src.calls != 0 || len(db.snapshot().usage) != 0 {
		t.Fatal("source or storage touched for empty keyword")
	}
}

func TestAnalyzeFallsBackToBaselineCountry(t *testing.T) {
	svc := NewCompetitorService(competitor.NewFixtureSource(), newMemDB().usage(), nil, logger.Discard())
	us, err := svc.Analyze(context.Background(), AnalyzeInput{Keyword: "seo tips", Country: "us"})
	if err != nil {
		t.Fatal(err)
	}
	zz, err := svc.Analyze(context.Background(), AnalyzeInput{Keyword: "seo tips", Country: "zz"})
	if err != nil {
		t.Fatal(err)
	}
	if zz.Country != "us" || us.Analysis.WordCount != zz.Analysis.WordCount {
		t.Fatalf("fallback mismatch: %+v vs %+v", us.Analysis.WordCount, zz.Analysis.WordCount)
	}
}

func TestAnalyzeRecordsUsageOnPool(t *testing.T) {
	db := newMemDB()
	wp := worker.NewPool(1)
	svc := NewCompetitorService(competitor.NewFixtureSource(), db.usage(), wp, logger.Discard())

	if _, err := svc.Analyze(context.Background(), AnalyzeInput{Keyword: "seo", Country: "uk", UserID: "u1", WorkspaceID: "ws-1"}); err != nil {
		t.Fatal(err)
	}
	// anonymous call: no usage row
	if _, err := svc.Analyze(context.Background(), AnalyzeInput{Keyword: "seo", UserID: "u1"}); err != nil {
		t.Fatal(err)
	}
	wp.Stop()

	st := db.snapshot()
	if len(st.usage) != 1 {
		t.Fatalf("usage rows = %d, want 1", len(st.usage))
	}
	u := st.usage[0]
	if u.APIType != models.APITypeCompetitorAnalysis || u.OperationType != models.OpCompetitorAnalyze || u.CreditsConsumed != CompetitorCreditCost {
		t.Fatalf("usage = %+v", u)
	}
	if len(st.credits) != 0 {
		t.Fatal("competitor analysis must not debit the ledger")
	}
}

func TestAnalyzeUsageFailureIsIgnored(t *testing.T) {
	db := newMemDB()
	db.usageErr = errors.New("db down")
	svc := NewCompetitorService(competitor.NewFixtureSource(), db.usage(), nil, logger.Discard())
	res, err := svc.Analyze(context.Background(), AnalyzeInput{Keyword: "seo", UserID: "u1", WorkspaceID: "ws-1"})
	if err != nil {
		t.Fatalf("usage failure leaked: %v", err)
	}
	if len(res.Analysis.Competitors) != 5 {
		t.Fatalf("competitors = %d", len(res.Analysis.Competitors))
	}
}

func TestAnalyzeSourceFailure(t *testing.T) {
	src := &countingSource{Source: competitor.NewFixtureSource(), err: errors.New("serp down")}
	svc := NewCompetitorService(src, newMemDB().usage(), nil, logger.Discard())
	if _, err := svc.Analyze(context.Background(), AnalyzeInput{Keyword: "seo"}); !errors.Is(err, ErrCompetitorSourceFailed) {
		t.Fatalf("err = %v", err)
	}
}

func TestWorkspaceCreateGrantsOnce(t *testing.T) {
	db := newMemDB()
	svc := NewWorkspaceService(db, 50, logger.Discard())
	ctx := context.Background()

	w, err := svc.Create(ctx, CreateWorkspaceInput{Name: " Blog ", OwnerID: "u1"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if w.ID == "" || w.Name != "Blog" {
		t.Fatalf("workspace = %+v", w)
	}
	if _, err := svc.Create(ctx, CreateWorkspaceInput{Name: "Second", OwnerID: "u1"}); err != nil {
		t.Fatal(err)
	}
	st := db.snapshot()
	if st.members[w.ID+"|u1"] != models.RoleOwner {
		t.Fatal("owner membership missing")
	}
	if bal := sum(st.credits, "u1"); bal != 50 {
		t.Fatalf("balance = %d, want a single initial grant of 50", bal)
	}
	if _, err := svc.Create(ctx, CreateWorkspaceInput{OwnerID: "u1"}); !errors.Is(err, ErrMissingParameter) {
		t.Fatalf("err = %v", err)
	}
}
