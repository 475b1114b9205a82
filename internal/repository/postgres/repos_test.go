package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/baharkarakas/autoblog-backend/internal/models"
	repo "github.com/baharkarakas/autoblog-backend/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type stubRow struct {
	scan func(dest ...any) error
}

func (r stubRow) Scan(dest ...any) error {
	if r.scan == nil {
		return pgx.ErrNoRows
	}
	return r.scan(dest...)
}

type stubQuerier struct {
	tag     string
	execErr error
	row     stubRow
	query   string
	args    []any
}

func (s *stubQuerier) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	s.query, s.args = query, args
	return pgconn.NewCommandTag(s.tag), s.execErr
}

func (s *stubQuerier) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (s *stubQuerier) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	s.query, s.args = query, args
	return s.row
}

func TestAPIKeysGetActiveNoRows(t *testing.T) {
	r := &apiKeysRepo{&stubQuerier{}}
	_, err := r.GetActive(context.Background(), "ws", models.APITypeOpenAI)
	if !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestAPIKeysSetActiveMissing(t *testing.T) {
	r := &apiKeysRepo{&stubQuerier{tag: "UPDATE 0"}}
	if err := r.SetActive(context.Background(), "ws", "openai", false); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	r = &apiKeysRepo{&stubQuerier{tag: "UPDATE 1"}}
	if err := r.SetActive(context.Background(), "ws", "openai", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreditsAppendAssignsID(t *testing.T) {
	now := time.Now()
	q := &stubQuerier{row: stubRow{scan: func(dest ...any) error {
		*(dest[0].(*time.Time)) = now
		return nil
	}}}
	r := &creditsRepo{q}
	e, err := r.Append(context.Background(), models.CreditEntry{UserID: "u1", WorkspaceID: "w1", Amount: -2, Type: models.CreditUsed})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if e.ID == "" || !e.CreatedAt.Equal(now) {
		t.Fatalf("entry not populated: %+v", e)
	}
	if !strings.Contains(q.query, "INSERT INTO credits") {
		t.Fatalf("unexpected query %q", q.query)
	}
	if q.args[3].(int64) != -2 {
		t.Fatalf("amount arg = %v", q.args[3])
	}
}

func TestCreditsHasCreditsCallsAggregate(t *testing.T) {
	q := &stubQuerier{row: stubRow{scan: func(dest ...any) error {
		*(dest[0].(*bool)) = true
		return nil
	}}}
	ok, err := (&creditsRepo{q}).HasCredits(context.Background(), "u1", 2)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if !strings.Contains(q.query, "check_user_credits") {
		t.Fatalf("aggregate not used: %q", q.query)
	}
}
