package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/baharkarakas/autoblog-backend/internal/logger"
	"github.com/baharkarakas/autoblog-backend/internal/models"
)

func newCreditService(db *memDB) *CreditService {
	return NewCreditService(db, db.credits(), db.usage(), logger.Discard())
}

func validConsume() ConsumeInput {
	return ConsumeInput{UserID: "u1", WorkspaceID: "ws-1", APIType: models.APITypeOpenAI, Operation: models.OpKeywordGeneration, Credits: 2}
}

func TestConsumeWritesLedgerAndUsage(t *testing.T) {
	db := newMemDB()
	db.seed("u1", 10)
	svc := newCreditService(db)

	if err := svc.Consume(context.Background(), validConsume()); err != nil {
		t.Fatalf("Consume: %v", err)
	}
	st := db.snapshot()
	if len(st.credits) != 2 || len(st.usage) != 1 {
		t.Fatalf("rows: credits=%d usage=%d", len(st.credits), len(st.usage))
	}
	used := st.credits[1]
	if used.Amount != -2 || used.Type != models.CreditUsed || used.WorkspaceID != "ws-1" {
		t.Fatalf("ledger entry = %+v", used)
	}
	u := st.usage[0]
	if u.CreditsConsumed != 2 || u.OperationType != models.OpKeywordGeneration || u.APIType != models.APITypeOpenAI {
		t.Fatalf("usage row = %+v", u)
	}
	if bal, _ := svc.Balance(context.Background(), "u1"); bal != 8 {
		t.Fatalf("balance = %d, want 8", bal)
	}
}

func TestConsumeMissingParameter(t *testing.T) {
	cases := map[string]func(*ConsumeInput){
		"userId":      func(in *ConsumeInput) { in.UserID = "" },
		"workspaceId": func(in *ConsumeInput) { in.WorkspaceID = " " },
		"apiType":     func(in *ConsumeInput) { in.APIType = "" },
		"operation":   func(in *ConsumeInput) { in.Operation = "" },
		"credits":     func(in *ConsumeInput) { in.Credits = 0 },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			db := newMemDB()
			db.seed("u1", 10)
			in := validConsume()
			mutate(&in)
			err := newCreditService(db).Consume(context.Background(), in)
			if !errors.Is(err, ErrMissingParameter) {
				t.Fatalf("err = %v, want ErrMissingParameter", err)
			}
			if db.checks != 0 {
				t.Fatal("storage was consulted for invalid input")
			}
		})
	}
}

func TestConsumeInsufficientWritesNothing(t *testing.T) {
	db := newMemDB()
	db.seed("u1", 1)
	err := newCreditService(db).Consume(context.Background(), validConsume())
	if !errors.Is(err, ErrInsufficientCredits) {
		t.Fatalf("err = %v, want ErrInsufficientCredits", err)
	}
	st := db.snapshot()
	if len(st.credits) != 1 || len(st.usage) != 0 {
		t.Fatalf("rows inserted: credits=%d usage=%d", len(st.credits)-1, len(st.usage))
	}
}

func TestConsumeFailures(t *testing.T) {
	cases := []struct {
		name  string
		setup func(*memDB)
		want  error
	}{
		{"check", func(db *memDB) { db.checkErr = errors.New("fn missing") }, ErrCreditCheckFailed},
		{"ledger", func(db *memDB) { db.ledgerErr = errors.New("disk full") }, ErrLedgerWriteFailed},
		{"usage", func(db *memDB) { db.usageErr = errors.New("constraint") }, ErrUsageWriteFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := newMemDB()
			db.seed("u1", 10)
			tc.setup(db)
			err := newCreditService(db).Consume(context.Background(), validConsume())
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			// usage failure must roll the ledger entry back as well
			if st := db.snapshot(); len(st.credits) != 1 || len(st.usage) != 0 {
				t.Fatalf("partial write: credits=%d usage=%d", len(st.credits), len(st.usage))
			}
		})
	}
}

func TestConsumeConcurrentNeverOverdraws(t *testing.T) {
	db := newMemDB()
	db.seed("u1", 7)
	svc := newCreditService(db)

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := svc.Consume(context.Background(), validConsume()); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if ok != 3 {
		t.Fatalf("%d debits succeeded, want 3", ok)
	}
	if bal := sum(db.snapshot().credits, "u1"); bal != 1 {
		t.Fatalf("balance = %d, want 1", bal)
	}
}

func TestRefund(t *testing.T) {
	db := newMemDB()
	db.seed("u1", 10)
	svc := newCreditService(db)
	in := validConsume()
	_ = svc.Consume(context.Background(), in)
	if err := svc.Refund(context.Background(), in); err != nil {
		t.Fatalf("Refund: %v", err)
	}
	st := db.snapshot()
	last := st.credits[len(st.credits)-1]
	if last.Type != models.CreditRefunded || last.Amount != 2 {
		t.Fatalf("refund entry = %+v", last)
	}
	if u := st.usage[len(st.usage)-1]; u.CreditsConsumed != -2 || u.OperationType != models.OpRefund {
		t.Fatalf("refund usage = %+v", u)
	}
	if sum(st.credits, "u1") != 10 {
		t.Fatal("balance not restored")
	}
}

func TestGrant(t *testing.T) {
	db := newMemDB()
	svc := newCreditService(db)

	e, err := svc.Grant(context.Background(), GrantInput{UserID: "u1", WorkspaceID: "ws-1", Credits: 25})
	if err != nil {
		t.Fatalf("Grant: %v", err)
	}
	if e.Type != models.CreditPurchased || e.Amount != 25 || e.ID == "" {
		t.Fatalf("entry = %+v", e)
	}
	if _, err := svc.Grant(context.Background(), GrantInput{UserID: "u1", WorkspaceID: "ws-1", Credits: 5, Type: models.CreditUsed}); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("err = %v, want ErrInvalidParameter", err)
	}
	if _, err := svc.Grant(context.Background(), GrantInput{UserID: "u1", Credits: 5}); !errors.Is(err, ErrMissingParameter) {
		t.Fatalf("err = %v, want ErrMissingParameter", err)
	}
}

func TestListUsagePaging(t *testing.T) {
	db := newMemDB()
	db.seed("u1", 100)
	svc := newCreditService(db)
	for i := 0; i < 3; i++ {
		_ = svc.Consume(context.Background(), validConsume())
	}
	got, err := svc.ListUsage(context.Background(), "ws-1", 2, 0)
	if err != nil || len(got) != 2 {
		t.Fatalf("page = %d, err = %v", len(got), err)
	}
	got, _ = svc.ListUsage(context.Background(), "ws-1", 0, -5)
	if len(got) != 3 {
		t.Fatalf("default page = %d, want 3", len(got))
	}
	if _, err := svc.ListUsage(context.Background(), "", 10, 0); !errors.Is(err, ErrMissingParameter) {
		t.Fatalf("err = %v", err)
	}
}
