package services

import (
	"context"
	"sync"
	"time"

	"github.com/baharkarakas/autoblog-backend/internal/models"
	repo "github.com/baharkarakas/autoblog-backend/internal/repository"
	"github.com/google/uuid"
)

// memState is the committed content of the fake database.
type memState struct {
	credits []models.CreditEntry
	usage   []models.APIUsage
	spaces  []models.Workspace
	members map[string]string // workspace|user -> role
}

func (s memState) clone() memState {
	out := memState{
		credits: append([]models.CreditEntry(nil), s.credits...),
		usage:   append([]models.APIUsage(nil), s.usage...),
		spaces:  append([]models.Workspace(nil), s.spaces...),
		members: make(map[string]string, len(s.members)),
	}
	for k, v := range s.members {
		out.members[k] = v
	}
	return out
}

// memDB implements repository.UnitOfWork plus the pool-level Credits and
// Usage repositories. Transactions work on a copy that is kept only on success.
type memDB struct {
	mu    sync.Mutex
	state memState

	checkErr  error
	usageErr  error
	ledgerErr error
	checks    int
}

func newMemDB() *memDB { return &memDB{state: memState{members: map[string]string{}}} }

func (db *memDB) WithUserTx(ctx context.Context, userID string, fn func(repo.Store) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	tx := db.state.clone()
	store := repo.Store{
		Credits:    &memCredits{db: db, st: &tx},
		Usage:      &memUsage{db: db, st: &tx},
		Workspaces: &memWorkspaces{st: &tx},
	}
	if err := fn(store); err != nil {
		return err
	}
	db.state = tx
	return nil
}

func (db *memDB) credits() repo.Credits {
	return &memCredits{db: db, st: &db.state}
}

func (db *memDB) usage() repo.Usage {
	return &memUsage{db: db, st: &db.state}
}

func (db *memDB) seed(userID string, amount int64) {
	db.state.credits = append(db.state.credits, models.CreditEntry{
		ID: uuid.NewString(), UserID: userID, WorkspaceID: "ws-1", Amount: amount, Type: models.CreditPurchased,
	})
}

func (db *memDB) snapshot() memState {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.state.clone()
}

type memCredits struct {
	db *memDB
	st *memState
}

func (r *memCredits) HasCredits(_ context.Context, userID string, amount int64) (bool, error) {
	r.db.checks++
	if r.db.checkErr != nil {
		return false, r.db.checkErr
	}
	return sum(r.st.credits, userID) >= amount, nil
}

func (r *memCredits) Append(_ context.Context, e models.CreditEntry) (models.CreditEntry, error) {
	if r.db.ledgerErr != nil {
		return models.CreditEntry{}, r.db.ledgerErr
	}
	e.ID = uuid.NewString()
	e.CreatedAt = time.Now()
	r.st.credits = append(r.st.credits, e)
	return e, nil
}

func (r *memCredits) Balance(_ context.Context, userID string) (int64, error) {
	return sum(r.st.credits, userID), nil
}

func (r *memCredits) HasEntryOfType(_ context.Context, userID string, t models.CreditTxnType) (bool, error) {
	for _, e := range r.st.credits {
		if e.UserID == userID && e.Type == t {
			return true, nil
		}
	}
	return false, nil
}

func sum(entries []models.CreditEntry, userID string) int64 {
	var total int64
	for _, e := range entries {
		if e.UserID == userID {
			total += e.Amount
		}
	}
	return total
}

type memUsage struct {
	db *memDB
	st *memState
}

func (r *memUsage) Create(_ context.Context, u models.APIUsage) (models.APIUsage, error) {
	if r.db.usageErr != nil {
		return models.APIUsage{}, r.db.usageErr
	}
	u.ID = uuid.NewString()
	u.Timestamp = time.Now()
	r.st.usage = append(r.st.usage, u)
	return u, nil
}

func (r *memUsage) ListByWorkspace(_ context.Context, workspaceID string, limit, offset int) ([]models.APIUsage, error) {
	var out []models.APIUsage
	for _, u := range r.st.usage {
		if u.WorkspaceID == workspaceID {
			out = append(out, u)
		}
	}
	if offset >= len(out) {
		return []models.APIUsage{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type memWorkspaces struct{ st *memState }

func (r *memWorkspaces) Create(_ context.Context, w models.Workspace) (models.Workspace, error) {
	w.ID = uuid.NewString()
	w.CreatedAt = time.Now()
	r.st.spaces = append(r.st.spaces, w)
	return w, nil
}

func (r *memWorkspaces) AddMember(_ context.Context, workspaceID, userID, role string) error {
	r.st.members[workspaceID+"|"+userID] = role
	return nil
}

// memKeys is a map-backed repository.APIKeys.
type memKeys struct {
	rows map[string]models.APIKey
	err  error
}

func newMemKeys() *memKeys { return &memKeys{rows: map[string]models.APIKey{}} }

func (r *memKeys) GetActive(_ context.Context, workspaceID, apiType string) (models.APIKey, error) {
	if r.err != nil {
		return models.APIKey{}, r.err
	}
	k, ok := r.rows[workspaceID+"|"+apiType]
	if !ok || !k.IsActive {
		return models.APIKey{}, repo.ErrNotFound
	}
	return k, nil
}

func (r *memKeys) Upsert(_ context.Context, k models.APIKey) error {
	k.UpdatedAt = time.Now()
	r.rows[k.WorkspaceID+"|"+k.APIType] = k
	return nil
}

func (r *memKeys) SetActive(_ context.Context, workspaceID, apiType string, active bool) error {
	k, ok := r.rows[workspaceID+"|"+apiType]
	if !ok {
		return repo.ErrNotFound
	}
	k.IsActive = active
	r.rows[workspaceID+"|"+apiType] = k
	return nil
}

// stubCompleter returns a canned reply or error and records the prompt.
type stubCompleter struct {
	apiType string
	reply   string
	err     error
	prompts []string
	keys    []string
}

func (s *stubCompleter) APIType() string { return s.apiType }

func (s *stubCompleter) Complete(_ context.Context, apiKey, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	s.keys = append(s.keys, apiKey)
	return s.reply, s.err
}
