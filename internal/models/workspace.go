package models

import (
	"errors"
	"strings"
	"time"
)

type Workspace struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (w *Workspace) Validate() error {
	w.Name = strings.TrimSpace(w.Name)
	if w.Name == "" {
		return errors.New("name required")
	}
	if len(w.Name) > 120 {
		return errors.New("name too long")
	}
	if strings.TrimSpace(w.OwnerID) == "" {
		return errors.New("owner required")
	}
	return nil
}

const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

// APIKey is a per-workspace provider credential. Secret may be stored encrypted.
type APIKey struct {
	WorkspaceID string    `json:"workspace_id"`
	APIType     string    `json:"api_type"`
	Secret      string    `json:"-"`
	IsActive    bool      `json:"is_active"`
	UpdatedAt   time.Time `json:"updated_at"`
}
