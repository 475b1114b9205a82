package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/baharkarakas/autoblog-backend/internal/crypto"
	"github.com/baharkarakas/autoblog-backend/internal/models"
	repo "github.com/baharkarakas/autoblog-backend/internal/repository"
)

var providerAPITypes = map[string]struct{}{
	models.APITypeOpenAI: {},
	models.APITypeGemini: {},
}

// CredentialService stores per-workspace provider keys. Secrets are sealed when
// a credentials key is configured.
type CredentialService struct {
	keys   repo.APIKeys
	sealer *crypto.Sealer
}

func NewCredentialService(keys repo.APIKeys, sealer *crypto.Sealer) *CredentialService {
	return &CredentialService{keys: keys, sealer: sealer}
}

func validateCredentialTarget(workspaceID, apiType string) error {
	if strings.TrimSpace(workspaceID) == "" {
		return fmt.Errorf("%w: workspaceId", ErrMissingParameter)
	}
	if _, ok := providerAPITypes[apiType]; !ok {
		return fmt.Errorf("%w: unsupported apiType %q", ErrInvalidParameter, apiType)
	}
	return nil
}

func (s *CredentialService) SetCredential(ctx context.Context, workspaceID, apiType, secret string) error {
	if err := validateCredentialTarget(workspaceID, apiType); err != nil {
		return err
	}
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return fmt.Errorf("%w: apiKey", ErrMissingParameter)
	}
	sealed, err := s.sealer.Seal(secret)
	if err != nil {
		return fmt.Errorf("seal credential: %w", err)
	}
	return s.keys.Upsert(ctx, models.APIKey{
		WorkspaceID: workspaceID,
		APIType:     apiType,
		Secret:      sealed,
		IsActive:    true,
	})
}

// ActiveCredential returns the plaintext key or ErrNoValidCredential.
func (s *CredentialService) ActiveCredential(ctx context.Context, workspaceID, apiType string) (string, error) {
	k, err := s.keys.GetActive(ctx, workspaceID, apiType)
	if errors.Is(err, repo.ErrNotFound) {
		return "", ErrNoValidCredential
	}
	if err != nil {
		return "", fmt.Errorf("load credential: %w", err)
	}
	if !k.IsActive {
		return "", ErrNoValidCredential
	}
	plain, err := s.sealer.Open(k.Secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoValidCredential, err)
	}
	if strings.TrimSpace(plain) == "" {
		return "", ErrNoValidCredential
	}
	return plain, nil
}

func (s *CredentialService) DeactivateCredential(ctx context.Context, workspaceID, apiType string) error {
	if err := validateCredentialTarget(workspaceID, apiType); err != nil {
		return err
	}
	return s.keys.SetActive(ctx, workspaceID, apiType, false)
}
