package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/baharkarakas/autoblog-backend/internal/metrics"
	"github.com/baharkarakas/autoblog-backend/internal/models"
	repo "github.com/baharkarakas/autoblog-backend/internal/repository"
)

const (
	defaultUsagePage = 50
	maxUsagePage     = 200
)

// CreditService is the credit/usage gate. Every debit runs inside a per-user
// locked unit of work, so the balance check and both inserts commit together.
type CreditService struct {
	uow     repo.UnitOfWork
	credits repo.Credits
	usage   repo.Usage
	log     *slog.Logger
}

func NewCreditService(uow repo.UnitOfWork, credits repo.Credits, usage repo.Usage, log *slog.Logger) *CreditService {
	if log == nil {
		log = slog.Default()
	}
	return &CreditService{uow: uow, credits: credits, usage: usage, log: log}
}

type ConsumeInput struct {
	UserID      string
	WorkspaceID string
	APIType     string
	Operation   string
	Credits     int64
}

// missing names the first absent field, or "" when the input is complete.
func (in ConsumeInput) missing() string {
	switch {
	case strings.TrimSpace(in.UserID) == "":
		return "userId"
	case strings.TrimSpace(in.WorkspaceID) == "":
		return "workspaceId"
	case strings.TrimSpace(in.APIType) == "":
		return "apiType"
	case strings.TrimSpace(in.Operation) == "":
		return "operation"
	case in.Credits <= 0:
		return "credits"
	}
	return ""
}

// ----------------- CONSUME -----------------

func (s *CreditService) Consume(ctx context.Context, in ConsumeInput) error {
	if f := in.missing(); f != "" {
		metrics.CreditRejections.WithLabelValues("missing_parameter").Inc()
		return fmt.Errorf("%w: %s", ErrMissingParameter, f)
	}

	err := s.uow.WithUserTx(ctx, in.UserID, func(st repo.Store) error {
		ok, err := st.Credits.HasCredits(ctx, in.UserID, in.Credits)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCreditCheckFailed, err)
		}
		if !ok {
			return ErrInsufficientCredits
		}
		if _, err := st.Credits.Append(ctx, models.CreditEntry{
			UserID:      in.UserID,
			WorkspaceID: in.WorkspaceID,
			Amount:      -in.Credits,
			Type:        models.CreditUsed,
		}); err != nil {
			return fmt.Errorf("%w: %v", ErrLedgerWriteFailed, err)
		}
		if _, err := st.Usage.Create(ctx, models.APIUsage{
			UserID:          in.UserID,
			WorkspaceID:     in.WorkspaceID,
			APIType:         in.APIType,
			UsageAmount:     1,
			CreditsConsumed: in.Credits,
			OperationType:   in.Operation,
		}); err != nil {
			// ledger satırı da geri alınır
			return fmt.Errorf("%w: %v", ErrUsageWriteFailed, err)
		}
		return nil
	})
	if err != nil {
		err = classifyGateError(err)
		metrics.CreditRejections.WithLabelValues(rejectionReason(err)).Inc()
		if !errors.Is(err, ErrInsufficientCredits) {
			s.log.Error("credit consume failed", "user_id", in.UserID, "api_type", in.APIType, "err", err)
		}
		return err
	}
	metrics.CreditsConsumed.WithLabelValues(in.APIType).Add(float64(in.Credits))
	return nil
}

// classifyGateError maps begin/lock/commit failures onto the gate taxonomy.
func classifyGateError(err error) error {
	for _, known := range []error{ErrCreditCheckFailed, ErrInsufficientCredits, ErrLedgerWriteFailed, ErrUsageWriteFailed} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", ErrLedgerWriteFailed, err)
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrInsufficientCredits):
		return "insufficient"
	case errors.Is(err, ErrCreditCheckFailed):
		return "check_failed"
	default:
		return "write_failed"
	}
}

// ----------------- REFUND -----------------

// Refund compensates an earlier Consume: a positive refunded ledger entry and a
// usage row with negative credits_consumed.
func (s *CreditService) Refund(ctx context.Context, in ConsumeInput) error {
	if f := in.missing(); f != "" {
		return fmt.Errorf("%w: %s", ErrMissingParameter, f)
	}
	err := s.uow.WithUserTx(ctx, in.UserID, func(st repo.Store) error {
		if _, err := st.Credits.Append(ctx, models.CreditEntry{
			UserID:      in.UserID,
			WorkspaceID: in.WorkspaceID,
			Amount:      in.Credits,
			Type:        models.CreditRefunded,
		}); err != nil {
			return fmt.Errorf("%w: %v", ErrLedgerWriteFailed, err)
		}
		if _, err := st.Usage.Create(ctx, models.APIUsage{
			UserID:          in.UserID,
			WorkspaceID:     in.WorkspaceID,
			APIType:         in.APIType,
			CreditsConsumed: -in.Credits,
			OperationType:   models.OpRefund,
		}); err != nil {
			return fmt.Errorf("%w: %v", ErrUsageWriteFailed, err)
		}
		return nil
	})
	if err != nil {
		metrics.CreditRefunds.WithLabelValues("failed").Inc()
		return err
	}
	metrics.CreditRefunds.WithLabelValues("ok").Inc()
	return nil
}

// ----------------- GRANT / READ -----------------

type GrantInput struct {
	UserID      string
	WorkspaceID string
	Credits     int64
	Type        models.CreditTxnType
}

func (s *CreditService) Grant(ctx context.Context, in GrantInput) (models.CreditEntry, error) {
	switch {
	case strings.TrimSpace(in.UserID) == "":
		return models.CreditEntry{}, fmt.Errorf("%w: userId", ErrMissingParameter)
	case strings.TrimSpace(in.WorkspaceID) == "":
		return models.CreditEntry{}, fmt.Errorf("%w: workspaceId", ErrMissingParameter)
	case in.Credits <= 0:
		return models.CreditEntry{}, fmt.Errorf("%w: credits", ErrMissingParameter)
	}
	if in.Type == "" {
		in.Type = models.CreditPurchased
	}
	if !in.Type.Grantable() {
		return models.CreditEntry{}, fmt.Errorf("%w: type %q cannot be granted", ErrInvalidParameter, in.Type)
	}

	var out models.CreditEntry
	err := s.uow.WithUserTx(ctx, in.UserID, func(st repo.Store) error {
		e, err := st.Credits.Append(ctx, models.CreditEntry{
			UserID:      in.UserID,
			WorkspaceID: in.WorkspaceID,
			Amount:      in.Credits,
			Type:        in.Type,
		})
		if err != nil {
			return fmt.Errorf("%w: %v", ErrLedgerWriteFailed, err)
		}
		out = e
		return nil
	})
	if err != nil {
		return models.CreditEntry{}, err
	}
	s.log.Info("credits granted", "user_id", in.UserID, "amount", in.Credits, "type", in.Type)
	return out, nil
}

func (s *CreditService) Balance(ctx context.Context, userID string) (int64, error) {
	if strings.TrimSpace(userID) == "" {
		return 0, fmt.Errorf("%w: userId", ErrMissingParameter)
	}
	return s.credits.Balance(ctx, userID)
}

func (s *CreditService) ListUsage(ctx context.Context, workspaceID string, limit, offset int) ([]models.APIUsage, error) {
	if strings.TrimSpace(workspaceID) == "" {
		return nil, fmt.Errorf("%w: workspaceId", ErrMissingParameter)
	}
	if limit <= 0 {
		limit = defaultUsagePage
	}
	limit = min(limit, maxUsagePage)
	offset = max(offset, 0)
	return s.usage.ListByWorkspace(ctx, workspaceID, limit, offset)
}
