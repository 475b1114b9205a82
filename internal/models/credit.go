package models

import "time"

type CreditTxnType string

const (
	CreditInitial   CreditTxnType = "initial"
	CreditPurchased CreditTxnType = "purchased"
	CreditUsed      CreditTxnType = "used"
	CreditRefunded  CreditTxnType = "refunded"
)

// CreditEntry is one append-only row of the credit ledger. Amount is signed.
type CreditEntry struct {
	ID          string        `json:"id"`
	UserID      string        `json:"user_id"`
	WorkspaceID string        `json:"workspace_id"`
	Amount      int64         `json:"credit_amount"`
	Type        CreditTxnType `json:"transaction_type"`
	CreatedAt   time.Time     `json:"created_at"`
}

// Grantable reports whether t may be appended through a grant.
func (t CreditTxnType) Grantable() bool {
	return t == CreditInitial || t == CreditPurchased
}
