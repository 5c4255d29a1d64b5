package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType represents the kind of balance-affecting event.
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeBetDebit   TransactionType = "bet_debit"
	TransactionTypeBetCredit  TransactionType = "bet_credit"
	TransactionTypeRefund     TransactionType = "refund"
)

// Sign returns the direction this transaction type moves the balance.
func (t TransactionType) Sign() int64 {
	switch t {
	case TransactionTypeWithdrawal, TransactionTypeBetDebit:
		return -1
	default:
		return 1
	}
}

// TransactionStatus is the state of a transaction. Bet debits/credits and
// refunds are created `completed` in the same commit as their balance change;
// deposits and withdrawals start `pending` and are settled by the payment
// gateway callback.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// Transaction is an append-only record of a balance-affecting event with a
// reference back to its cause (bet id or external payment id). It is never
// mutated after creation except for the pending->completed/failed status
// transition on deposits and withdrawals.
type Transaction struct {
	ID          uuid.UUID         `json:"id"`
	AccountID   uuid.UUID         `json:"account_id"`
	Type        TransactionType   `json:"type"`
	Amount      int64             `json:"amount"`
	Status      TransactionStatus `json:"status"`
	Reference   string            `json:"reference"`
	CreatedAt   time.Time         `json:"created_at"`
	ProcessedAt *time.Time        `json:"processed_at,omitempty"`
}

// IsTerminal returns true once the transaction can no longer change status.
func (t *Transaction) IsTerminal() bool {
	return t.Status == TransactionStatusCompleted || t.Status == TransactionStatusFailed
}

// AppliedDelta returns the signed amount this transaction has contributed to
// the account balance in its current status. Withdrawals debit at creation
// (so pending withdrawals count); deposits credit only on completion; a
// failed withdrawal has been refunded and contributes nothing. Summing
// AppliedDelta over an account's transactions reconciles exactly with its
// balance delta since creation.
func (t *Transaction) AppliedDelta() int64 {
	switch t.Type {
	case TransactionTypeWithdrawal:
		if t.Status == TransactionStatusFailed {
			return 0
		}
		return -t.Amount
	case TransactionTypeDeposit:
		if t.Status != TransactionStatusCompleted {
			return 0
		}
		return t.Amount
	default:
		return t.Type.Sign() * t.Amount
	}
}
