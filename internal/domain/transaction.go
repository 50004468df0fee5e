package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind identifies the direction of a ledger transaction.
type TransactionKind string

const (
	TransactionKindDeposit    TransactionKind = "deposit"
	TransactionKindWithdrawal TransactionKind = "withdrawal"
)

// TransactionStatus represents the settlement state of a transaction.
// A transaction is never mutated after it reaches completed or failed.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// Transaction represents a single movement on an account's ledger.
// CreatedAt is assigned at persistence time and is the sole ordering key
// for history; the store breaks ties by insertion order.
type Transaction struct {
	ID          string
	AccountID   string
	Kind        TransactionKind
	Amount      decimal.Decimal
	Status      TransactionStatus
	Description string
	CreatedAt   time.Time
}

// Signed returns the amount with the sign implied by the kind: deposits
// count positive, withdrawals negative.
func (t *Transaction) Signed() decimal.Decimal {
	if t.Kind == TransactionKindWithdrawal {
		return t.Amount.Neg()
	}
	return t.Amount
}
