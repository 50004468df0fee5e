package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType identifies the kind of account a customer holds. An owner
// may hold at most one non-closed account of each type.
type AccountType string

const (
	AccountTypeChecking AccountType = "checking"
	AccountTypeSavings  AccountType = "savings"
)

var validAccountTypes = map[AccountType]bool{
	AccountTypeChecking: true,
	AccountTypeSavings:  true,
}

// IsValid checks if the account type is a known type.
func (t AccountType) IsValid() bool {
	return validAccountTypes[t]
}

// AccountStatus represents the lifecycle state of an account.
// Only active accounts accept deposits.
type AccountStatus string

const (
	AccountStatusPending AccountStatus = "pending"
	AccountStatusActive  AccountStatus = "active"
	AccountStatusClosed  AccountStatus = "closed"
)

// Account represents a customer account holding a balance.
type Account struct {
	ID        string
	OwnerID   string
	Number    string
	Type      AccountType
	Status    AccountStatus
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanFund checks if the account accepts deposits in its current status.
func (a *Account) CanFund() bool {
	return a.Status == AccountStatusActive
}

// IsOpen reports whether the account counts against the one-per-type limit.
func (a *Account) IsOpen() bool {
	return a.Status != AccountStatusClosed
}
