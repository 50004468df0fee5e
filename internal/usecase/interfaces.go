package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	// Create persists a new account. The store enforces number uniqueness
	// and the one-open-account-per-type rule at write time and reports
	// violations as domain.ErrDuplicateAccountNumber and
	// domain.ErrAccountTypeTaken.
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	// NumberExists is a pre-insert optimization only; Create remains the
	// source of truth for uniqueness under concurrent callers.
	NumberExists(ctx context.Context, number string) (bool, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Account, error)
}

// LedgerRepository owns the atomic balance-mutation-plus-record operation.
type LedgerRepository interface {
	// ApplyFunding increments the account balance and appends a completed
	// transaction as one indivisible storage-level operation. The increment
	// happens inside the store; callers never compute the new balance.
	// Returns domain.ErrAccountNotFound or domain.ErrAccountNotActive with
	// zero state change on failure.
	ApplyFunding(ctx context.Context, accountID string, amount decimal.Decimal, description string) (*domain.Transaction, decimal.Decimal, error)
}

// TransactionRepository defines read access to the transaction log.
type TransactionRepository interface {
	// ListByAccount returns transactions ordered by created_at descending,
	// ties broken by insertion order (later insertion first).
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
	// SumCompleted returns completed deposits minus completed withdrawals.
	SumCompleted(ctx context.Context, accountID string) (decimal.Decimal, error)
}

// IDGenerator generates unique internal IDs.
type IDGenerator interface {
	Generate() string
}

// AccountNumberGenerator produces candidate external account numbers from
// a cryptographically secure source.
type AccountNumberGenerator interface {
	Generate() (string, error)
}

// FieldEncryptor encrypts sensitive user fields before persistence.
type FieldEncryptor interface {
	Encrypt(plaintext string) ([]byte, error)
	Decrypt(ciphertext []byte) (string, error)
}

// LoginLimiter bounds authentication attempts per client.
type LoginLimiter interface {
	// Allow records an attempt for key and reports whether it is within
	// the window's budget.
	Allow(ctx context.Context, key string) (bool, error)
	// Reset clears the attempt counter, called after a successful login.
	Reset(ctx context.Context, key string) error
}
