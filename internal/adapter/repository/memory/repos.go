package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// UserRepository adapts Store to usecase.UserRepository.
type UserRepository struct{ store *Store }

// NewUserRepository creates a user repository backed by store.
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.store.CreateUser(ctx, user)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.store.GetUserByID(ctx, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.store.GetUserByEmail(ctx, email)
}

// AccountRepository adapts Store to usecase.AccountRepository.
type AccountRepository struct{ store *Store }

// NewAccountRepository creates an account repository backed by store.
func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	return r.store.CreateAccount(ctx, account)
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.store.GetAccountByID(ctx, id)
}

func (r *AccountRepository) NumberExists(ctx context.Context, number string) (bool, error) {
	return r.store.NumberExists(ctx, number)
}

func (r *AccountRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Account, error) {
	return r.store.ListAccountsByOwner(ctx, ownerID)
}

// LedgerRepository adapts Store to usecase.LedgerRepository.
type LedgerRepository struct{ store *Store }

// NewLedgerRepository creates a ledger repository backed by store.
func NewLedgerRepository(store *Store) *LedgerRepository {
	return &LedgerRepository{store: store}
}

func (r *LedgerRepository) ApplyFunding(ctx context.Context, accountID string, amount decimal.Decimal, description string) (*domain.Transaction, decimal.Decimal, error) {
	return r.store.ApplyFunding(ctx, accountID, amount, description)
}

// TransactionRepository adapts Store to usecase.TransactionRepository.
type TransactionRepository struct{ store *Store }

// NewTransactionRepository creates a transaction repository backed by store.
func NewTransactionRepository(store *Store) *TransactionRepository {
	return &TransactionRepository{store: store}
}

func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	return r.store.ListTransactionsByAccount(ctx, accountID, limit, offset)
}

func (r *TransactionRepository) SumCompleted(ctx context.Context, accountID string) (decimal.Decimal, error) {
	return r.store.SumCompletedTransactions(ctx, accountID)
}
