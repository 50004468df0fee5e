package memory

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

// Store is an in-memory implementation of the repository interfaces,
// suitable for demos and tests. Accounts, users and transactions live in
// maps guarded by a store-wide mutex; each account additionally carries
// its own mutex so concurrent deposits to different accounts do not
// serialize on each other.
type Store struct {
	mu sync.RWMutex

	users        map[string]*domain.User
	usersByEmail map[string]*domain.User

	accounts  map[string]*accountState
	numbers   map[string]struct{}
	openTypes map[ownerType]struct{}

	idGen usecase.IDGenerator
}

type accountState struct {
	mu      sync.Mutex
	account domain.Account
	// txns holds transactions in insertion order; reads walk it backwards
	// so later insertions come first.
	txns []domain.Transaction
}

type ownerType struct {
	ownerID     string
	accountType domain.AccountType
}

// NewStore creates an empty Store.
func NewStore(idGen usecase.IDGenerator) *Store {
	return &Store{
		users:        make(map[string]*domain.User),
		usersByEmail: make(map[string]*domain.User),
		accounts:     make(map[string]*accountState),
		numbers:      make(map[string]struct{}),
		openTypes:    make(map[ownerType]struct{}),
		idGen:        idGen,
	}
}

// CreateUser persists a new user.
func (s *Store) CreateUser(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.usersByEmail[user.Email]; ok {
		return domain.ErrEmailTaken
	}

	u := *user
	s.users[u.ID] = &u
	s.usersByEmail[u.Email] = &u

	return nil
}

// GetUserByID retrieves a user by ID.
func (s *Store) GetUserByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	u := *user

	return &u, nil
}

// GetUserByEmail retrieves a user by email.
func (s *Store) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.usersByEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	u := *user

	return &u, nil
}

// CreateAccount persists a new account, enforcing number uniqueness and
// the one-open-account-per-type rule under the store lock.
func (s *Store) CreateAccount(_ context.Context, account *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.numbers[account.Number]; ok {
		return domain.ErrDuplicateAccountNumber
	}

	key := ownerType{ownerID: account.OwnerID, accountType: account.Type}
	if account.IsOpen() {
		if _, ok := s.openTypes[key]; ok {
			return domain.ErrAccountTypeTaken
		}
	}

	s.accounts[account.ID] = &accountState{account: *account}
	s.numbers[account.Number] = struct{}{}
	if account.IsOpen() {
		s.openTypes[key] = struct{}{}
	}

	return nil
}

// GetAccountByID retrieves an account by ID.
func (s *Store) GetAccountByID(_ context.Context, id string) (*domain.Account, error) {
	s.mu.RLock()
	state, ok := s.accounts[id]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	account := state.account

	return &account, nil
}

// NumberExists checks whether an account number is already taken.
func (s *Store) NumberExists(_ context.Context, number string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.numbers[number]

	return ok, nil
}

// ListAccountsByOwner lists all accounts owned by ownerID, oldest first.
func (s *Store) ListAccountsByOwner(_ context.Context, ownerID string) ([]*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var accounts []*domain.Account
	for _, state := range s.accounts {
		state.mu.Lock()
		if state.account.OwnerID == ownerID {
			account := state.account
			accounts = append(accounts, &account)
		}
		state.mu.Unlock()
	}

	sortAccountsByCreation(accounts)

	return accounts, nil
}

// ApplyFunding increments the balance and appends the transaction while
// holding the account's mutex, so the two effects land together and
// concurrent deposits never lose an increment.
func (s *Store) ApplyFunding(_ context.Context, accountID string, amount decimal.Decimal, description string) (*domain.Transaction, decimal.Decimal, error) {
	s.mu.RLock()
	state, ok := s.accounts[accountID]
	s.mu.RUnlock()

	if !ok {
		return nil, decimal.Zero, domain.ErrAccountNotFound
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	if !state.account.CanFund() {
		return nil, decimal.Zero, domain.ErrAccountNotActive
	}

	now := time.Now().UTC()

	txn := domain.Transaction{
		ID:          s.idGen.Generate(),
		AccountID:   accountID,
		Kind:        domain.TransactionKindDeposit,
		Amount:      amount,
		Status:      domain.TransactionStatusCompleted,
		Description: description,
		CreatedAt:   now,
	}

	state.account.Balance = state.account.Balance.Add(amount)
	state.account.UpdatedAt = now
	state.txns = append(state.txns, txn)

	return &txn, state.account.Balance, nil
}

// ListTransactionsByAccount returns transactions newest first. Within the
// same timestamp, later insertions come first.
func (s *Store) ListTransactionsByAccount(_ context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	s.mu.RLock()
	state, ok := s.accounts[accountID]
	s.mu.RUnlock()

	if !ok {
		return nil, nil
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	var txns []*domain.Transaction
	for i := len(state.txns) - 1 - offset; i >= 0 && len(txns) < limit; i-- {
		txn := state.txns[i]
		txns = append(txns, &txn)
	}

	return txns, nil
}

// SumCompletedTransactions returns completed deposits minus completed
// withdrawals for the account.
func (s *Store) SumCompletedTransactions(_ context.Context, accountID string) (decimal.Decimal, error) {
	s.mu.RLock()
	state, ok := s.accounts[accountID]
	s.mu.RUnlock()

	if !ok {
		return decimal.Zero, nil
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	sum := decimal.Zero
	for _, txn := range state.txns {
		if txn.Status != domain.TransactionStatusCompleted {
			continue
		}

		sum = sum.Add(txn.Signed())
	}

	return sum, nil
}

// SetAccountStatus transitions an account's status, maintaining the
// open-type registry. Used by the demo seeding path and tests.
func (s *Store) SetAccountStatus(_ context.Context, accountID string, status domain.AccountStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.accounts[accountID]
	if !ok {
		return domain.ErrAccountNotFound
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	key := ownerType{ownerID: state.account.OwnerID, accountType: state.account.Type}
	if status == domain.AccountStatusClosed {
		delete(s.openTypes, key)
	} else {
		s.openTypes[key] = struct{}{}
	}

	state.account.Status = status
	state.account.UpdatedAt = time.Now().UTC()

	return nil
}

func sortAccountsByCreation(accounts []*domain.Account) {
	for i := 1; i < len(accounts); i++ {
		for j := i; j > 0 && accounts[j].CreatedAt.Before(accounts[j-1].CreatedAt); j-- {
			accounts[j], accounts[j-1] = accounts[j-1], accounts[j]
		}
	}
}
