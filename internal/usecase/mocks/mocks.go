package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	CreateFunc     func(ctx context.Context, user *domain.User) error
	GetByIDFunc    func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc       func(ctx context.Context, account *domain.Account) error
	GetByIDFunc      func(ctx context.Context, id string) (*domain.Account, error)
	NumberExistsFunc func(ctx context.Context, number string) (bool, error)
	ListByOwnerFunc  func(ctx context.Context, ownerID string) ([]*domain.Account, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Number == account.Number {
			return domain.ErrDuplicateAccountNumber
		}
		if a.OwnerID == account.OwnerID && a.Type == account.Type && a.IsOpen() {
			return domain.ErrAccountTypeTaken
		}
	}
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.accounts[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) NumberExists(ctx context.Context, number string) (bool, error) {
	if m.NumberExistsFunc != nil {
		return m.NumberExistsFunc(ctx, number)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.accounts {
		if a.Number == number {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockAccountRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Account, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, a := range m.accounts {
		if a.OwnerID == ownerID {
			copied := *a
			accounts = append(accounts, &copied)
		}
	}
	return accounts, nil
}

// MockLedgerRepository is a mock implementation of LedgerRepository.
type MockLedgerRepository struct {
	mu    sync.Mutex
	Calls int

	ApplyFundingFunc func(ctx context.Context, accountID string, amount decimal.Decimal, description string) (*domain.Transaction, decimal.Decimal, error)
}

func NewMockLedgerRepository() *MockLedgerRepository {
	return &MockLedgerRepository{}
}

func (m *MockLedgerRepository) ApplyFunding(ctx context.Context, accountID string, amount decimal.Decimal, description string) (*domain.Transaction, decimal.Decimal, error) {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
	if m.ApplyFundingFunc != nil {
		return m.ApplyFundingFunc(ctx, accountID, amount, description)
	}
	return &domain.Transaction{
		ID:          "mock-txn",
		AccountID:   accountID,
		Kind:        domain.TransactionKindDeposit,
		Amount:      amount,
		Status:      domain.TransactionStatusCompleted,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}, amount, nil
}

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu   sync.RWMutex
	txns []*domain.Transaction

	ListByAccountFunc func(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
	SumCompletedFunc  func(ctx context.Context, accountID string) (decimal.Decimal, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

// Add seeds a transaction for list and sum defaults.
func (m *MockTransactionRepository) Add(txn *domain.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txns = append(m.txns, txn)
}

func (m *MockTransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Transaction
	for i := len(m.txns) - 1; i >= 0; i-- {
		if m.txns[i].AccountID == accountID {
			result = append(result, m.txns[i])
		}
	}
	return result, nil
}

func (m *MockTransactionRepository) SumCompleted(ctx context.Context, accountID string) (decimal.Decimal, error) {
	if m.SumCompletedFunc != nil {
		return m.SumCompletedFunc(ctx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum := decimal.Zero
	for _, t := range m.txns {
		if t.AccountID == accountID && t.Status == domain.TransactionStatusCompleted {
			sum = sum.Add(t.Signed())
		}
	}
	return sum, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockNumberGenerator is a mock implementation of AccountNumberGenerator.
type MockNumberGenerator struct {
	GenerateFunc func() (string, error)
	counter      int
	mu           sync.Mutex
}

func NewMockNumberGenerator() *MockNumberGenerator {
	return &MockNumberGenerator{}
}

func (m *MockNumberGenerator) Generate() (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("%010d", m.counter), nil
}

// MockFieldEncryptor is a mock implementation of FieldEncryptor.
type MockFieldEncryptor struct {
	EncryptFunc func(plaintext string) ([]byte, error)
	DecryptFunc func(ciphertext []byte) (string, error)
}

func NewMockFieldEncryptor() *MockFieldEncryptor {
	return &MockFieldEncryptor{}
}

func (m *MockFieldEncryptor) Encrypt(plaintext string) ([]byte, error) {
	if m.EncryptFunc != nil {
		return m.EncryptFunc(plaintext)
	}
	return []byte("enc:" + plaintext), nil
}

func (m *MockFieldEncryptor) Decrypt(ciphertext []byte) (string, error) {
	if m.DecryptFunc != nil {
		return m.DecryptFunc(ciphertext)
	}
	if len(ciphertext) > 4 {
		return string(ciphertext[4:]), nil
	}
	return "", nil
}
