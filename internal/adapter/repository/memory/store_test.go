package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/gobank/internal/domain"
)

type seqIDGen struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDGen) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("txn-%04d", g.n)
}

func newTestStore() *Store {
	return NewStore(&seqIDGen{})
}

func seedAccount(t *testing.T, store *Store, id string, status domain.AccountStatus) *domain.Account {
	t.Helper()

	account := &domain.Account{
		ID:        id,
		OwnerID:   "owner-1",
		Number:    fmt.Sprintf("%010s", id),
		Type:      domain.AccountTypeChecking,
		Status:    status,
		Balance:   decimal.Zero,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.CreateAccount(context.Background(), account))

	return account
}

func TestStoreConcurrentFunding(t *testing.T) {
	store := newTestStore()
	account := seedAccount(t, store, "acc-1", domain.AccountStatusActive)

	const workers = 100
	amount := decimal.RequireFromString("1.00")

	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := store.ApplyFunding(context.Background(), account.ID, amount, "deposit")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	got, err := store.GetAccountByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.RequireFromString("100.00")),
		"balance = %s, want 100.00", got.Balance)

	txns, err := store.ListTransactionsByAccount(context.Background(), account.ID, workers+1, 0)
	require.NoError(t, err)
	assert.Len(t, txns, workers)

	sum, err := store.SumCompletedTransactions(context.Background(), account.ID)
	require.NoError(t, err)
	assert.True(t, sum.Equal(got.Balance), "sum = %s, balance = %s", sum, got.Balance)
}

func TestStoreFundingSequence(t *testing.T) {
	store := newTestStore()
	account := seedAccount(t, store, "acc-1", domain.AccountStatusActive)
	ctx := context.Background()

	amounts := []string{"100.00", "50.00", "50.00"}
	for _, a := range amounts {
		_, _, err := store.ApplyFunding(ctx, account.ID, decimal.RequireFromString(a), "deposit")
		require.NoError(t, err)
	}

	got, err := store.GetAccountByID(ctx, account.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.RequireFromString("200.00")),
		"balance = %s, want 200.00", got.Balance)

	txns, err := store.ListTransactionsByAccount(ctx, account.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, txns, 3)

	// Newest first: the two 50.00 deposits, then the opening 100.00.
	assert.True(t, txns[0].Amount.Equal(decimal.RequireFromString("50.00")))
	assert.True(t, txns[1].Amount.Equal(decimal.RequireFromString("50.00")))
	assert.True(t, txns[2].Amount.Equal(decimal.RequireFromString("100.00")))
	assert.Equal(t, "txn-0003", txns[0].ID)
	assert.Equal(t, "txn-0001", txns[2].ID)
}

func TestStoreHistoryOrderingAndPaging(t *testing.T) {
	store := newTestStore()
	account := seedAccount(t, store, "acc-1", domain.AccountStatusActive)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		_, _, err := store.ApplyFunding(ctx, account.ID, decimal.NewFromInt(int64(i)), "deposit")
		require.NoError(t, err)
	}

	page, err := store.ListTransactionsByAccount(ctx, account.ID, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "txn-0005", page[0].ID)
	assert.Equal(t, "txn-0004", page[1].ID)

	page, err = store.ListTransactionsByAccount(ctx, account.ID, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "txn-0003", page[0].ID)
	assert.Equal(t, "txn-0002", page[1].ID)

	page, err = store.ListTransactionsByAccount(ctx, account.ID, 2, 4)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "txn-0001", page[0].ID)
}

func TestStoreFundingRejectsInactive(t *testing.T) {
	tests := []struct {
		name   string
		status domain.AccountStatus
	}{
		{name: "pending account", status: domain.AccountStatusPending},
		{name: "closed account", status: domain.AccountStatusClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore()
			account := seedAccount(t, store, "acc-1", tt.status)
			ctx := context.Background()

			_, _, err := store.ApplyFunding(ctx, account.ID, decimal.NewFromInt(10), "deposit")
			require.ErrorIs(t, err, domain.ErrAccountNotActive)

			got, err := store.GetAccountByID(ctx, account.ID)
			require.NoError(t, err)
			assert.True(t, got.Balance.IsZero(), "balance mutated on rejected funding")

			txns, err := store.ListTransactionsByAccount(ctx, account.ID, 10, 0)
			require.NoError(t, err)
			assert.Empty(t, txns, "transaction recorded on rejected funding")
		})
	}
}

func TestStoreFundingUnknownAccount(t *testing.T) {
	store := newTestStore()

	_, _, err := store.ApplyFunding(context.Background(), "missing", decimal.NewFromInt(10), "deposit")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestStoreCreateAccountConflicts(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	first := &domain.Account{
		ID:      "acc-1",
		OwnerID: "owner-1",
		Number:  "1111111111",
		Type:    domain.AccountTypeChecking,
		Status:  domain.AccountStatusActive,
	}
	require.NoError(t, store.CreateAccount(ctx, first))

	t.Run("duplicate number", func(t *testing.T) {
		dup := &domain.Account{
			ID:      "acc-2",
			OwnerID: "owner-2",
			Number:  "1111111111",
			Type:    domain.AccountTypeSavings,
			Status:  domain.AccountStatusActive,
		}
		require.ErrorIs(t, store.CreateAccount(ctx, dup), domain.ErrDuplicateAccountNumber)
	})

	t.Run("open type taken", func(t *testing.T) {
		second := &domain.Account{
			ID:      "acc-3",
			OwnerID: "owner-1",
			Number:  "2222222222",
			Type:    domain.AccountTypeChecking,
			Status:  domain.AccountStatusActive,
		}
		require.ErrorIs(t, store.CreateAccount(ctx, second), domain.ErrAccountTypeTaken)
	})

	t.Run("reopen after close", func(t *testing.T) {
		require.NoError(t, store.SetAccountStatus(ctx, first.ID, domain.AccountStatusClosed))

		second := &domain.Account{
			ID:      "acc-4",
			OwnerID: "owner-1",
			Number:  "3333333333",
			Type:    domain.AccountTypeChecking,
			Status:  domain.AccountStatusActive,
		}
		require.NoError(t, store.CreateAccount(ctx, second))
	})
}

func TestStoreUserEmailUniqueness(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	user := &domain.User{ID: "user-1", Email: "jo@example.com", Name: "Jo"}
	require.NoError(t, store.CreateUser(ctx, user))

	dup := &domain.User{ID: "user-2", Email: "jo@example.com", Name: "Jo Two"}
	require.ErrorIs(t, store.CreateUser(ctx, dup), domain.ErrEmailTaken)

	got, err := store.GetUserByEmail(ctx, "jo@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.ID)

	_, err = store.GetUserByID(ctx, "user-2")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}
