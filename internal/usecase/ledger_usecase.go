package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// LedgerUseCase provides ledger-wide verification operations.
type LedgerUseCase struct {
	accountRepo AccountRepository
	txnRepo     TransactionRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(accountRepo AccountRepository, txnRepo TransactionRepository) *LedgerUseCase {
	return &LedgerUseCase{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
	}
}

// ConsistencyReport compares an account's stored balance against the sum
// of its completed transactions.
type ConsistencyReport struct {
	AccountID      string
	Balance        decimal.Decimal
	TransactionSum decimal.Decimal
	Consistent     bool
}

// VerifyAccount checks the ledger-consistency invariant for one account:
// the sum of completed deposits minus completed withdrawals must equal
// the stored balance.
func (uc *LedgerUseCase) VerifyAccount(ctx context.Context, userID, accountID string) (*ConsistencyReport, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if account.OwnerID != userID {
		return nil, domain.ErrAccountNotFound
	}

	sum, err := uc.txnRepo.SumCompleted(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	return &ConsistencyReport{
		AccountID:      account.ID,
		Balance:        account.Balance,
		TransactionSum: sum,
		Consistent:     account.Balance.Equal(sum),
	}, nil
}
