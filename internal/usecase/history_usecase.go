package usecase

import (
	"context"

	"github.com/iho/gobank/internal/domain"
)

// HistoryUseCase serves an account's transaction log.
type HistoryUseCase struct {
	accountRepo AccountRepository
	txnRepo     TransactionRepository
}

// NewHistoryUseCase creates a new HistoryUseCase.
func NewHistoryUseCase(accountRepo AccountRepository, txnRepo TransactionRepository) *HistoryUseCase {
	return &HistoryUseCase{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
	}
}

// GetHistoryInput represents input for reading transaction history.
type GetHistoryInput struct {
	UserID    string
	AccountID string
	Limit     int
	Offset    int
}

// History is the transaction log together with the account it belongs to.
// The account is the one resolved during the ownership check; callers use
// it for metadata enrichment without a second store lookup.
type History struct {
	Account      *domain.Account
	Transactions []*domain.Transaction
}

// GetHistory verifies ownership the same way funding does, then returns
// the store's ordering unmodified (created_at descending, later insertion
// first on ties).
func (uc *HistoryUseCase) GetHistory(ctx context.Context, input GetHistoryInput) (*History, error) {
	account, err := uc.accountRepo.GetByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	if account.OwnerID != input.UserID {
		return nil, domain.ErrAccountNotFound
	}

	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	txns, err := uc.txnRepo.ListByAccount(ctx, account.ID, limit, offset)
	if err != nil {
		return nil, err
	}

	return &History{
		Account:      account,
		Transactions: txns,
	}, nil
}
