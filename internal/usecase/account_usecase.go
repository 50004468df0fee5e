package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// maxNumberAttempts bounds the generate-and-check loop so systemic
// exhaustion of the number space fails instead of looping forever.
const maxNumberAttempts = 5

// AccountUseCase handles account business logic.
type AccountUseCase struct {
	accountRepo AccountRepository
	idGen       IDGenerator
	numberGen   AccountNumberGenerator
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, idGen IDGenerator, numberGen AccountNumberGenerator) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		idGen:       idGen,
		numberGen:   numberGen,
	}
}

// OpenAccountInput represents input for opening an account.
type OpenAccountInput struct {
	OwnerID string
	Type    domain.AccountType
}

// OpenAccount creates an account with a freshly generated account number.
//
// Number generation is inherently racy across concurrent callers: the
// NumberExists pre-check only filters known collisions, and the store's
// uniqueness constraint at insert time is authoritative. Losing the race
// costs one retry.
func (uc *AccountUseCase) OpenAccount(ctx context.Context, input OpenAccountInput) (*domain.Account, error) {
	now := time.Now().UTC()

	for range maxNumberAttempts {
		number, err := uc.numberGen.Generate()
		if err != nil {
			return nil, err
		}

		exists, err := uc.accountRepo.NumberExists(ctx, number)
		if err != nil {
			return nil, err
		}

		if exists {
			continue
		}

		account := &domain.Account{
			ID:        uc.idGen.Generate(),
			OwnerID:   input.OwnerID,
			Number:    number,
			Type:      input.Type,
			Status:    domain.AccountStatusActive,
			Balance:   decimal.Zero,
			CreatedAt: now,
			UpdatedAt: now,
		}

		err = uc.accountRepo.Create(ctx, account)
		if errors.Is(err, domain.ErrDuplicateAccountNumber) {
			// A concurrent creator won the race for this number.
			continue
		}

		if err != nil {
			return nil, err
		}

		return account, nil
	}

	return nil, domain.ErrNumberSpaceExhausted
}

// GetAccount retrieves an account owned by userID. Accounts owned by other
// users are reported as not found.
func (uc *AccountUseCase) GetAccount(ctx context.Context, userID, accountID string) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if account.OwnerID != userID {
		return nil, domain.ErrAccountNotFound
	}

	return account, nil
}

// ListAccounts lists the accounts owned by userID.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, userID string) ([]*domain.Account, error) {
	return uc.accountRepo.ListByOwner(ctx, userID)
}
