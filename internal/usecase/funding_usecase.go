package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// FundingUseCase orchestrates a single deposit operation.
type FundingUseCase struct {
	accountRepo AccountRepository
	ledgerRepo  LedgerRepository
}

// NewFundingUseCase creates a new FundingUseCase.
func NewFundingUseCase(accountRepo AccountRepository, ledgerRepo LedgerRepository) *FundingUseCase {
	return &FundingUseCase{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
	}
}

// FundInput represents input for funding an account. Amount and Source
// arrive already validated at the transport boundary; the engine trusts
// that contract and does not re-validate them.
type FundInput struct {
	UserID    string
	AccountID string
	Amount    decimal.Decimal
	Source    domain.FundingSource
}

// FundResult is the outcome of a successful deposit.
type FundResult struct {
	Transaction *domain.Transaction
	Balance     decimal.Decimal
}

// Fund validates eligibility and delegates the atomic balance-mutation
// plus transaction-append to the ledger store. Every failure path leaves
// the ledger untouched.
func (uc *FundingUseCase) Fund(ctx context.Context, input FundInput) (*FundResult, error) {
	account, err := uc.accountRepo.GetByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	// Accounts owned by other users look identical to missing ones.
	if account.OwnerID != input.UserID {
		return nil, domain.ErrAccountNotFound
	}

	if !account.CanFund() {
		return nil, domain.ErrAccountNotActive
	}

	txn, balance, err := uc.ledgerRepo.ApplyFunding(ctx, account.ID, input.Amount, describeSource(input.Source))
	if err != nil {
		return nil, err
	}

	return &FundResult{
		Transaction: txn,
		Balance:     balance,
	}, nil
}

// describeSource builds the human-readable transaction description. Both
// bank and card sources settle immediately.
func describeSource(source domain.FundingSource) string {
	switch source.Type {
	case domain.FundingSourceBank:
		return fmt.Sprintf("deposit via bank account ending %s", source.Last4())
	case domain.FundingSourceCard:
		return fmt.Sprintf("deposit via card ending %s", source.Last4())
	default:
		return "deposit"
	}
}
