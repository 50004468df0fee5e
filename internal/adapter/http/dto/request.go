package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

// SignupRequest represents a request to register a user.
type SignupRequest struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	Password    string `json:"password"`
	DateOfBirth string `json:"date_of_birth"` // YYYY-MM-DD
	NationalID  string `json:"national_id"`
}

// Validate checks the request fields before they reach the use case.
func (r *SignupRequest) Validate() error {
	if err := domain.ValidateEmail(r.Email); err != nil {
		return err
	}

	if err := domain.ValidatePassword(r.Password); err != nil {
		return err
	}

	dob, err := r.parseDateOfBirth()
	if err != nil {
		return err
	}

	return domain.ValidateDateOfBirth(dob)
}

// ToUseCaseInput converts to use case input. Call Validate first; the
// date has already parsed successfully by then.
func (r *SignupRequest) ToUseCaseInput() usecase.SignupInput {
	dob, _ := r.parseDateOfBirth()

	return usecase.SignupInput{
		Email:       r.Email,
		Name:        r.Name,
		Password:    r.Password,
		DateOfBirth: dob,
		NationalID:  r.NationalID,
	}
}

func (r *SignupRequest) parseDateOfBirth() (time.Time, error) {
	dob, err := time.Parse("2006-01-02", r.DateOfBirth)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: expected YYYY-MM-DD", domain.ErrInvalidDateOfBirth)
	}

	return dob, nil
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *LoginRequest) ToUseCaseInput() usecase.AuthenticateInput {
	return usecase.AuthenticateInput{
		Email:    r.Email,
		Password: r.Password,
	}
}

// OpenAccountRequest represents a request to open an account.
type OpenAccountRequest struct {
	Type string `json:"type"`
}

// Validate checks the account type.
func (r *OpenAccountRequest) Validate() error {
	return domain.ValidateAccountType(domain.AccountType(r.Type))
}

// ToUseCaseInput converts to use case input for the given owner.
func (r *OpenAccountRequest) ToUseCaseInput(ownerID string) usecase.OpenAccountInput {
	return usecase.OpenAccountInput{
		OwnerID: ownerID,
		Type:    domain.AccountType(r.Type),
	}
}

// FundingSourceRequest describes where deposited funds come from.
type FundingSourceRequest struct {
	Type              string `json:"type"`
	RoutingNumber     string `json:"routing_number,omitempty"`
	BankAccountNumber string `json:"bank_account_number,omitempty"`
	CardNumber        string `json:"card_number,omitempty"`
	CardExpiry        string `json:"card_expiry,omitempty"` // MM/YY
}

// ToDomain converts to the domain funding source.
func (r *FundingSourceRequest) ToDomain() domain.FundingSource {
	return domain.FundingSource{
		Type:              domain.FundingSourceType(r.Type),
		RoutingNumber:     r.RoutingNumber,
		BankAccountNumber: r.BankAccountNumber,
		CardNumber:        r.CardNumber,
		CardExpiry:        r.CardExpiry,
	}
}

// DepositRequest represents a request to fund an account.
type DepositRequest struct {
	Amount decimal.Decimal      `json:"amount"`
	Source FundingSourceRequest `json:"source"`
}

// Validate checks the amount and the funding source. This is the
// boundary where external payment details are verified; everything past
// it treats them as trusted.
func (r *DepositRequest) Validate() error {
	if err := domain.ValidateAmount(r.Amount); err != nil {
		return err
	}

	source := r.Source.ToDomain()

	return source.Validate()
}

// ToUseCaseInput converts to use case input for the given user and
// account.
func (r *DepositRequest) ToUseCaseInput(userID, accountID string) usecase.FundInput {
	return usecase.FundInput{
		UserID:    userID,
		AccountID: accountID,
		Amount:    r.Amount,
		Source:    r.Source.ToDomain(),
	}
}
