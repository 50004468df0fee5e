package domain

import (
	"errors"
	"fmt"
)

// FundingSourceType identifies where deposited cash comes from.
type FundingSourceType string

const (
	FundingSourceBank FundingSourceType = "bank"
	FundingSourceCard FundingSourceType = "card"
)

var (
	ErrInvalidFundingSource = errors.New("invalid funding source")
)

// FundingSource describes an external source of funds. It is validated at
// the transport boundary; the funding engine treats it as an opaque,
// pre-validated structure and settles both kinds immediately.
type FundingSource struct {
	Type FundingSourceType

	// Bank fields
	RoutingNumber     string
	BankAccountNumber string

	// Card fields
	CardNumber string
	CardExpiry string // MM/YY
}

// Validate checks the fields required for the source type.
func (s *FundingSource) Validate() error {
	switch s.Type {
	case FundingSourceBank:
		if err := ValidateRoutingNumber(s.RoutingNumber); err != nil {
			return err
		}
		if s.BankAccountNumber == "" {
			return fmt.Errorf("%w: bank account number is required", ErrInvalidFundingSource)
		}
		return nil
	case FundingSourceCard:
		if err := ValidateCardNumber(s.CardNumber); err != nil {
			return err
		}
		if err := ValidateCardExpiry(s.CardExpiry); err != nil {
			return err
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidFundingSource, s.Type)
	}
}

// Last4 returns the trailing digits of the source's external number,
// safe to embed in transaction descriptions.
func (s *FundingSource) Last4() string {
	var n string
	switch s.Type {
	case FundingSourceBank:
		n = s.BankAccountNumber
	case FundingSourceCard:
		n = s.CardNumber
	}
	if len(n) < 4 {
		return n
	}
	return n[len(n)-4:]
}
