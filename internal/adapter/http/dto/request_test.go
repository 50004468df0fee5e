package dto

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

func TestSignupRequestValidate(t *testing.T) {
	valid := SignupRequest{
		Email:       "jo@example.com",
		Name:        "Jo Smith",
		Password:    "Sup3rSecret",
		DateOfBirth: "1990-06-15",
		NationalID:  "123-45-6789",
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	input := valid.ToUseCaseInput()
	if input.DateOfBirth.Year() != 1990 {
		t.Fatalf("expected parsed date of birth, got %v", input.DateOfBirth)
	}

	badDate := valid
	badDate.DateOfBirth = "15/06/1990"
	if err := badDate.Validate(); !errors.Is(err, domain.ErrInvalidDateOfBirth) {
		t.Fatalf("expected ErrInvalidDateOfBirth, got %v", err)
	}

	badEmail := valid
	badEmail.Email = "not-an-email"
	if err := badEmail.Validate(); !errors.Is(err, domain.ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestDepositRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     DepositRequest
		wantErr error
	}{
		{
			name: "valid card deposit",
			req: DepositRequest{
				Amount: decimal.RequireFromString("25.00"),
				Source: FundingSourceRequest{
					Type:       "card",
					CardNumber: "4242424242424242",
					CardExpiry: "12/30",
				},
			},
		},
		{
			name: "valid bank deposit",
			req: DepositRequest{
				Amount: decimal.RequireFromString("25.00"),
				Source: FundingSourceRequest{
					Type:              "bank",
					RoutingNumber:     "011000015",
					BankAccountNumber: "000123456789",
				},
			},
		},
		{
			name: "zero amount",
			req: DepositRequest{
				Amount: decimal.Zero,
				Source: FundingSourceRequest{Type: "card", CardNumber: "4242424242424242", CardExpiry: "12/30"},
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name: "bad routing number checksum",
			req: DepositRequest{
				Amount: decimal.RequireFromString("25.00"),
				Source: FundingSourceRequest{
					Type:              "bank",
					RoutingNumber:     "011000016",
					BankAccountNumber: "000123456789",
				},
			},
			wantErr: domain.ErrInvalidRoutingNumber,
		},
		{
			name: "unknown source type",
			req: DepositRequest{
				Amount: decimal.RequireFromString("25.00"),
				Source: FundingSourceRequest{Type: "crypto"},
			},
			wantErr: domain.ErrInvalidFundingSource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected valid request, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
