package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/adapter/http/dto"
	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

type fundingServiceStub struct {
	fundFn func(ctx context.Context, input usecase.FundInput) (*usecase.FundResult, error)
}

func (s *fundingServiceStub) Fund(ctx context.Context, input usecase.FundInput) (*usecase.FundResult, error) {
	return s.fundFn(ctx, input)
}

func validCardDeposit(amount string) dto.DepositRequest {
	return dto.DepositRequest{
		Amount: decimal.RequireFromString(amount),
		Source: dto.FundingSourceRequest{
			Type:       "card",
			CardNumber: "4242424242424242",
			CardExpiry: "12/30",
		},
	}
}

func TestFundingHandler_Deposit_Success(t *testing.T) {
	var captured usecase.FundInput
	handler := NewFundingHandler(&fundingServiceStub{
		fundFn: func(ctx context.Context, input usecase.FundInput) (*usecase.FundResult, error) {
			captured = input
			return &usecase.FundResult{
				Transaction: &domain.Transaction{
					ID:        "txn-1",
					AccountID: input.AccountID,
					Kind:      domain.TransactionKindDeposit,
					Amount:    input.Amount,
					Status:    domain.TransactionStatusCompleted,
				},
				Balance: decimal.RequireFromString("150.00"),
			}, nil
		},
	}, testMetrics)

	body, _ := json.Marshal(validCardDeposit("50.00"))

	req := httptest.NewRequest(http.MethodPost, "/accounts/acc-1/deposits", bytes.NewReader(body))
	req = authenticatedRequest(req, "user-1")
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Deposit(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.UserID != "user-1" || captured.AccountID != "acc-1" {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.DepositResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Balance.Equal(decimal.RequireFromString("150.00")) {
		t.Fatalf("expected balance 150.00, got %s", resp.Balance)
	}
}

func TestFundingHandler_Deposit_InvalidCard(t *testing.T) {
	handler := NewFundingHandler(&fundingServiceStub{
		fundFn: func(ctx context.Context, input usecase.FundInput) (*usecase.FundResult, error) {
			t.Fatal("Fund should not be called for an invalid card")
			return nil, nil
		},
	}, testMetrics)

	deposit := validCardDeposit("50.00")
	deposit.Source.CardNumber = "4242424242424241" // fails Luhn
	body, _ := json.Marshal(deposit)

	req := httptest.NewRequest(http.MethodPost, "/accounts/acc-1/deposits", bytes.NewReader(body))
	req = authenticatedRequest(req, "user-1")
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Deposit(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestFundingHandler_Deposit_InvalidAmount(t *testing.T) {
	handler := NewFundingHandler(&fundingServiceStub{
		fundFn: func(ctx context.Context, input usecase.FundInput) (*usecase.FundResult, error) {
			t.Fatal("Fund should not be called for an invalid amount")
			return nil, nil
		},
	}, testMetrics)

	body, _ := json.Marshal(validCardDeposit("-5.00"))

	req := httptest.NewRequest(http.MethodPost, "/accounts/acc-1/deposits", bytes.NewReader(body))
	req = authenticatedRequest(req, "user-1")
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Deposit(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestFundingHandler_Deposit_AccountNotActive(t *testing.T) {
	handler := NewFundingHandler(&fundingServiceStub{
		fundFn: func(ctx context.Context, input usecase.FundInput) (*usecase.FundResult, error) {
			return nil, domain.ErrAccountNotActive
		},
	}, testMetrics)

	body, _ := json.Marshal(validCardDeposit("50.00"))

	req := httptest.NewRequest(http.MethodPost, "/accounts/acc-1/deposits", bytes.NewReader(body))
	req = authenticatedRequest(req, "user-1")
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Deposit(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestFundingHandler_Deposit_AccountNotFound(t *testing.T) {
	handler := NewFundingHandler(&fundingServiceStub{
		fundFn: func(ctx context.Context, input usecase.FundInput) (*usecase.FundResult, error) {
			return nil, domain.ErrAccountNotFound
		},
	}, testMetrics)

	body, _ := json.Marshal(validCardDeposit("50.00"))

	req := httptest.NewRequest(http.MethodPost, "/accounts/acc-1/deposits", bytes.NewReader(body))
	req = authenticatedRequest(req, "user-1")
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Deposit(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
