package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

// UserResponse represents a user in API responses. Credential material
// and the encrypted national ID are never part of it.
type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	DateOfBirth string    `json:"date_of_birth"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		DateOfBirth: u.DateOfBirth.Format("2006-01-02"),
		CreatedAt:   u.CreatedAt,
	}
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID        string          `json:"id"`
	Number    string          `json:"number"`
	Type      string          `json:"type"`
	Status    string          `json:"status"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Number:    a.Number,
		Type:      string(a.Type),
		Status:    string(a.Status),
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps an account listing.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"account_id"`
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:          t.ID,
		AccountID:   t.AccountID,
		Kind:        string(t.Kind),
		Amount:      t.Amount,
		Status:      string(t.Status),
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txns []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txns))
	for i, t := range txns {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// DepositResponse is the outcome of a successful deposit.
type DepositResponse struct {
	Transaction *TransactionResponse `json:"transaction"`
	Balance     decimal.Decimal      `json:"balance"`
}

// HistoryResponse wraps an account's transaction log with account
// metadata.
type HistoryResponse struct {
	AccountID     string                 `json:"account_id"`
	AccountNumber string                 `json:"account_number"`
	Balance       decimal.Decimal        `json:"balance"`
	Transactions  []*TransactionResponse `json:"transactions"`
}

// HistoryFromUseCase converts a use case history result to a response.
func HistoryFromUseCase(h *usecase.History) *HistoryResponse {
	return &HistoryResponse{
		AccountID:     h.Account.ID,
		AccountNumber: h.Account.Number,
		Balance:       h.Account.Balance,
		Transactions:  TransactionsFromDomain(h.Transactions),
	}
}

// ConsistencyResponse reports a ledger consistency check.
type ConsistencyResponse struct {
	AccountID      string          `json:"account_id"`
	Balance        decimal.Decimal `json:"balance"`
	TransactionSum decimal.Decimal `json:"transaction_sum"`
	Consistent     bool            `json:"consistent"`
}

// ConsistencyFromUseCase converts a use case consistency report.
func ConsistencyFromUseCase(r *usecase.ConsistencyReport) *ConsistencyResponse {
	return &ConsistencyResponse{
		AccountID:      r.AccountID,
		Balance:        r.Balance,
		TransactionSum: r.TransactionSum,
		Consistent:     r.Consistent,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
