package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gobank/internal/adapter/http/dto"
	"github.com/iho/gobank/internal/adapter/http/middleware"
	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/infrastructure/metrics"
	"github.com/iho/gobank/internal/usecase"
)

// FundingService defines the behavior needed by FundingHandler.
type FundingService interface {
	Fund(ctx context.Context, input usecase.FundInput) (*usecase.FundResult, error)
}

// FundingHandler handles deposit requests.
type FundingHandler struct {
	fundingUC FundingService
	metrics   *metrics.Metrics
}

// NewFundingHandler creates a new FundingHandler.
func NewFundingHandler(fundingUC FundingService, m *metrics.Metrics) *FundingHandler {
	return &FundingHandler{fundingUC: fundingUC, metrics: m}
}

// Deposit funds one of the authenticated user's accounts.
func (h *FundingHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	var req dto.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid deposit request", err.Error())
		return
	}

	result, err := h.fundingUC.Fund(r.Context(), req.ToUseCaseInput(user.ID, accountID))
	if err != nil {
		h.metrics.DepositErrors.WithLabelValues(depositErrorType(err)).Inc()
		status := mapDomainError(err)
		writeError(w, status, "failed to deposit", err.Error())

		return
	}

	h.metrics.DepositsCompleted.Inc()
	h.metrics.DepositAmount.Observe(result.Transaction.Amount.InexactFloat64())

	writeJSON(w, http.StatusCreated, dto.DepositResponse{
		Transaction: dto.TransactionFromDomain(result.Transaction),
		Balance:     result.Balance,
	})
}

func depositErrorType(err error) string {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, domain.ErrAccountNotActive):
		return "account_not_active"
	default:
		return "internal"
	}
}
