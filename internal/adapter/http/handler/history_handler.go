package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gobank/internal/adapter/http/dto"
	"github.com/iho/gobank/internal/adapter/http/middleware"
	"github.com/iho/gobank/internal/usecase"
)

// HistoryService defines the behavior needed by HistoryHandler.
type HistoryService interface {
	GetHistory(ctx context.Context, input usecase.GetHistoryInput) (*usecase.History, error)
}

// LedgerService defines the verification behavior needed by
// HistoryHandler.
type LedgerService interface {
	VerifyAccount(ctx context.Context, userID, accountID string) (*usecase.ConsistencyReport, error)
}

// HistoryHandler serves transaction history and consistency checks.
type HistoryHandler struct {
	historyUC HistoryService
	ledgerUC  LedgerService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(historyUC HistoryService, ledgerUC LedgerService) *HistoryHandler {
	return &HistoryHandler{
		historyUC: historyUC,
		ledgerUC:  ledgerUC,
	}
}

// List returns an account's transactions, newest first.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
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

	history, err := h.historyUC.GetHistory(r.Context(), usecase.GetHistoryInput{
		UserID:    user.ID,
		AccountID: accountID,
		Limit:     parseIntQuery(r, "limit", 0),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get history", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.HistoryFromUseCase(history))
}

// Verify reports whether an account's balance matches the sum of its
// completed transactions.
func (h *HistoryHandler) Verify(w http.ResponseWriter, r *http.Request) {
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

	report, err := h.ledgerUC.VerifyAccount(r.Context(), user.ID, accountID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to verify account", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ConsistencyFromUseCase(report))
}
