package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gobank/internal/adapter/http/dto"
	"github.com/iho/gobank/internal/adapter/http/middleware"
	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/infrastructure/metrics"
	"github.com/iho/gobank/internal/usecase"
)

// Registered once; promauto metrics cannot be registered twice in the
// same process.
var testMetrics = metrics.New()

type accountServiceStub struct {
	openFn func(ctx context.Context, input usecase.OpenAccountInput) (*domain.Account, error)
	getFn  func(ctx context.Context, userID, accountID string) (*domain.Account, error)
	listFn func(ctx context.Context, userID string) ([]*domain.Account, error)
}

func (s *accountServiceStub) OpenAccount(ctx context.Context, input usecase.OpenAccountInput) (*domain.Account, error) {
	return s.openFn(ctx, input)
}

func (s *accountServiceStub) GetAccount(ctx context.Context, userID, accountID string) (*domain.Account, error) {
	return s.getFn(ctx, userID, accountID)
}

func (s *accountServiceStub) ListAccounts(ctx context.Context, userID string) ([]*domain.Account, error) {
	return s.listFn(ctx, userID)
}

func authenticatedRequest(r *http.Request, userID string) *http.Request {
	user := &domain.User{ID: userID, Email: userID + "@example.com"}
	return r.WithContext(context.WithValue(r.Context(), middleware.UserContextKey, user))
}

func setChiURLParam(r *http.Request, key, value string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, &chi.Context{
		URLParams: chi.RouteParams{
			Keys:   []string{key},
			Values: []string{value},
		},
	}))
}

func TestAccountHandler_Open_Success(t *testing.T) {
	account := &domain.Account{
		ID:     "acc-1",
		Number: "1234567890",
		Type:   domain.AccountTypeChecking,
		Status: domain.AccountStatusActive,
	}

	var captured usecase.OpenAccountInput
	handler := NewAccountHandler(&accountServiceStub{
		openFn: func(ctx context.Context, input usecase.OpenAccountInput) (*domain.Account, error) {
			captured = input
			return account, nil
		},
	}, testMetrics)

	body, _ := json.Marshal(dto.OpenAccountRequest{Type: "checking"})

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	req = authenticatedRequest(req, "user-1")
	rec := httptest.NewRecorder()

	handler.Open(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.OwnerID != "user-1" || captured.Type != domain.AccountTypeChecking {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Number != "1234567890" {
		t.Fatalf("expected account number 1234567890, got %s", resp.Number)
	}
}

func TestAccountHandler_Open_InvalidType(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		openFn: func(ctx context.Context, input usecase.OpenAccountInput) (*domain.Account, error) {
			t.Fatal("OpenAccount should not be called for invalid type")
			return nil, nil
		},
	}, testMetrics)

	body, _ := json.Marshal(dto.OpenAccountRequest{Type: "money-market"})

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	req = authenticatedRequest(req, "user-1")
	rec := httptest.NewRecorder()

	handler.Open(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_Open_Unauthenticated(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{}, testMetrics)

	body, _ := json.Marshal(dto.OpenAccountRequest{Type: "checking"})

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Open(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAccountHandler_Open_TypeTaken(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		openFn: func(ctx context.Context, input usecase.OpenAccountInput) (*domain.Account, error) {
			return nil, domain.ErrAccountTypeTaken
		},
	}, testMetrics)

	body, _ := json.Marshal(dto.OpenAccountRequest{Type: "checking"})

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	req = authenticatedRequest(req, "user-1")
	rec := httptest.NewRecorder()

	handler.Open(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAccountHandler_Get_NotFound(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		getFn: func(ctx context.Context, userID, accountID string) (*domain.Account, error) {
			if userID != "user-1" || accountID != "acc-1" {
				t.Fatalf("expected user-1/acc-1, got %s/%s", userID, accountID)
			}
			return nil, domain.ErrAccountNotFound
		},
	}, testMetrics)

	req := httptest.NewRequest(http.MethodGet, "/accounts/acc-1", nil)
	req = authenticatedRequest(req, "user-1")
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAccountHandler_List(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		listFn: func(ctx context.Context, userID string) ([]*domain.Account, error) {
			if userID != "user-1" {
				t.Fatalf("expected user-1, got %s", userID)
			}
			return []*domain.Account{{ID: "acc-1"}, {ID: "acc-2"}}, nil
		},
	}, testMetrics)

	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	req = authenticatedRequest(req, "user-1")
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ListAccountsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(resp.Accounts))
	}
}
