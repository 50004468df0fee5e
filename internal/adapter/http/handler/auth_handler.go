package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/iho/gobank/internal/adapter/http/dto"
	"github.com/iho/gobank/internal/adapter/http/middleware"
	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/infrastructure/auth"
	"github.com/iho/gobank/internal/infrastructure/metrics"
	"github.com/iho/gobank/internal/usecase"
)

// UserService defines the behavior needed by AuthHandler.
type UserService interface {
	Signup(ctx context.Context, input usecase.SignupInput) (*domain.User, error)
	Authenticate(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
}

// AuthHandler handles signup and login.
type AuthHandler struct {
	userUC     UserService
	jwtManager *auth.JWTManager
	limiter    usecase.LoginLimiter
	metrics    *metrics.Metrics
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userUC UserService, jwtManager *auth.JWTManager, limiter usecase.LoginLimiter, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{
		userUC:     userUC,
		jwtManager: jwtManager,
		limiter:    limiter,
		metrics:    m,
	}
}

// Signup registers a new user.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid signup request", err.Error())
		return
	}

	user, err := h.userUC.Signup(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to sign up", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.UserFromDomain(user))
}

// Login authenticates a user and returns a JWT token. Attempts are
// counted per email, so lockout follows the targeted account rather
// than the caller's network location.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	allowed, err := h.limiter.Allow(r.Context(), req.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to check rate limit", err.Error())
		return
	}
	if !allowed {
		h.metrics.AuthAttempts.WithLabelValues("throttled").Inc()
		writeError(w, http.StatusTooManyRequests, "too many login attempts", "try again later")

		return
	}

	user, err := h.userUC.Authenticate(r.Context(), req.ToUseCaseInput())
	if err != nil {
		h.metrics.AuthAttempts.WithLabelValues("failure").Inc()
		status := mapDomainError(err)
		writeError(w, status, "invalid credentials", "")

		return
	}

	token, err := h.jwtManager.Generate(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token", err.Error())
		return
	}

	// Best effort; a leftover counter expires with its window anyway.
	_ = h.limiter.Reset(r.Context(), req.Email)

	h.metrics.AuthAttempts.WithLabelValues("success").Inc()
	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Token: token,
		User:  dto.UserFromDomain(user),
	})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	full, err := h.userUC.GetUser(r.Context(), user.ID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get user", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.UserFromDomain(full))
}
