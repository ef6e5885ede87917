package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hongminglow/bookshop-be/internal/auth"
	"github.com/hongminglow/bookshop-be/internal/http/respond"
	"github.com/hongminglow/bookshop-be/internal/middleware"
	"github.com/hongminglow/bookshop-be/internal/models/dto"
)

const (
	msgCredentialsRequired = "Email and password required"
	msgUserExists          = "User already exists"
	msgInvalidCredentials  = "Invalid credentials"
	msgPasswordTooLong     = "Password must be at most 72 bytes"
	msgInvalidJSON         = "invalid JSON payload"
)

// Authenticator is the part of auth.Service the handlers depend on.
type Authenticator interface {
	Register(ctx context.Context, email, password string) (dto.AuthResponse, error)
	Login(ctx context.Context, email, password string) (dto.AuthResponse, error)
}

// AuthHandler owns register/login endpoints.
type AuthHandler struct {
	auth   Authenticator
	logger *slog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(auth Authenticator, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{auth: auth, logger: logger}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/register", h.handleRegister)
	mux.HandleFunc("/login", h.handleLogin)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond.Error(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req dto.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}
	if err := validate.Struct(req); err != nil {
		respond.Error(w, http.StatusBadRequest, msgCredentialsRequired)
		return
	}

	resp, err := h.auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrPasswordTooLong):
			respond.Error(w, http.StatusBadRequest, msgPasswordTooLong)
		case errors.Is(err, auth.ErrValidation):
			respond.Error(w, http.StatusBadRequest, msgCredentialsRequired)
		case errors.Is(err, auth.ErrConflict):
			respond.Error(w, http.StatusBadRequest, msgUserExists)
		default:
			middleware.Logger(r.Context(), h.logger).ErrorContext(r.Context(), "register failed", slog.Any("error", err))
			respond.Error(w, http.StatusInternalServerError, "failed to register user")
		}
		return
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond.Error(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req dto.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}
	if err := validate.Struct(req); err != nil {
		respond.Error(w, http.StatusBadRequest, msgCredentialsRequired)
		return
	}

	resp, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrValidation):
			respond.Error(w, http.StatusBadRequest, msgCredentialsRequired)
		case errors.Is(err, auth.ErrInvalidCredentials):
			respond.Error(w, http.StatusBadRequest, msgInvalidCredentials)
		default:
			middleware.Logger(r.Context(), h.logger).ErrorContext(r.Context(), "login failed", slog.Any("error", err))
			respond.Error(w, http.StatusInternalServerError, "failed to log in")
		}
		return
	}

	respond.JSON(w, http.StatusOK, resp)
}
