package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hongminglow/bookshop-be/internal/checkout"
	"github.com/hongminglow/bookshop-be/internal/http/respond"
	"github.com/hongminglow/bookshop-be/internal/middleware"
	"github.com/hongminglow/bookshop-be/internal/models/dto"
)

const msgInvalidBook = "Invalid book data"

// SessionService is the part of checkout.Service the handler depends on.
type SessionService interface {
	CreateSession(ctx context.Context, title string, price float64) (string, error)
}

// CheckoutHandler creates payment sessions for a single book.
type CheckoutHandler struct {
	sessions SessionService
	logger   *slog.Logger
}

// NewCheckoutHandler constructs the handler.
func NewCheckoutHandler(sessions SessionService, logger *slog.Logger) *CheckoutHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckoutHandler{sessions: sessions, logger: logger}
}

// Register attaches the checkout route to the mux.
func (h *CheckoutHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/create-checkout-session", h.handleCreate)
}

func (h *CheckoutHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond.Error(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req dto.CheckoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, msgInvalidBook)
		return
	}
	if err := validate.Struct(req); err != nil {
		respond.Error(w, http.StatusBadRequest, msgInvalidBook)
		return
	}

	url, err := h.sessions.CreateSession(r.Context(), req.Title, req.Price)
	if err != nil {
		if errors.Is(err, checkout.ErrInvalidInput) {
			respond.Error(w, http.StatusBadRequest, msgInvalidBook)
			return
		}
		middleware.Logger(r.Context(), h.logger).ErrorContext(r.Context(), "checkout session failed", slog.Any("error", err))
		respond.Error(w, http.StatusInternalServerError, "failed to create checkout session")
		return
	}

	respond.JSON(w, http.StatusOK, dto.CheckoutResponse{URL: url})
}
