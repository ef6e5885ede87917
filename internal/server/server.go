package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/hongminglow/bookshop-be/internal/auth"
	"github.com/hongminglow/bookshop-be/internal/checkout"
	"github.com/hongminglow/bookshop-be/internal/config"
	"github.com/hongminglow/bookshop-be/internal/http/handlers"
	"github.com/hongminglow/bookshop-be/internal/middleware"
	"github.com/hongminglow/bookshop-be/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.UserStore, payments checkout.SessionCreator, logger *slog.Logger) *Server {
	mux := http.NewServeMux()
	health := handlers.NewHealthHandler(time.Now())
	health.Register(mux)

	tokenManager := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	authService := auth.NewService(store, auth.NewPasswordHasher(cfg.BcryptCost), tokenManager, logger)
	handlers.NewAuthHandler(authService, logger).Register(mux)

	checkoutService := checkout.NewService(payments, checkout.Options{
		Currency:   cfg.CheckoutCurrency,
		SuccessURL: cfg.CheckoutSuccessURL,
		CancelURL:  cfg.CheckoutCancelURL,
	}, logger)
	handlers.NewCheckoutHandler(checkoutService, logger).Register(mux)

	handler := middleware.Logging(logger)(middleware.CORS(cfg.CORSOrigins)(mux))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Handler exposes the fully wrapped handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.inner.Handler
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
