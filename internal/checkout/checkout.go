package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
)

// ErrInvalidInput is returned before any remote call when the title or price
// cannot be charged.
var ErrInvalidInput = errors.New("invalid book data")

// LineItem is a single priced product in a checkout session.
type LineItem struct {
	Name       string
	Currency   string
	UnitAmount int64 // smallest currency subunit
	Quantity   int64
}

// SessionRequest is everything the payment processor needs to open a session.
type SessionRequest struct {
	LineItems  []LineItem
	SuccessURL string
	CancelURL  string
}

// SessionCreator opens a hosted checkout session and returns its redirect URL.
type SessionCreator interface {
	CreateCheckoutSession(ctx context.Context, req SessionRequest) (string, error)
}

// Options configures the fixed parts of every session.
type Options struct {
	Currency   string
	SuccessURL string
	CancelURL  string
}

// Service builds checkout sessions for single books.
type Service struct {
	creator SessionCreator
	opts    Options
	logger  *slog.Logger
}

// NewService constructs a checkout service.
func NewService(creator SessionCreator, opts Options, logger *slog.Logger) *Service {
	if opts.Currency == "" {
		opts.Currency = "usd"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{creator: creator, opts: opts, logger: logger}
}

// CreateSession opens a session for one unit of title at price (in major
// currency units) and returns the processor's redirect URL.
func (s *Service) CreateSession(ctx context.Context, title string, price float64) (string, error) {
	amount, err := UnitAmount(price)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(title) == "" {
		return "", ErrInvalidInput
	}

	req := SessionRequest{
		LineItems: []LineItem{{
			Name:       title,
			Currency:   s.opts.Currency,
			UnitAmount: amount,
			Quantity:   1,
		}},
		SuccessURL: s.opts.SuccessURL,
		CancelURL:  s.opts.CancelURL,
	}
	url, err := s.creator.CreateCheckoutSession(ctx, req)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	if url == "" {
		return "", errors.New("create checkout session: processor returned no url")
	}
	s.logger.InfoContext(ctx, "checkout session created", slog.Int64("unit_amount", amount), slog.String("currency", s.opts.Currency))
	return url, nil
}

// UnitAmount converts a positive price to the smallest currency subunit,
// rounding half away from zero.
func UnitAmount(price float64) (int64, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, ErrInvalidInput
	}
	amount := math.Round(price * 100)
	if amount < 1 || amount > math.MaxInt64/2 {
		return 0, ErrInvalidInput
	}
	return int64(amount), nil
}
