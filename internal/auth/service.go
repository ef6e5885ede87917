package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/hongminglow/bookshop-be/internal/models"
	"github.com/hongminglow/bookshop-be/internal/models/dto"
	"github.com/hongminglow/bookshop-be/internal/storage"
)

var (
	// ErrValidation marks a request with missing or unusable fields.
	ErrValidation = errors.New("email and password required")

	// ErrConflict marks a registration for an email that is already stored.
	ErrConflict = errors.New("user already exists")

	// ErrInvalidCredentials is returned for an unknown email and for a wrong
	// password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrPasswordTooLong is a validation error for passwords bcrypt cannot hash.
	ErrPasswordTooLong = fmt.Errorf("%w: password exceeds 72 bytes", ErrValidation)
)

// Service runs the register and login flows.
type Service struct {
	store  storage.UserStore
	hasher *PasswordHasher
	tokens *TokenManager
	ids    *idSource
	logger *slog.Logger
}

// NewService constructs the auth service.
func NewService(store storage.UserStore, hasher *PasswordHasher, tokens *TokenManager, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  store,
		hasher: hasher,
		tokens: tokens,
		ids:    newIDSource(time.Now),
		logger: logger,
	}
}

// Register stores a new user and returns a token for it. Nothing is persisted
// when any step before the write fails, and no token is issued when the write
// itself fails.
func (s *Service) Register(ctx context.Context, email, password string) (dto.AuthResponse, error) {
	if email == "" || password == "" {
		return dto.AuthResponse{}, ErrValidation
	}

	if _, err := s.store.FindByEmail(ctx, email); err == nil {
		return dto.AuthResponse{}, ErrConflict
	} else if !errors.Is(err, storage.ErrNotFound) {
		return dto.AuthResponse{}, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return dto.AuthResponse{}, ErrPasswordTooLong
		}
		return dto.AuthResponse{}, err
	}

	user, err := s.store.CreateUser(ctx, models.User{
		ID:           s.ids.Next(),
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return dto.AuthResponse{}, ErrConflict
		}
		return dto.AuthResponse{}, fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("generate token: %w", err)
	}
	s.logger.InfoContext(ctx, "user registered", slog.Int64("user_id", user.ID))
	return dto.AuthResponse{Token: token, Email: user.Email}, nil
}

// Login checks the credentials and returns a fresh token.
func (s *Service) Login(ctx context.Context, email, password string) (dto.AuthResponse, error) {
	if email == "" || password == "" {
		return dto.AuthResponse{}, ErrValidation
	}

	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return dto.AuthResponse{}, ErrInvalidCredentials
		}
		return dto.AuthResponse{}, fmt.Errorf("lookup user: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("user %d: %w", user.ID, err)
	}
	if !ok {
		return dto.AuthResponse{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("generate token: %w", err)
	}
	return dto.AuthResponse{Token: token, Email: user.Email}, nil
}

// idSource hands out millisecond timestamps, never repeating or going
// backwards within a process.
type idSource struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func newIDSource(now func() time.Time) *idSource {
	return &idSource{now: now}
}

func (g *idSource) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
