package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/hongminglow/bookshop-be/internal/models"
	"github.com/hongminglow/bookshop-be/internal/storage"
)

// Ensure Store satisfies the storage.UserStore interface at compile time.
var _ storage.UserStore = (*Store)(nil)

// Store keeps every user in a single JSON array on disk. Each mutation
// rewrites the whole file.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewUserStore opens the store at path, creating an empty one when the file
// does not exist yet. An existing file that cannot be read or decoded is an error.
func NewUserStore(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("users file path is empty")
	}
	s := &Store{path: path}
	if _, err := s.ReadAll(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the location of the backing file.
func (s *Store) Path() string {
	return s.path
}

// ReadAll returns all stored users in file order.
func (s *Store) ReadAll(ctx context.Context) ([]models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := s.WriteAll(ctx, []models.User{}); err != nil {
			return nil, err
		}
		return []models.User{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrStoreRead, err)
	}

	users := []models.User{}
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", storage.ErrStoreRead, s.path, err)
	}
	return users, nil
}

// WriteAll replaces the store contents with users.
func (s *Store) WriteAll(ctx context.Context, users []models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if users == nil {
		users = []models.User{}
	}

	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %v", storage.ErrStoreWrite, err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", storage.ErrStoreWrite, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", storage.ErrStoreWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrStoreWrite, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrStoreWrite, err)
	}
	return nil
}

// FindByEmail fetches a user by exact email match.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.User, error) {
	users, err := s.ReadAll(ctx)
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

// CreateUser appends user unless its email is already taken. The id is raised
// above the current maximum when it would not be unique.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.ReadAll(ctx)
	if err != nil {
		return models.User{}, err
	}

	var maxID int64
	for _, u := range users {
		if u.Email == user.Email {
			return models.User{}, storage.ErrAlreadyExists
		}
		if u.ID > maxID {
			maxID = u.ID
		}
	}
	if user.ID <= maxID {
		user.ID = maxID + 1
	}

	if err := s.WriteAll(ctx, append(users, user)); err != nil {
		return models.User{}, err
	}
	return user, nil
}
