package storage

import (
	"context"
	"errors"

	"github.com/hongminglow/bookshop-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// ErrStoreRead indicates the backing store exists but could not be read.
var ErrStoreRead = errors.New("read user store")

// ErrStoreWrite indicates the backing store could not be persisted.
var ErrStoreWrite = errors.New("write user store")

// UserStore captures persistence operations needed by the auth service.
//
// CreateUser must check for an existing email and insert in one atomic step.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
}
