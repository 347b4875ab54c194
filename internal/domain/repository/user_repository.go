package repository

import (
	"errors"

	"github.com/oksasatya/educonnect-api/internal/domain/entity"
)

// ErrDuplicateEmail is returned by Create when the store-level unique
// index on email rejects the insert. Email uniqueness lives in the
// database, not in a check-then-insert in the application layer.
var ErrDuplicateEmail = errors.New("email already exists")

// ErrNotFound is shared by all repositories for missing rows.
var ErrNotFound = errors.New("not found")

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	UpdateProfile(u *entity.User) error
}
