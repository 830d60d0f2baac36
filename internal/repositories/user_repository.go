package repositories

import (
	"errors"

	"lojagames/internal/models"
)

// ErrDuplicateUser is returned when an insert violates the username or
// email unique index.
var ErrDuplicateUser = errors.New("username or email already registered")

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByUserName(userName string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
}
