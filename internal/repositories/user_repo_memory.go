package repositories

import (
	"sync"

	"lojagames/internal/models"

	"github.com/google/uuid"
)

// MemoryUserRepository is an in-memory implementation of UserRepository.
// Uniqueness of username and email is enforced under a single lock, matching
// the conflict semantics of the GORM implementation's unique indexes.
type MemoryUserRepository struct {
	byUserName map[string]models.User
	byEmail    map[string]string // email -> username
	mu         sync.RWMutex
}

// NewMemoryUserRepository creates a new instance of MemoryUserRepository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byUserName: make(map[string]models.User),
		byEmail:    make(map[string]string),
	}
}

// Create adds a new user, failing with ErrDuplicateUser if the username or
// email is already registered.
func (r *MemoryUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUserName[user.UserName]; ok {
		return ErrDuplicateUser
	}
	if _, ok := r.byEmail[user.Email]; ok {
		return ErrDuplicateUser
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	r.byUserName[user.UserName] = *user
	r.byEmail[user.Email] = user.UserName
	return nil
}

// GetByUserName returns a user by their username.
func (r *MemoryUserRepository) GetByUserName(userName string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byUserName[userName]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// GetByEmail returns a user by their email.
func (r *MemoryUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userName, ok := r.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	user := r.byUserName[userName]
	return &user, nil
}

// GetByID returns a user by their ID.
func (r *MemoryUserRepository) GetByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.byUserName {
		if user.ID == id {
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}
