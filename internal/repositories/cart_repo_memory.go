package repositories

import (
	"sync"

	"lojagames/internal/models"

	"github.com/google/uuid"
)

// MemoryCartRepository is an in-memory implementation of CartRepository.
type MemoryCartRepository struct {
	items map[string][]models.CartItem // keyed by username
	mu    sync.RWMutex
}

// NewMemoryCartRepository creates a new instance of MemoryCartRepository.
func NewMemoryCartRepository() *MemoryCartRepository {
	return &MemoryCartRepository{
		items: make(map[string][]models.CartItem),
	}
}

// Create adds a new cart item.
func (r *MemoryCartRepository) Create(item *models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	r.items[item.UserName] = append(r.items[item.UserName], *item)
	return nil
}

// GetByUserName returns all cart items belonging to a user.
func (r *MemoryCartRepository) GetByUserName(userName string) ([]models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]models.CartItem, len(r.items[userName]))
	copy(items, r.items[userName])
	return items, nil
}
