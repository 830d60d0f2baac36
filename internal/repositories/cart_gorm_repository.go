package repositories

import (
	"fmt"

	"lojagames/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// Create inserts a new cart item.
func (r *GORMCartRepository) Create(item *models.CartItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create cart item: %w", err)
	}
	return nil
}

// GetByUserName retrieves all cart items belonging to a user.
func (r *GORMCartRepository) GetByUserName(userName string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Find(&items, "user_name = ?", userName).Error; err != nil {
		return nil, fmt.Errorf("failed to get cart items for user %s: %w", userName, err)
	}
	return items, nil
}
