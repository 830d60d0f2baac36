package repositories

import (
	"lojagames/internal/models"
)

// CartRepository defines the interface for cart item data access.
type CartRepository interface {
	Create(item *models.CartItem) error
	GetByUserName(userName string) ([]models.CartItem, error)
}
