package repositories

import (
	"errors"

	"lojagames/internal/models"
)

// ErrProductNotFound is returned when no product matches the lookup key.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
}
