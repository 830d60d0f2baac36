package services

import (
	"lojagames/internal/models"
	"lojagames/internal/repositories"
)

// ProductService handles business logic related to the game catalog.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct creates a new product. Only catalog seeding calls this;
// there is no admin HTTP surface for it.
func (s *ProductService) CreateProduct(product *models.Product) error {
	return s.repo.Create(product)
}
