package services

import (
	"errors"
	"fmt"

	"lojagames/internal/models"
	"lojagames/internal/repositories"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrInvalidQuantity is returned when a cart addition requests less than one unit.
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// ErrProductNotFound re-exported for handlers.
var ErrProductNotFound = repositories.ErrProductNotFound

// CartEventPublisher publishes cart events to the message broker.
// Implemented by rabbitmq.Client; nil disables publishing.
type CartEventPublisher interface {
	PublishCartItemAdded(event map[string]interface{}) error
}

// CartService handles business logic for the shopping cart.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
	publisher   CartEventPublisher
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository, publisher CartEventPublisher) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		publisher:   publisher,
	}
}

// AddItem adds a product to a user's cart, capturing the unit price at the
// time of addition, and publishes a cart.item_added event. Publishing is
// best-effort: a broker failure is logged and the item stays in the cart.
func (s *CartService) AddItem(userName, productID string, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to look up product %s: %w", productID, err)
	}

	item := &models.CartItem{
		ID:        uuid.New().String(),
		UserName:  userName,
		ProductID: product.ID,
		Quantity:  quantity,
		Price:     product.Price,
	}
	if err := s.cartRepo.Create(item); err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	if s.publisher != nil {
		event := map[string]interface{}{
			"itemID":    item.ID,
			"userName":  item.UserName,
			"productID": item.ProductID,
			"quantity":  item.Quantity,
			"price":     item.Price,
		}
		if err := s.publisher.PublishCartItemAdded(event); err != nil {
			logrus.WithError(err).WithField("item_id", item.ID).
				Warn("failed to publish cart.item_added event")
		}
	}

	return item, nil
}

// GetItems returns all cart items belonging to a user.
func (s *CartService) GetItems(userName string) ([]models.CartItem, error) {
	return s.cartRepo.GetByUserName(userName)
}
