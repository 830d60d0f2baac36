package services_test

import (
	"fmt"
	"testing"

	"lojagames/internal/models"
	"lojagames/internal/repositories"
	"lojagames/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCartRepository is a mock implementation of repositories.CartRepository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) Create(item *models.CartItem) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockCartRepository) GetByUserName(userName string) ([]models.CartItem, error) {
	args := m.Called(userName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CartItem), args.Error(1)
}

// MockCartPublisher is a mock implementation of services.CartEventPublisher
type MockCartPublisher struct {
	mock.Mock
}

func (m *MockCartPublisher) PublishCartItemAdded(event map[string]interface{}) error {
	args := m.Called(event)
	return args.Error(0)
}

func TestCartService_AddItem(t *testing.T) {
	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	mockPublisher := new(MockCartPublisher)
	service := services.NewCartService(mockCartRepo, mockProductRepo, mockPublisher)

	product := &models.Product{ID: "prod-1", Name: "Eco da Fronteira", Price: 199.90, Platform: "PC"}

	// Successful addition captures the current unit price and publishes an event.
	mockProductRepo.On("GetByID", "prod-1").Return(product, nil).Once()
	mockCartRepo.On("Create", mock.AnythingOfType("*models.CartItem")).Return(nil).Once()
	mockPublisher.On("PublishCartItemAdded", mock.AnythingOfType("map[string]interface {}")).Return(nil).Once()

	item, err := service.AddItem("testuser", "prod-1", 2)
	assert.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "testuser", item.UserName)
	assert.Equal(t, "prod-1", item.ProductID)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, 199.90, item.Price)
	mockCartRepo.AssertExpectations(t)
	mockProductRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestCartService_AddItemInvalidQuantity(t *testing.T) {
	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	service := services.NewCartService(mockCartRepo, mockProductRepo, nil)

	item, err := service.AddItem("testuser", "prod-1", 0)
	assert.ErrorIs(t, err, services.ErrInvalidQuantity)
	assert.Nil(t, item)

	item, err = service.AddItem("testuser", "prod-1", -3)
	assert.ErrorIs(t, err, services.ErrInvalidQuantity)
	assert.Nil(t, item)
	// The store is never touched on a bad quantity.
	mockProductRepo.AssertNotCalled(t, "GetByID", mock.Anything)
	mockCartRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCartService_AddItemProductNotFound(t *testing.T) {
	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	service := services.NewCartService(mockCartRepo, mockProductRepo, nil)

	mockProductRepo.On("GetByID", "ghost").Return(nil, repositories.ErrProductNotFound).Once()

	item, err := service.AddItem("testuser", "ghost", 1)
	assert.ErrorIs(t, err, services.ErrProductNotFound)
	assert.Nil(t, item)
	mockCartRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockProductRepo.AssertExpectations(t)
}

func TestCartService_AddItemPublishFailureIsNotFatal(t *testing.T) {
	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	mockPublisher := new(MockCartPublisher)
	service := services.NewCartService(mockCartRepo, mockProductRepo, mockPublisher)

	product := &models.Product{ID: "prod-1", Name: "Eco da Fronteira", Price: 199.90, Platform: "PC"}
	mockProductRepo.On("GetByID", "prod-1").Return(product, nil).Once()
	mockCartRepo.On("Create", mock.AnythingOfType("*models.CartItem")).Return(nil).Once()
	mockPublisher.On("PublishCartItemAdded", mock.AnythingOfType("map[string]interface {}")).
		Return(fmt.Errorf("broker unavailable")).Once()

	// The item stays in the cart even when the broker is down.
	item, err := service.AddItem("testuser", "prod-1", 1)
	assert.NoError(t, err)
	assert.NotNil(t, item)
	mockPublisher.AssertExpectations(t)
}

func TestCartService_GetItems(t *testing.T) {
	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	service := services.NewCartService(mockCartRepo, mockProductRepo, nil)

	expected := []models.CartItem{
		{ID: "item-1", UserName: "testuser", ProductID: "prod-1", Quantity: 1, Price: 199.90},
	}
	mockCartRepo.On("GetByUserName", "testuser").Return(expected, nil).Once()

	items, err := service.GetItems("testuser")
	assert.NoError(t, err)
	assert.Equal(t, expected, items)
	mockCartRepo.AssertExpectations(t)
}
