package handlers

import (
	"errors"

	"lojagames/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// CartHandler handles HTTP requests for the shopping cart.
type CartHandler struct {
	service *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service: service,
	}
}

// RegisterRoutes registers the cart routes. Both live under /auth alongside
// the rest of the API and require a valid token.
func (h *CartHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/adicionar-ao-carrinho", requireAuth, h.HandleAddToCart)
	authRoutes.Get("/carrinho", requireAuth, h.HandleGetCart)
}

// AddToCartRequest is the JSON body posted by the product page.
type AddToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	UserName  string `json:"userName"`
}

// HandleAddToCart adds a product to the authenticated user's cart.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	var req AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		logrus.WithError(err).Debug("failed to parse add-to-cart body")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Corpo da requisição inválido",
		})
	}

	if req.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Produto é obrigatório",
		})
	}

	// The page echoes the username from session storage; the token decides.
	caller, _ := c.Locals("userName").(string)
	if req.UserName != "" && req.UserName != caller {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Usuário não corresponde à sessão",
		})
	}

	item, err := h.service.AddItem(caller, req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidQuantity):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Quantidade inválida",
			})
		case errors.Is(err, services.ErrProductNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Produto não encontrado",
			})
		default:
			logrus.WithError(err).WithField("productID", req.ProductID).Error("failed to add cart item")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Erro ao adicionar produto ao carrinho",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Produto adicionado ao carrinho com sucesso",
		"item":    item,
	})
}

// HandleGetCart lists the authenticated user's cart items.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	caller, _ := c.Locals("userName").(string)

	items, err := h.service.GetItems(caller)
	if err != nil {
		logrus.WithError(err).WithField("userName", caller).Error("failed to fetch cart")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Erro ao buscar carrinho",
		})
	}
	return c.JSON(items)
}
