package handlers

import (
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the shopping cart.
type CartHandler struct {
	carts    *services.CartService
	identity *services.IdentityService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(carts *services.CartService, identity *services.IdentityService) *CartHandler {
	return &CartHandler{
		carts:    carts,
		identity: identity,
	}
}

// RegisterRoutes registers cart routes on an authenticated router.
func (h *CartHandler) RegisterRoutes(authed fiber.Router) {
	authed.Get("/cart", h.HandleGetCart)
	authed.Post("/cart/:productId", h.HandleAddToCart)
	authed.Delete("/cart/:productId", h.HandleRemoveFromCart)
}

// HandleGetCart returns the products in the customer's cart.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	customer, err := currentCustomer(c, h.identity)
	if err != nil {
		return h.customerError(c, err)
	}

	products, err := h.carts.GetCart(customer.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not get cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(products)
}

// HandleAddToCart puts a product in the customer's cart.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	customer, err := currentCustomer(c, h.identity)
	if err != nil {
		return h.customerError(c, err)
	}
	productID, err := paramID(c, "productId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid product id"})
	}

	res, err := h.carts.AddToCart(customer.ID, productID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add to cart",
			"error":   err.Error(),
		})
	}
	if !res.OK {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": res.Message})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": res.Message})
}

// HandleRemoveFromCart takes a product out of the customer's cart.
func (h *CartHandler) HandleRemoveFromCart(c *fiber.Ctx) error {
	customer, err := currentCustomer(c, h.identity)
	if err != nil {
		return h.customerError(c, err)
	}
	productID, err := paramID(c, "productId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid product id"})
	}

	res, err := h.carts.RemoveFromCart(customer.ID, productID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not remove from cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": res.Message})
}

// customerError maps a failed customer lookup to the right response: admins
// and stale tokens get 403, everything else is a store fault.
func (h *CartHandler) customerError(c *fiber.Ctx, err error) error {
	if isNotFound(err) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Only customers have a cart"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Could not resolve customer",
		"error":   err.Error(),
	})
}
