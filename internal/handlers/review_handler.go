package handlers

import (
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ReviewHandler handles HTTP requests for product reviews.
type ReviewHandler struct {
	reviews  *services.ReviewService
	identity *services.IdentityService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviews *services.ReviewService, identity *services.IdentityService) *ReviewHandler {
	return &ReviewHandler{
		reviews:  reviews,
		identity: identity,
	}
}

// RegisterPublicRoutes registers the review reads. These must go on the
// router before any middleware-carrying group is created on it.
func (h *ReviewHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Get("/products/:id/reviews", h.HandleListReviews)
}

// RegisterCustomerRoutes registers review writes on an authenticated router.
func (h *ReviewHandler) RegisterCustomerRoutes(authed fiber.Router) {
	authed.Get("/products/:id/reviews/me", h.HandleGetOwnReview)
	authed.Post("/products/:id/reviews", h.HandleAddReview)
	authed.Delete("/products/:id/reviews", h.HandleDeleteReview)
}

// HandleListReviews returns all reviews for a product.
func (h *ReviewHandler) HandleListReviews(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid product id"})
	}

	reviews, err := h.reviews.GetReviews(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not list reviews",
			"error":   err.Error(),
		})
	}
	return c.JSON(reviews)
}

// HandleGetOwnReview returns the authenticated customer's review of a
// product, or 404 when they haven't reviewed it.
func (h *ReviewHandler) HandleGetOwnReview(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid product id"})
	}

	customer, err := currentCustomer(c, h.identity)
	if err != nil {
		if isNotFound(err) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Only customers can review products"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not resolve customer",
			"error":   err.Error(),
		})
	}

	review, err := h.reviews.GetUserReview(customer.ID, id)
	if err != nil {
		if isNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Review doesn't exist!"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not get review",
			"error":   err.Error(),
		})
	}
	return c.JSON(review)
}

// ReviewRequest is the review form. Rating arrives as text, matching the
// raw form input the domain checks expect.
type ReviewRequest struct {
	Rating  string `json:"rating"`
	Comment string `json:"comment"`
}

// HandleAddReview creates or overwrites the customer's review of a product.
func (h *ReviewHandler) HandleAddReview(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid product id"})
	}

	customer, err := currentCustomer(c, h.identity)
	if err != nil {
		if isNotFound(err) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Only customers can review products"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not resolve customer",
			"error":   err.Error(),
		})
	}

	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	res, err := h.reviews.AddReview(customer.ID, id, req.Rating, req.Comment)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not save review",
			"error":   err.Error(),
		})
	}
	if !res.OK {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": res.Message})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": res.Message})
}

// HandleDeleteReview removes the customer's review of a product.
func (h *ReviewHandler) HandleDeleteReview(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid product id"})
	}

	customer, err := currentCustomer(c, h.identity)
	if err != nil {
		if isNotFound(err) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Only customers can review products"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not resolve customer",
			"error":   err.Error(),
		})
	}

	res, err := h.reviews.DeleteReview(customer.ID, id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete review",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": res.Message})
}
