package handlers

import (
	"strings"

	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	identity *services.IdentityService
	validate *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(identity *services.IdentityService) *AuthHandler {
	return &AuthHandler{
		identity: identity,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
}

// RegisterRequest is the registration form. The domain checks own all field
// validation; the handler only shuttles values through.
type RegisterRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FirstName       string `json:"fname"`
	LastName        string `json:"lname"`
	Email           string `json:"email"`
	Address         string `json:"address"`
	City            string `json:"city"`
	PostalCode      string `json:"postal_code"`
}

// HandleRegister registers a new customer account. Admin accounts are
// created through the admin-gated user routes, never here.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	res, err := h.identity.RegisterUser(services.RegisterInput{
		Username:        req.Username,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Role:            "1", // public registration always creates customers
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Address:         req.Address,
		City:            req.City,
		PostalCode:      req.PostalCode,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not register user",
			"error":   err.Error(),
		})
	}
	if !res.OK {
		status := fiber.StatusBadRequest
		if strings.Contains(res.Message, "already") {
			status = fiber.StatusConflict
		}
		return c.Status(status).JSON(fiber.Map{
			"message": res.Message,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": res.Message,
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin authenticates a user and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Username and password are required",
		})
	}

	identity, res, err := h.identity.Authenticate(req.Username, req.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Authentication failed",
			"error":   err.Error(),
		})
	}
	if !res.OK {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": res.Message,
		})
	}

	token, err := h.identity.IssueToken(identity)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not issue token",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message":    res.Message,
		"token":      token,
		"account_id": identity.AccountID,
		"role":       identity.Role,
	})
}
