package handlers

import (
	"strings"

	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for account and profile management.
type UserHandler struct {
	identity *services.IdentityService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(identity *services.IdentityService) *UserHandler {
	return &UserHandler{
		identity: identity,
	}
}

// RegisterRoutes registers the per-account routes on an authenticated
// router; access control beyond the token is mayAccess's job.
func (h *UserHandler) RegisterRoutes(authed fiber.Router) {
	authed.Get("/users/:id", h.HandleGetUser)
	authed.Put("/users/:id", h.HandleUpdateUser)
	authed.Delete("/users/:id", h.HandleDeleteUser)
}

// RegisterAdminRoutes registers the user directory and admin-side account
// creation on an admin-gated router.
func (h *UserHandler) RegisterAdminRoutes(admin fiber.Router) {
	admin.Get("/users", h.HandleListUsers)
	admin.Post("/users", h.HandleCreateUser)
}

// HandleListUsers returns all users partitioned into admins and customers.
func (h *UserHandler) HandleListUsers(c *fiber.Ctx) error {
	directory, err := h.identity.GetUsers()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not list users",
			"error":   err.Error(),
		})
	}
	return c.JSON(directory)
}

// AdminRegisterRequest extends the registration form with a role, so admins
// can create both admin and customer accounts.
type AdminRegisterRequest struct {
	RegisterRequest
	Role string `json:"role"`
}

// HandleCreateUser creates an account with an arbitrary role (admin only).
func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	var req AdminRegisterRequest
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
		Role:            req.Role,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Address:         req.Address,
		City:            req.City,
		PostalCode:      req.PostalCode,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create user",
			"error":   err.Error(),
		})
	}
	if !res.OK {
		status := fiber.StatusBadRequest
		if strings.Contains(res.Message, "already") {
			status = fiber.StatusConflict
		}
		return c.Status(status).JSON(fiber.Map{"message": res.Message})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": res.Message})
}

// HandleGetUser returns an account and, for customers, the attached profile.
// Accounts can only be read by their owner or an admin.
func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid user id"})
	}
	if !h.mayAccess(c, id) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access denied"})
	}

	account, err := h.identity.GetAccount(id)
	if err != nil {
		if isNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User doesn't exist!"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not get user",
			"error":   err.Error(),
		})
	}

	response := fiber.Map{"account": account}
	if account.Role == models.RoleCustomer {
		customer, err := h.identity.GetCustomer(id)
		if err != nil && !isNotFound(err) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not get customer profile",
				"error":   err.Error(),
			})
		}
		if customer != nil {
			customer.Account = models.Account{}
			response["customer"] = customer
		}
	}
	return c.JSON(response)
}

// HandleUpdateUser updates an account and its profile. Owners keep their
// role; only the admin-created accounts carry a different one.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid user id"})
	}
	if !h.mayAccess(c, id) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access denied"})
	}

	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	role, err := h.identity.GetUserRole(id)
	if err != nil {
		if isNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User doesn't exist!"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update user",
			"error":   err.Error(),
		})
	}

	res, err := h.identity.UpdateUser(id, services.RegisterInput{
		Username:        req.Username,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Role:            roleString(role),
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Address:         req.Address,
		City:            req.City,
		PostalCode:      req.PostalCode,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update user",
			"error":   err.Error(),
		})
	}
	if !res.OK {
		status := fiber.StatusBadRequest
		if strings.Contains(res.Message, "already") {
			status = fiber.StatusConflict
		}
		return c.Status(status).JSON(fiber.Map{"message": res.Message})
	}
	return c.JSON(fiber.Map{"message": res.Message})
}

// HandleDeleteUser deletes an account and everything hanging off it.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid user id"})
	}
	if !h.mayAccess(c, id) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access denied"})
	}

	res, err := h.identity.DeleteUser(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete user",
			"error":   err.Error(),
		})
	}
	if !res.OK {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": res.Message})
	}
	return c.JSON(fiber.Map{"message": res.Message})
}

// mayAccess allows owners and admins through.
func (h *UserHandler) mayAccess(c *fiber.Ctx, id uint) bool {
	accountID, ok := currentAccountID(c)
	if !ok {
		return false
	}
	role, ok := currentRole(c)
	if !ok {
		return false
	}
	return role == models.RoleAdmin || accountID == id
}

func roleString(role models.Role) string {
	if role == models.RoleAdmin {
		return "0"
	}
	return "1"
}
