package handlers

import (
	"errors"
	"strconv"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// currentAccountID reads the authenticated account id set by the JWT
// middleware.
func currentAccountID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals("account_id").(uint)
	return id, ok
}

// currentRole reads the authenticated role set by the JWT middleware.
func currentRole(c *fiber.Ctx) (models.Role, bool) {
	role, ok := c.Locals("role").(models.Role)
	return role, ok
}

// currentCustomer resolves the customer profile of the authenticated
// account. Admin accounts have no profile and get a nil customer.
func currentCustomer(c *fiber.Ctx, identity *services.IdentityService) (*models.Customer, error) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return nil, repositories.ErrNotFound
	}
	role, ok := currentRole(c)
	if !ok || role != models.RoleCustomer {
		return nil, repositories.ErrNotFound
	}
	return identity.GetCustomer(accountID)
}

// paramID parses a numeric path parameter.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// isNotFound reports whether err signals a missing row rather than a
// persistence fault.
func isNotFound(err error) bool {
	return errors.Is(err, repositories.ErrNotFound)
}
