package repositories

import "storefront/internal/models"

// CustomerRepository defines the interface for customer-profile data access.
type CustomerRepository interface {
	GetByAccountID(accountID uint) (*models.Customer, error)
	GetByID(id uint) (*models.Customer, error)
	// GetAllWithAccounts returns every customer with its account loaded.
	GetAllWithAccounts() ([]models.Customer, error)
	Update(customer *models.Customer) error
	// AccountIDByEmail implements validation.CustomerDirectory.
	AccountIDByEmail(email string) (uint, bool, error)
}
