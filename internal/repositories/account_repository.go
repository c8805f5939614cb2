package repositories

import "storefront/internal/models"

// AccountRepository defines the interface for account data access.
type AccountRepository interface {
	Create(account *models.Account) error
	// CreateWithCustomer inserts the account and its customer profile in a
	// single transaction so a failed profile insert never leaves an
	// orphaned account behind.
	CreateWithCustomer(account *models.Account, customer *models.Customer) error
	GetByID(id uint) (*models.Account, error)
	GetByUsername(username string) (*models.Account, error)
	GetAdmins() ([]models.Account, error)
	Update(account *models.Account) error
	// DeleteCascade removes the account and, for customers, the dependent
	// reviews, likes, cart entries and customer row, all in one transaction.
	DeleteCascade(id uint) error
	// AccountIDByUsername implements validation.AccountDirectory.
	AccountIDByUsername(username string) (uint, bool, error)
}
