package repositories

import (
	"errors"
	"fmt"

	"storefront/internal/models"

	"gorm.io/gorm"
)

// GORMCustomerRepository is a GORM implementation of CustomerRepository.
type GORMCustomerRepository struct {
	db *gorm.DB
}

// NewGORMCustomerRepository creates a new instance of GORMCustomerRepository.
func NewGORMCustomerRepository(db *gorm.DB) *GORMCustomerRepository {
	return &GORMCustomerRepository{
		db: db,
	}
}

// GetByAccountID retrieves the customer profile attached to an account.
func (r *GORMCustomerRepository) GetByAccountID(accountID uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, "account_id = ?", accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("customer for account %d: %w", accountID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get customer for account %d: %w", accountID, err)
	}
	return &customer, nil
}

// GetByID retrieves a customer by its own id.
func (r *GORMCustomerRepository) GetByID(id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("customer %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get customer %d: %w", id, err)
	}
	return &customer, nil
}

// GetAllWithAccounts retrieves every customer with the owning account loaded.
func (r *GORMCustomerRepository) GetAllWithAccounts() ([]models.Customer, error) {
	var customers []models.Customer
	if err := r.db.Preload("Account").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to get customers: %w", err)
	}
	return customers, nil
}

// Update saves all customer columns.
func (r *GORMCustomerRepository) Update(customer *models.Customer) error {
	res := r.db.Omit("Account").Save(customer)
	if res.Error != nil {
		return fmt.Errorf("failed to update customer %d: %w", customer.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("customer %d: %w", customer.ID, ErrNotFound)
	}
	return nil
}

// AccountIDByEmail reports which account, if any, registered an email.
func (r *GORMCustomerRepository) AccountIDByEmail(email string) (uint, bool, error) {
	var customer models.Customer
	err := r.db.Select("account_id").First(&customer, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to look up email %q: %w", email, err)
	}
	return customer.AccountID, true, nil
}
