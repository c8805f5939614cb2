package repositories

import (
	"errors"
	"fmt"

	"storefront/internal/models"

	"gorm.io/gorm"
)

// GORMAccountRepository is a GORM implementation of AccountRepository.
type GORMAccountRepository struct {
	db *gorm.DB
}

// NewGORMAccountRepository creates a new instance of GORMAccountRepository.
func NewGORMAccountRepository(db *gorm.DB) *GORMAccountRepository {
	return &GORMAccountRepository{
		db: db,
	}
}

// Create inserts a new account.
func (r *GORMAccountRepository) Create(account *models.Account) error {
	if err := r.db.Create(account).Error; err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// CreateWithCustomer inserts the account and its customer profile atomically.
func (r *GORMAccountRepository) CreateWithCustomer(account *models.Account, customer *models.Customer) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			return err
		}
		customer.AccountID = account.ID
		return tx.Omit("Account").Create(customer).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create account with customer: %w", err)
	}
	return nil
}

// GetByID retrieves an account by its id.
func (r *GORMAccountRepository) GetByID(id uint) (*models.Account, error) {
	var account models.Account
	if err := r.db.First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("account %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get account %d: %w", id, err)
	}
	return &account, nil
}

// GetByUsername retrieves an account by its username.
func (r *GORMAccountRepository) GetByUsername(username string) (*models.Account, error) {
	var account models.Account
	if err := r.db.First(&account, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("account %q: %w", username, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get account %q: %w", username, err)
	}
	return &account, nil
}

// GetAdmins retrieves all admin accounts.
func (r *GORMAccountRepository) GetAdmins() ([]models.Account, error) {
	var admins []models.Account
	if err := r.db.Where("role = ?", models.RoleAdmin).Find(&admins).Error; err != nil {
		return nil, fmt.Errorf("failed to get admin accounts: %w", err)
	}
	return admins, nil
}

// Update saves all account columns.
func (r *GORMAccountRepository) Update(account *models.Account) error {
	res := r.db.Save(account)
	if res.Error != nil {
		return fmt.Errorf("failed to update account %d: %w", account.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("account %d: %w", account.ID, ErrNotFound)
	}
	return nil
}

// DeleteCascade removes the account and everything hanging off it. The
// dependent rows go first so foreign keys are never violated mid-way.
func (r *GORMAccountRepository) DeleteCascade(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var account models.Account
		if err := tx.First(&account, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("account %d: %w", id, ErrNotFound)
			}
			return err
		}

		if account.Role == models.RoleCustomer {
			var customer models.Customer
			err := tx.First(&customer, "account_id = ?", id).Error
			switch {
			case err == nil:
				if err := tx.Delete(&models.Review{}, "customer_id = ?", customer.ID).Error; err != nil {
					return err
				}
				if err := tx.Delete(&models.Like{}, "customer_id = ?", customer.ID).Error; err != nil {
					return err
				}
				if err := tx.Delete(&models.CartItem{}, "customer_id = ?", customer.ID).Error; err != nil {
					return err
				}
				if err := tx.Delete(&models.Customer{}, "id = ?", customer.ID).Error; err != nil {
					return err
				}
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}
		}

		return tx.Delete(&models.Account{}, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete account %d: %w", id, err)
	}
	return nil
}

// AccountIDByUsername reports which account, if any, owns a username.
func (r *GORMAccountRepository) AccountIDByUsername(username string) (uint, bool, error) {
	var account models.Account
	err := r.db.Select("id").First(&account, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to look up username %q: %w", username, err)
	}
	return account.ID, true, nil
}
