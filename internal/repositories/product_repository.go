package repositories

import "storefront/internal/models"

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	// DeleteCascade removes the product together with its reviews, likes
	// and cart entries in one transaction.
	DeleteCascade(id uint) error
}
