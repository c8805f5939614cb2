package repositories

import (
	"fmt"

	"storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// Add puts a product in the customer's cart, ignoring duplicates.
func (r *GORMCartRepository) Add(customerID, productID uint) error {
	item := models.CartItem{CustomerID: customerID, ProductID: productID}
	err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&item).Error
	if err != nil {
		return fmt.Errorf("failed to add product %d to cart of customer %d: %w", productID, customerID, err)
	}
	return nil
}

// Remove takes a product out of the customer's cart.
func (r *GORMCartRepository) Remove(customerID, productID uint) error {
	err := r.db.Delete(&models.CartItem{}, "customer_id = ? AND product_id = ?", customerID, productID).Error
	if err != nil {
		return fmt.Errorf("failed to remove product %d from cart of customer %d: %w", productID, customerID, err)
	}
	return nil
}

// ProductsFor returns the products in the customer's cart.
func (r *GORMCartRepository) ProductsFor(customerID uint) ([]models.Product, error) {
	var products []models.Product
	err := r.db.
		Joins("INNER JOIN carts ON carts.product_id = products.id").
		Where("carts.customer_id = ?", customerID).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get cart of customer %d: %w", customerID, err)
	}
	return products, nil
}

// GORMLikeRepository is a GORM implementation of LikeRepository.
type GORMLikeRepository struct {
	db *gorm.DB
}

// NewGORMLikeRepository creates a new instance of GORMLikeRepository.
func NewGORMLikeRepository(db *gorm.DB) *GORMLikeRepository {
	return &GORMLikeRepository{
		db: db,
	}
}

// Toggle flips the like for the pair inside a transaction.
func (r *GORMLikeRepository) Toggle(customerID, productID uint) (bool, error) {
	var liked bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Like{}, "customer_id = ? AND product_id = ?", customerID, productID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			liked = true
			return tx.Create(&models.Like{CustomerID: customerID, ProductID: productID}).Error
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to toggle like of customer %d on product %d: %w", customerID, productID, err)
	}
	return liked, nil
}

// Count returns how many customers like a product.
func (r *GORMLikeRepository) Count(productID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("product_id = ?", productID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count likes for product %d: %w", productID, err)
	}
	return count, nil
}
