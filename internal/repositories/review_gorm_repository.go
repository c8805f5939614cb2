package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"storefront/internal/models"

	"gorm.io/gorm"
)

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

// NewGORMReviewRepository creates a new instance of GORMReviewRepository.
func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{
		db: db,
	}
}

// GetByProduct retrieves all reviews for a product.
func (r *GORMReviewRepository) GetByProduct(productID uint) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.Where("product_id = ?", productID).Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to get reviews for product %d: %w", productID, err)
	}
	return reviews, nil
}

// GetByCustomerAndProduct retrieves the review a customer left on a product.
func (r *GORMReviewRepository) GetByCustomerAndProduct(customerID, productID uint) (*models.Review, error) {
	var review models.Review
	err := r.db.First(&review, "customer_id = ? AND product_id = ?", customerID, productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("review by customer %d on product %d: %w", customerID, productID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get review by customer %d on product %d: %w", customerID, productID, err)
	}
	return &review, nil
}

// Upsert inserts or overwrites the review for the (customer, product) pair.
func (r *GORMReviewRepository) Upsert(review *models.Review) (bool, error) {
	var updated bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Review
		err := tx.First(&existing, "customer_id = ? AND product_id = ?", review.CustomerID, review.ProductID).Error
		switch {
		case err == nil:
			updated = true
			return tx.Model(&models.Review{}).
				Where("customer_id = ? AND product_id = ?", review.CustomerID, review.ProductID).
				Updates(map[string]interface{}{
					"date":    review.Date,
					"rating":  review.Rating,
					"comment": review.Comment,
				}).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(review).Error
		default:
			return err
		}
	})
	if err != nil {
		return false, fmt.Errorf("failed to upsert review: %w", err)
	}
	return updated, nil
}

// Delete removes the review for the pair, succeeding even when none exists.
func (r *GORMReviewRepository) Delete(customerID, productID uint) error {
	err := r.db.Delete(&models.Review{}, "customer_id = ? AND product_id = ?", customerID, productID).Error
	if err != nil {
		return fmt.Errorf("failed to delete review by customer %d on product %d: %w", customerID, productID, err)
	}
	return nil
}

// AverageRating computes the mean rating for a product.
func (r *GORMReviewRepository) AverageRating(productID uint) (float64, error) {
	var avg sql.NullFloat64
	err := r.db.Model(&models.Review{}).
		Where("product_id = ?", productID).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil {
		return 0, fmt.Errorf("failed to average ratings for product %d: %w", productID, err)
	}
	if !avg.Valid {
		return 0, nil
	}
	return avg.Float64, nil
}
