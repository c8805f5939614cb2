package repositories

import "storefront/internal/models"

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	GetByProduct(productID uint) ([]models.Review, error)
	GetByCustomerAndProduct(customerID, productID uint) (*models.Review, error)
	// Upsert inserts the review or, when one already exists for the
	// (customer, product) pair, overwrites its date, rating and comment.
	// It reports whether an existing review was updated.
	Upsert(review *models.Review) (bool, error)
	// Delete removes the review for the pair; deleting a review that does
	// not exist is not an error.
	Delete(customerID, productID uint) error
	// AverageRating returns the mean rating for a product, 0 with no reviews.
	AverageRating(productID uint) (float64, error)
}
