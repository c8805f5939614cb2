package repositories

import (
	"fmt"
	"sync"

	"storefront/internal/models"
)

type reviewKey struct {
	customerID uint
	productID  uint
}

// MockReviewRepository is an in-memory implementation of ReviewRepository.
type MockReviewRepository struct {
	reviews map[reviewKey]models.Review
	mu      sync.RWMutex
}

// NewMockReviewRepository creates a new instance of MockReviewRepository.
func NewMockReviewRepository() *MockReviewRepository {
	return &MockReviewRepository{
		reviews: make(map[reviewKey]models.Review),
	}
}

// GetByProduct returns all reviews for a product.
func (r *MockReviewRepository) GetByProduct(productID uint) ([]models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var reviews []models.Review
	for key, review := range r.reviews {
		if key.productID == productID {
			reviews = append(reviews, review)
		}
	}
	return reviews, nil
}

// GetByCustomerAndProduct returns the review for the pair.
func (r *MockReviewRepository) GetByCustomerAndProduct(customerID, productID uint) (*models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	review, ok := r.reviews[reviewKey{customerID, productID}]
	if !ok {
		return nil, fmt.Errorf("review by customer %d on product %d: %w", customerID, productID, ErrNotFound)
	}
	return &review, nil
}

// Upsert inserts or overwrites the review for the pair.
func (r *MockReviewRepository) Upsert(review *models.Review) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := reviewKey{review.CustomerID, review.ProductID}
	_, updated := r.reviews[key]
	r.reviews[key] = *review
	return updated, nil
}

// Delete removes the review for the pair, succeeding even when none exists.
func (r *MockReviewRepository) Delete(customerID, productID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.reviews, reviewKey{customerID, productID})
	return nil
}

// AverageRating computes the mean rating for a product.
func (r *MockReviewRepository) AverageRating(productID uint) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sum, count float64
	for key, review := range r.reviews {
		if key.productID == productID {
			sum += float64(review.Rating)
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return sum / count, nil
}
