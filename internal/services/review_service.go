package services

import (
	"strconv"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/validation"
)

// ReviewService handles the review lifecycle.
type ReviewService struct {
	reviews repositories.ReviewRepository
	engine  *validation.Engine
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviews repositories.ReviewRepository, engine *validation.Engine) *ReviewService {
	return &ReviewService{
		reviews: reviews,
		engine:  engine,
	}
}

// AddReview validates the review and upserts it on the (customer, product)
// pair: a second submission overwrites the first instead of producing a
// duplicate. The success message tells the two cases apart.
func (s *ReviewService) AddReview(customerID, productID uint, rating, comment string) (validation.Result, error) {
	if res := s.engine.CheckReviewCredentials(validation.ReviewCredentials{
		Rating:  rating,
		Comment: comment,
	}); !res.OK {
		return res, nil
	}

	review := &models.Review{
		CustomerID: customerID,
		ProductID:  productID,
		Date:       time.Now().Format(models.ReviewDateLayout),
		Rating:     parseRating(rating),
		Comment:    comment,
	}

	updated, err := s.reviews.Upsert(review)
	if err != nil {
		return validation.Result{}, err
	}
	if updated {
		return validation.OK("Review successfully updated!"), nil
	}
	return validation.OK("Review successfully added!"), nil
}

// DeleteReview removes the review for the pair. Deleting a review that does
// not exist still reports success.
func (s *ReviewService) DeleteReview(customerID, productID uint) (validation.Result, error) {
	if err := s.reviews.Delete(customerID, productID); err != nil {
		return validation.Result{}, err
	}
	return validation.OK("Review successfully deleted!"), nil
}

// GetReviews retrieves all reviews for a product.
func (s *ReviewService) GetReviews(productID uint) ([]models.Review, error) {
	return s.reviews.GetByProduct(productID)
}

// GetUserReview retrieves the review a customer left on a product.
func (s *ReviewService) GetUserReview(customerID, productID uint) (*models.Review, error) {
	return s.reviews.GetByCustomerAndProduct(customerID, productID)
}

// parseRating converts a validated numeric rating string, truncating any
// fractional part the way the numeric gate allows it.
func parseRating(s string) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	f, _ := strconv.ParseFloat(s, 64)
	return int(f)
}
