package services

import (
	"errors"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/validation"
)

// CartService handles the shopping cart: bare (customer, product)
// associations with no quantity and no checkout.
type CartService struct {
	carts    repositories.CartRepository
	products repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(carts repositories.CartRepository, products repositories.ProductRepository) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
	}
}

// AddToCart puts a product in the customer's cart. Adding a product that is
// already there is a no-op success.
func (s *CartService) AddToCart(customerID, productID uint) (validation.Result, error) {
	if _, err := s.products.GetByID(productID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return validation.Fail("Product doesn't exist!"), nil
		}
		return validation.Result{}, err
	}
	if err := s.carts.Add(customerID, productID); err != nil {
		return validation.Result{}, err
	}
	return validation.OK("Product added to cart!"), nil
}

// RemoveFromCart takes a product out of the customer's cart.
func (s *CartService) RemoveFromCart(customerID, productID uint) (validation.Result, error) {
	if err := s.carts.Remove(customerID, productID); err != nil {
		return validation.Result{}, err
	}
	return validation.OK("Product removed from cart!"), nil
}

// GetCart returns the products in the customer's cart with display prices
// filled in.
func (s *CartService) GetCart(customerID uint) ([]models.Product, error) {
	products, err := s.carts.ProductsFor(customerID)
	if err != nil {
		return nil, err
	}
	for i := range products {
		products[i].NormalizePrice()
	}
	return products, nil
}
