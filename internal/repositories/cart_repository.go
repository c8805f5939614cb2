package repositories

import "storefront/internal/models"

// CartRepository defines the interface for cart data access.
type CartRepository interface {
	// Add puts a product in a customer's cart; adding the same pair twice
	// is a no-op.
	Add(customerID, productID uint) error
	Remove(customerID, productID uint) error
	// ProductsFor returns the products currently in a customer's cart.
	ProductsFor(customerID uint) ([]models.Product, error)
}

// LikeRepository defines the interface for product-like data access.
type LikeRepository interface {
	// Toggle flips the like for the pair and reports whether the product
	// is liked afterwards.
	Toggle(customerID, productID uint) (bool, error)
	Count(productID uint) (int64, error)
}
