package services

import (
	"errors"
	"io"
	"strconv"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/validation"

	"storefront/pkg/imagestore"
	"storefront/pkg/rabbitmq"
)

// CatalogService handles the product lifecycle: validation, image storage,
// persistence and catalog event publishing.
type CatalogService struct {
	products repositories.ProductRepository
	likes    repositories.LikeRepository
	reviews  repositories.ReviewRepository
	engine   *validation.Engine
	images   *imagestore.Store
	mqClient *rabbitmq.Client
}

// NewCatalogService creates a new CatalogService. mqClient may be nil when
// no broker is configured; events are then skipped.
func NewCatalogService(products repositories.ProductRepository, reviews repositories.ReviewRepository, likes repositories.LikeRepository, engine *validation.Engine, images *imagestore.Store, mqClient *rabbitmq.Client) *CatalogService {
	return &CatalogService{
		products: products,
		reviews:  reviews,
		likes:    likes,
		engine:   engine,
		images:   images,
		mqClient: mqClient,
	}
}

// ImageUpload couples the upload's metadata with its content stream.
type ImageUpload struct {
	Meta    validation.ImageMeta
	Content io.Reader
}

// ProductInput carries the raw product form. Price arrives as text and is
// validated before conversion. Image is nil when no file was uploaded.
type ProductInput struct {
	Name          string
	Brand         string
	Description   string
	Specification string
	Price         string
	Image         *ImageUpload
}

func (in ProductInput) credentials() validation.ProductCredentials {
	creds := validation.ProductCredentials{
		Name:          in.Name,
		Brand:         in.Brand,
		Description:   in.Description,
		Specification: in.Specification,
		Price:         in.Price,
	}
	if in.Image != nil {
		meta := in.Image.Meta
		creds.Image = &meta
	}
	return creds
}

// CreateProduct validates the input, stores the image and inserts the
// product row. The image is written first; if the insert fails the stored
// file is removed again so neither side leaks an orphan.
func (s *CatalogService) CreateProduct(input ProductInput) (validation.Result, error) {
	if res := s.engine.CheckProductCredentials(input.credentials(), false); !res.OK {
		return res, nil
	}

	path, err := s.images.Save(input.Image.Meta.Filename, input.Image.Content)
	if err != nil {
		return validation.Result{}, err
	}

	product := &models.Product{
		ImageURL:      path,
		Name:          input.Name,
		Brand:         input.Brand,
		Description:   input.Description,
		Specification: input.Specification,
		Price:         parsePrice(input.Price),
	}
	if err := s.products.Create(product); err != nil {
		if removeErr := s.images.Remove(path); removeErr != nil {
			logger.Warn().Err(removeErr).Str("path", path).Msg("failed to roll back stored image")
		}
		return validation.Result{}, err
	}

	s.publishEvent("product.created", product)
	return validation.OK("Product successfully created!"), nil
}

// UpdateProduct validates with the image optional, replaces the stored file
// in place when a new one was uploaded, and saves the remaining columns.
func (s *CatalogService) UpdateProduct(id uint, input ProductInput) (validation.Result, error) {
	if res := s.engine.CheckProductCredentials(input.credentials(), true); !res.OK {
		return res, nil
	}

	product, err := s.products.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return validation.Fail("Product doesn't exist!"), nil
		}
		return validation.Result{}, err
	}

	if input.Image != nil {
		if err := s.images.Replace(product.ImageURL, input.Image.Content); err != nil {
			return validation.Result{}, err
		}
	}

	product.Name = input.Name
	product.Brand = input.Brand
	product.Description = input.Description
	product.Specification = input.Specification
	product.Price = parsePrice(input.Price)
	if err := s.products.Update(product); err != nil {
		return validation.Result{}, err
	}

	s.publishEvent("product.updated", product)
	return validation.OK("Product successfully updated!"), nil
}

// DeleteProduct cascades over the product's reviews, likes and cart entries,
// then removes the stored image. A failed file removal is logged, not fatal;
// the rows are already gone.
func (s *CatalogService) DeleteProduct(id uint) (validation.Result, error) {
	product, err := s.products.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return validation.Fail("Product doesn't exist!"), nil
		}
		return validation.Result{}, err
	}

	if err := s.products.DeleteCascade(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return validation.Fail("Product doesn't exist!"), nil
		}
		return validation.Result{}, err
	}

	if err := s.images.Remove(product.ImageURL); err != nil {
		logger.Warn().Err(err).Str("path", product.ImageURL).Msg("failed to remove product image")
	}

	s.publishEvent("product.deleted", product)
	return validation.OK("Product successfully deleted!"), nil
}

// GetProducts retrieves all products with display prices filled in.
func (s *CatalogService) GetProducts() ([]models.Product, error) {
	products, err := s.products.GetAll()
	if err != nil {
		return nil, err
	}
	for i := range products {
		products[i].NormalizePrice()
	}
	return products, nil
}

// GetProduct retrieves a single product with its display price filled in.
func (s *CatalogService) GetProduct(id uint) (*models.Product, error) {
	product, err := s.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	product.NormalizePrice()
	return product, nil
}

// ProductRating returns the arithmetic mean of all review ratings for the
// product, and 0 when it has no reviews.
func (s *CatalogService) ProductRating(id uint) (float64, error) {
	return s.reviews.AverageRating(id)
}

// ToggleLike flips a customer's like on a product and reports whether the
// product is liked afterwards.
func (s *CatalogService) ToggleLike(customerID, productID uint) (bool, error) {
	return s.likes.Toggle(customerID, productID)
}

// LikeCount returns how many customers like a product.
func (s *CatalogService) LikeCount(productID uint) (int64, error) {
	return s.likes.Count(productID)
}

func (s *CatalogService) publishEvent(event string, product *models.Product) {
	if s.mqClient == nil {
		return
	}
	err := s.mqClient.PublishCatalogEvent(event, map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
		"brand":      product.Brand,
	})
	if err != nil {
		logger.Warn().Err(err).Str("event", event).Uint("product_id", product.ID).Msg("failed to publish catalog event")
	}
}

// parsePrice converts a validated numeric price string.
func parsePrice(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
