package handlers

import (
	"math"
	"mime/multipart"
	"sort"
	"strings"

	"storefront/internal/services"
	"storefront/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	catalog  *services.CatalogService
	identity *services.IdentityService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(catalog *services.CatalogService, identity *services.IdentityService) *ProductHandler {
	return &ProductHandler{
		catalog:  catalog,
		identity: identity,
	}
}

// RegisterPublicRoutes registers the catalog reads. These must go on the
// router before any middleware-carrying group is created on it.
func (h *ProductHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Get("/products", h.HandleListProducts)
	router.Get("/products/:id", h.HandleGetProduct)
}

// RegisterCustomerRoutes registers liking on an authenticated router.
func (h *ProductHandler) RegisterCustomerRoutes(authed fiber.Router) {
	authed.Post("/products/:id/like", h.HandleToggleLike)
}

// RegisterAdminRoutes registers the catalog writes on an admin-gated router.
func (h *ProductHandler) RegisterAdminRoutes(admin fiber.Router) {
	admin.Post("/products", h.HandleCreateProduct)
	admin.Put("/products/:id", h.HandleUpdateProduct)
	admin.Delete("/products/:id", h.HandleDeleteProduct)
}

// HandleListProducts returns all products with their ratings rounded to the
// nearest half, plus the distinct brand list for filtering.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.catalog.GetProducts()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not list products",
			"error":   err.Error(),
		})
	}

	brandSet := make(map[string]struct{})
	list := make([]fiber.Map, 0, len(products))
	for i := range products {
		rating, err := h.catalog.ProductRating(products[i].ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not compute product rating",
				"error":   err.Error(),
			})
		}
		brandSet[products[i].Brand] = struct{}{}
		list = append(list, fiber.Map{
			"product": products[i],
			"rating":  roundToNearestHalf(rating),
		})
	}

	brands := make([]string, 0, len(brandSet))
	for brand := range brandSet {
		brands = append(brands, brand)
	}
	sort.Strings(brands)

	return c.JSON(fiber.Map{
		"products": list,
		"brands":   brands,
	})
}

// HandleGetProduct returns one product with its rating and like count.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid product id"})
	}

	product, err := h.catalog.GetProduct(id)
	if err != nil {
		if isNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product doesn't exist!"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not get product",
			"error":   err.Error(),
		})
	}

	rating, err := h.catalog.ProductRating(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not compute product rating",
			"error":   err.Error(),
		})
	}
	likes, err := h.catalog.LikeCount(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not count likes",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"product": product,
		"rating":  roundToNearestHalf(rating),
		"likes":   likes,
	})
}

// HandleCreateProduct creates a product from a multipart form with an image.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	input, cleanup, err := productInputFromForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid multipart form",
			"error":   err.Error(),
		})
	}
	defer cleanup()

	res, err := h.catalog.CreateProduct(input)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create product",
			"error":   err.Error(),
		})
	}
	if !res.OK {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": res.Message})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": res.Message})
}

// HandleUpdateProduct updates a product; the image is optional.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid product id"})
	}

	input, cleanup, err := productInputFromForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid multipart form",
			"error":   err.Error(),
		})
	}
	defer cleanup()

	res, err := h.catalog.UpdateProduct(id, input)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update product",
			"error":   err.Error(),
		})
	}
	if !res.OK {
		if res.Message == "Product doesn't exist!" {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": res.Message})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": res.Message})
	}
	return c.JSON(fiber.Map{"message": res.Message})
}

// HandleDeleteProduct deletes a product and its dependent rows.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid product id"})
	}

	res, err := h.catalog.DeleteProduct(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete product",
			"error":   err.Error(),
		})
	}
	if !res.OK {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": res.Message})
	}
	return c.JSON(fiber.Map{"message": res.Message})
}

// HandleToggleLike flips the authenticated customer's like on a product.
func (h *ProductHandler) HandleToggleLike(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid product id"})
	}

	customer, err := currentCustomer(c, h.identity)
	if err != nil {
		if isNotFound(err) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Only customers can like products"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not resolve customer",
			"error":   err.Error(),
		})
	}

	liked, err := h.catalog.ToggleLike(customer.ID, id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not toggle like",
			"error":   err.Error(),
		})
	}
	likes, err := h.catalog.LikeCount(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not count likes",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"liked": liked,
		"likes": likes,
	})
}

// productInputFromForm reads the multipart product form. The returned
// cleanup closes the upload stream and is safe to call either way.
func productInputFromForm(c *fiber.Ctx) (services.ProductInput, func(), error) {
	input := services.ProductInput{
		Name:          c.FormValue("name"),
		Brand:         c.FormValue("brand"),
		Description:   c.FormValue("description"),
		Specification: c.FormValue("specification"),
		Price:         c.FormValue("price"),
	}
	cleanup := func() {}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		// No image part: leave input.Image nil, validation decides.
		return input, cleanup, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return input, cleanup, err
	}

	input.Image = &services.ImageUpload{
		Meta: validation.ImageMeta{
			Filename:    fileHeader.Filename,
			ContentType: contentTypeOf(fileHeader),
			Size:        fileHeader.Size,
		},
		Content: file,
	}
	cleanup = func() { file.Close() }
	return input, cleanup, nil
}

func contentTypeOf(fh *multipart.FileHeader) string {
	ct := fh.Header.Get("Content-Type")
	return strings.TrimSpace(ct)
}

// roundToNearestHalf rounds a rating to the nearest half star for display.
func roundToNearestHalf(v float64) float64 {
	return math.Round(v*2) / 2
}
