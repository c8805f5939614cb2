package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"storefront/internal/config"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/internal/validation"
	"storefront/pkg/imagestore"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testApp struct {
	app *fiber.App
	db  *gorm.DB
}

// setupApp wires the full stack against an in-memory SQLite database,
// mirroring the production wiring minus the broker.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)

	err = db.AutoMigrate(
		&models.Account{},
		&models.Customer{},
		&models.Product{},
		&models.Review{},
		&models.CartItem{},
		&models.Like{},
	)
	assert.NoError(t, err)

	cfg := config.Load()

	accountRepo := repositories.NewGORMAccountRepository(db)
	customerRepo := repositories.NewGORMCustomerRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	reviewRepo := repositories.NewGORMReviewRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	likeRepo := repositories.NewGORMLikeRepository(db)

	engine := validation.NewEngine(cfg.Limits, accountRepo, customerRepo)

	images, err := imagestore.NewStore(t.TempDir(), "/uploads/img/products")
	assert.NoError(t, err)

	identityService := services.NewIdentityService(accountRepo, customerRepo, engine, "test_secret")
	catalogService := services.NewCatalogService(productRepo, reviewRepo, likeRepo, engine, images, nil)
	reviewService := services.NewReviewService(reviewRepo, engine)
	cartService := services.NewCartService(cartRepo, productRepo)

	app := fiber.New()

	authHandler := handlers.NewAuthHandler(identityService)
	userHandler := handlers.NewUserHandler(identityService)
	productHandler := handlers.NewProductHandler(catalogService, identityService)
	reviewHandler := handlers.NewReviewHandler(reviewService, identityService)
	cartHandler := handlers.NewCartHandler(cartService, identityService)

	// Same registration order as production: public, then authed, then admin.
	apiV1 := app.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1)
	productHandler.RegisterPublicRoutes(apiV1)
	reviewHandler.RegisterPublicRoutes(apiV1)

	authed := apiV1.Group("", middleware.AuthRequired(identityService))
	userHandler.RegisterRoutes(authed)
	productHandler.RegisterCustomerRoutes(authed)
	reviewHandler.RegisterCustomerRoutes(authed)
	cartHandler.RegisterRoutes(authed)

	admin := authed.Group("", middleware.AdminRequired())
	userHandler.RegisterAdminRoutes(admin)
	productHandler.RegisterAdminRoutes(admin)

	return &testApp{app: app, db: db}
}

func (ta *testApp) request(t *testing.T, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ta.app.Test(req, -1)
	assert.NoError(t, err)
	return resp, decodeBody(t, resp)
}

func (ta *testApp) multipart(t *testing.T, method, path, token string, fields map[string]string, imageName string, imageContent []byte) (*http.Response, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		assert.NoError(t, writer.WriteField(key, value))
	}
	if imageName != "" {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, imageName))
		header.Set("Content-Type", "image/png")
		part, err := writer.CreatePart(header)
		assert.NoError(t, err)
		_, err = part.Write(imageContent)
		assert.NoError(t, err)
	}
	assert.NoError(t, writer.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ta.app.Test(req, -1)
	assert.NoError(t, err)
	return resp, decodeBody(t, resp)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	var body map[string]interface{}
	if len(raw) > 0 && json.Unmarshal(raw, &body) != nil {
		// Some endpoints return arrays; callers that care decode themselves.
		return map[string]interface{}{"_raw": string(raw)}
	}
	return body
}

func registerBody(username, email string) map[string]string {
	return map[string]string{
		"username":         username,
		"password":         "Str0ng!Pass",
		"confirm_password": "Str0ng!Pass",
		"fname":            "Alice",
		"lname":            "Smith",
		"email":            email,
		"address":          "Main Street 1",
		"city":             "Springfield",
		"postal_code":      "12345",
	}
}

func (ta *testApp) login(t *testing.T, username, password string) (string, uint) {
	t.Helper()

	resp, body := ta.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	assert.NotEmpty(t, token)
	id, _ := body["account_id"].(float64)
	return token, uint(id)
}

// seedAdmin inserts an admin account directly; public registration only
// creates customers.
func (ta *testApp) seedAdmin(t *testing.T) string {
	t.Helper()

	identitySvc := services.NewIdentityService(
		repositories.NewGORMAccountRepository(ta.db),
		repositories.NewGORMCustomerRepository(ta.db),
		validation.NewEngine(config.Load().Limits,
			repositories.NewGORMAccountRepository(ta.db),
			repositories.NewGORMCustomerRepository(ta.db)),
		"test_secret",
	)
	res, err := identitySvc.RegisterUser(services.RegisterInput{
		Username:        "root",
		Password:        "Adm1n!Pass",
		ConfirmPassword: "Adm1n!Pass",
		Role:            "0",
	})
	assert.NoError(t, err)
	assert.True(t, res.OK)

	token, _ := ta.login(t, "root", "Adm1n!Pass")
	return token
}

func TestUserLifecycle(t *testing.T) {
	ta := setupApp(t)

	// Register a customer.
	resp, body := ta.request(t, http.MethodPost, "/api/v1/auth/register", "", registerBody("alice", "alice@example.com"))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "User successfully created!", body["message"])

	// The same username again conflicts.
	resp, body = ta.request(t, http.MethodPost, "/api/v1/auth/register", "", registerBody("alice", "other@example.com"))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Username is already taken!", body["message"])

	// Weak password is rejected outright.
	weak := registerBody("bob", "bob@example.com")
	weak["password"] = "weakpass"
	weak["confirm_password"] = "weakpass"
	resp, body = ta.request(t, http.MethodPost, "/api/v1/auth/register", "", weak)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Password is too weak!", body["message"])

	// Login with the wrong password, then the right one.
	resp, body = ta.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "alice", "password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Wrong Password!", body["message"])

	token, aliceID := ta.login(t, "alice", "Str0ng!Pass")

	// Fetch the own profile.
	resp, body = ta.request(t, http.MethodGet, fmt.Sprintf("/api/v1/users/%d", aliceID), token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	account := body["account"].(map[string]interface{})
	assert.Equal(t, "alice", account["username"])
	customer := body["customer"].(map[string]interface{})
	assert.Equal(t, "alice@example.com", customer["email"])

	// Without a token the route is closed.
	resp, _ = ta.request(t, http.MethodGet, fmt.Sprintf("/api/v1/users/%d", aliceID), "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Update the profile; an email taken by another customer conflicts.
	resp, _ = ta.request(t, http.MethodPost, "/api/v1/auth/register", "", registerBody("bob", "bob@example.com"))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	update := registerBody("alice", "bob@example.com")
	update["password"] = ""
	update["confirm_password"] = ""
	resp, body = ta.request(t, http.MethodPut, fmt.Sprintf("/api/v1/users/%d", aliceID), token, update)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "E-mail already in use!", body["message"])

	update = registerBody("alice", "alice.smith@example.com")
	update["password"] = ""
	update["confirm_password"] = ""
	resp, body = ta.request(t, http.MethodPut, fmt.Sprintf("/api/v1/users/%d", aliceID), token, update)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "User successfully updated!", body["message"])

	// The unchanged password still logs in after the update.
	ta.login(t, "alice", "Str0ng!Pass")

	// Delete the account; the customer row goes with it.
	resp, body = ta.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", aliceID), token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "User successfully deleted!", body["message"])

	var customers int64
	assert.NoError(t, ta.db.Model(&models.Customer{}).Where("account_id = ?", aliceID).Count(&customers).Error)
	assert.Equal(t, int64(0), customers)

	resp, body = ta.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", aliceID), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "User doesn't exist!", body["message"])
}

func TestUserAccessControl(t *testing.T) {
	ta := setupApp(t)
	adminToken := ta.seedAdmin(t)

	resp, _ := ta.request(t, http.MethodPost, "/api/v1/auth/register", "", registerBody("alice", "alice@example.com"))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = ta.request(t, http.MethodPost, "/api/v1/auth/register", "", registerBody("bob", "bob@example.com"))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	aliceToken, aliceID := ta.login(t, "alice", "Str0ng!Pass")
	bobToken, _ := ta.login(t, "bob", "Str0ng!Pass")

	// Bob cannot read Alice's account, the admin can.
	resp, _ = ta.request(t, http.MethodGet, fmt.Sprintf("/api/v1/users/%d", aliceID), bobToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = ta.request(t, http.MethodGet, fmt.Sprintf("/api/v1/users/%d", aliceID), adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The user directory is admin-only.
	resp, _ = ta.request(t, http.MethodGet, "/api/v1/users", aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := ta.request(t, http.MethodGet, "/api/v1/users", adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["admins"], 1)
	assert.Len(t, body["customers"], 2)

	// Admins can create further admins through the gated route.
	resp, body = ta.request(t, http.MethodPost, "/api/v1/users", adminToken, map[string]string{
		"username":         "root2",
		"password":         "Adm1n!Pass",
		"confirm_password": "Adm1n!Pass",
		"role":             "0",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "User successfully created!", body["message"])
}

func productFields() map[string]string {
	return map[string]string{
		"name":          "Gaming Mouse",
		"brand":         "Logi",
		"description":   "A mouse",
		"specification": "DPI 16000",
		"price":         "59.99",
	}
}

func TestProductLifecycle(t *testing.T) {
	ta := setupApp(t)
	adminToken := ta.seedAdmin(t)

	resp, _ := ta.request(t, http.MethodPost, "/api/v1/auth/register", "", registerBody("alice", "alice@example.com"))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	aliceToken, _ := ta.login(t, "alice", "Str0ng!Pass")

	// Customers cannot create products.
	resp, _ = ta.multipart(t, http.MethodPost, "/api/v1/products", aliceToken, productFields(), "mouse.png", []byte("png bytes"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Missing image fails validation.
	resp, body := ta.multipart(t, http.MethodPost, "/api/v1/products", adminToken, productFields(), "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Product image cannot be empty!", body["message"])

	resp, body = ta.multipart(t, http.MethodPost, "/api/v1/products", adminToken, productFields(), "mouse.png", []byte("png bytes"))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Product successfully created!", body["message"])

	// Listing is public.
	resp, body = ta.request(t, http.MethodGet, "/api/v1/products", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	products := body["products"].([]interface{})
	assert.Len(t, products, 1)
	first := products[0].(map[string]interface{})["product"].(map[string]interface{})
	assert.Equal(t, "Gaming Mouse", first["name"])
	assert.Equal(t, "59.99", first["price"])
	assert.Equal(t, []interface{}{"Logi"}, body["brands"])

	productID := uint(first["id"].(float64))

	// Update without a new image keeps the stored one.
	fields := productFields()
	fields["name"] = "Gaming Mouse v2"
	fields["price"] = "49"
	resp, body = ta.multipart(t, http.MethodPut, fmt.Sprintf("/api/v1/products/%d", productID), adminToken, fields, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Product successfully updated!", body["message"])

	resp, body = ta.request(t, http.MethodGet, fmt.Sprintf("/api/v1/products/%d", productID), "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	product := body["product"].(map[string]interface{})
	assert.Equal(t, "Gaming Mouse v2", product["name"])
	assert.Equal(t, "49", product["price"])
	assert.NotEmpty(t, product["image_url"])

	// Likes toggle on and off for customers.
	resp, body = ta.request(t, http.MethodPost, fmt.Sprintf("/api/v1/products/%d/like", productID), aliceToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["liked"])
	assert.Equal(t, float64(1), body["likes"])

	resp, body = ta.request(t, http.MethodPost, fmt.Sprintf("/api/v1/products/%d/like", productID), aliceToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["liked"])
	assert.Equal(t, float64(0), body["likes"])

	// Admins have no customer profile, so they cannot like.
	resp, body = ta.request(t, http.MethodPost, fmt.Sprintf("/api/v1/products/%d/like", productID), adminToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Only customers can like products", body["message"])

	// Delete, then the product is gone.
	resp, body = ta.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/products/%d", productID), adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Product successfully deleted!", body["message"])

	resp, body = ta.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/products/%d", productID), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Product doesn't exist!", body["message"])

	resp, body = ta.request(t, http.MethodGet, fmt.Sprintf("/api/v1/products/%d", productID), "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Product doesn't exist!", body["message"])
}

func TestReviewLifecycle(t *testing.T) {
	ta := setupApp(t)
	adminToken := ta.seedAdmin(t)

	resp, _ := ta.request(t, http.MethodPost, "/api/v1/auth/register", "", registerBody("alice", "alice@example.com"))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	aliceToken, _ := ta.login(t, "alice", "Str0ng!Pass")

	resp, _ = ta.multipart(t, http.MethodPost, "/api/v1/products", adminToken, productFields(), "mouse.png", []byte("png bytes"))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := ta.request(t, http.MethodGet, "/api/v1/products", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	first := body["products"].([]interface{})[0].(map[string]interface{})["product"].(map[string]interface{})
	productID := uint(first["id"].(float64))

	reviewPath := fmt.Sprintf("/api/v1/products/%d/reviews", productID)

	// Invalid rating is rejected.
	resp, body = ta.request(t, http.MethodPost, reviewPath, aliceToken, map[string]string{
		"rating": "6", "comment": "x",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Rating invalid!", body["message"])

	resp, body = ta.request(t, http.MethodPost, reviewPath, aliceToken, map[string]string{
		"rating": "5", "comment": "Excellent mouse!",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Review successfully added!", body["message"])

	// A second submission overwrites, it never duplicates.
	resp, body = ta.request(t, http.MethodPost, reviewPath, aliceToken, map[string]string{
		"rating": "3", "comment": "Broke after a month.",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Review successfully updated!", body["message"])

	var reviewCount int64
	assert.NoError(t, ta.db.Model(&models.Review{}).Where("product_id = ?", productID).Count(&reviewCount).Error)
	assert.Equal(t, int64(1), reviewCount)

	// The product rating reflects the latest review.
	resp, body = ta.request(t, http.MethodGet, fmt.Sprintf("/api/v1/products/%d", productID), "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(3), body["rating"])

	// The own-review endpoint returns it.
	resp, body = ta.request(t, http.MethodGet, reviewPath+"/me", aliceToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(3), body["rating"])
	assert.Equal(t, "Broke after a month.", body["comment"])

	// Admins have no customer profile, so they cannot review.
	resp, body = ta.request(t, http.MethodPost, reviewPath, adminToken, map[string]string{
		"rating": "1", "comment": "meh",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Only customers can review products", body["message"])

	// Delete always reports success, even when repeated.
	resp, body = ta.request(t, http.MethodDelete, reviewPath, aliceToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Review successfully deleted!", body["message"])

	resp, body = ta.request(t, http.MethodDelete, reviewPath, aliceToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Review successfully deleted!", body["message"])

	resp, _ = ta.request(t, http.MethodGet, reviewPath+"/me", aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCartLifecycle(t *testing.T) {
	ta := setupApp(t)
	adminToken := ta.seedAdmin(t)

	resp, _ := ta.request(t, http.MethodPost, "/api/v1/auth/register", "", registerBody("alice", "alice@example.com"))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	aliceToken, _ := ta.login(t, "alice", "Str0ng!Pass")

	resp, _ = ta.multipart(t, http.MethodPost, "/api/v1/products", adminToken, productFields(), "mouse.png", []byte("png bytes"))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := ta.request(t, http.MethodGet, "/api/v1/products", "", nil)
	first := body["products"].([]interface{})[0].(map[string]interface{})["product"].(map[string]interface{})
	productID := uint(first["id"].(float64))

	// Adding a missing product fails.
	resp, body = ta.request(t, http.MethodPost, "/api/v1/cart/9999", aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Product doesn't exist!", body["message"])

	resp, body = ta.request(t, http.MethodPost, fmt.Sprintf("/api/v1/cart/%d", productID), aliceToken, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Product added to cart!", body["message"])

	// Adding the same product again is a no-op.
	resp, _ = ta.request(t, http.MethodPost, fmt.Sprintf("/api/v1/cart/%d", productID), aliceToken, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var cartRows int64
	assert.NoError(t, ta.db.Model(&models.CartItem{}).Count(&cartRows).Error)
	assert.Equal(t, int64(1), cartRows)

	resp, body = ta.request(t, http.MethodGet, "/api/v1/cart", aliceToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	raw, ok := body["_raw"].(string)
	assert.True(t, ok)
	var cart []map[string]interface{}
	assert.NoError(t, json.Unmarshal([]byte(raw), &cart))
	assert.Len(t, cart, 1)
	assert.Equal(t, "Gaming Mouse", cart[0]["name"])

	// Admins have no cart.
	resp, body = ta.request(t, http.MethodGet, "/api/v1/cart", adminToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Only customers have a cart", body["message"])

	resp, body = ta.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/cart/%d", productID), aliceToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Product removed from cart!", body["message"])

	assert.NoError(t, ta.db.Model(&models.CartItem{}).Count(&cartRows).Error)
	assert.Equal(t, int64(0), cartRows)
}

func TestDeleteUserCascades(t *testing.T) {
	ta := setupApp(t)
	adminToken := ta.seedAdmin(t)

	resp, _ := ta.request(t, http.MethodPost, "/api/v1/auth/register", "", registerBody("alice", "alice@example.com"))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	aliceToken, aliceID := ta.login(t, "alice", "Str0ng!Pass")

	resp, _ = ta.multipart(t, http.MethodPost, "/api/v1/products", adminToken, productFields(), "mouse.png", []byte("png bytes"))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := ta.request(t, http.MethodGet, "/api/v1/products", "", nil)
	first := body["products"].([]interface{})[0].(map[string]interface{})["product"].(map[string]interface{})
	productID := uint(first["id"].(float64))

	// Leave a review, a like and a cart entry behind.
	resp, _ = ta.request(t, http.MethodPost, fmt.Sprintf("/api/v1/products/%d/reviews", productID), aliceToken, map[string]string{
		"rating": "5", "comment": "Great!",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = ta.request(t, http.MethodPost, fmt.Sprintf("/api/v1/products/%d/like", productID), aliceToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = ta.request(t, http.MethodPost, fmt.Sprintf("/api/v1/cart/%d", productID), aliceToken, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = ta.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", aliceID), adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	for _, model := range []interface{}{&models.Review{}, &models.Like{}, &models.CartItem{}, &models.Customer{}} {
		var count int64
		assert.NoError(t, ta.db.Model(model).Count(&count).Error)
		assert.Equal(t, int64(0), count, "%T rows must be gone", model)
	}

	// The product itself stays.
	var products int64
	assert.NoError(t, ta.db.Model(&models.Product{}).Count(&products).Error)
	assert.Equal(t, int64(1), products)
}

func TestDeleteProductCascades(t *testing.T) {
	ta := setupApp(t)
	adminToken := ta.seedAdmin(t)

	resp, _ := ta.request(t, http.MethodPost, "/api/v1/auth/register", "", registerBody("alice", "alice@example.com"))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	aliceToken, _ := ta.login(t, "alice", "Str0ng!Pass")

	resp, _ = ta.multipart(t, http.MethodPost, "/api/v1/products", adminToken, productFields(), "mouse.png", []byte("png bytes"))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := ta.request(t, http.MethodGet, "/api/v1/products", "", nil)
	first := body["products"].([]interface{})[0].(map[string]interface{})["product"].(map[string]interface{})
	productID := uint(first["id"].(float64))

	resp, _ = ta.request(t, http.MethodPost, fmt.Sprintf("/api/v1/products/%d/reviews", productID), aliceToken, map[string]string{
		"rating": "4", "comment": "Fine."})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = ta.request(t, http.MethodPost, fmt.Sprintf("/api/v1/products/%d/like", productID), aliceToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = ta.request(t, http.MethodPost, fmt.Sprintf("/api/v1/cart/%d", productID), aliceToken, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = ta.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/products/%d", productID), adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	for _, model := range []interface{}{&models.Review{}, &models.Like{}, &models.CartItem{}, &models.Product{}} {
		var count int64
		assert.NoError(t, ta.db.Model(model).Count(&count).Error)
		assert.Equal(t, int64(0), count, "%T rows must be gone", model)
	}

	// The customer is untouched.
	var customers int64
	assert.NoError(t, ta.db.Model(&models.Customer{}).Count(&customers).Error)
	assert.Equal(t, int64(1), customers)
}
