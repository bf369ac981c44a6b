package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"bazaar/authentication/routes"
	"bazaar/internal/util"
	"bazaar/models"
	"bazaar/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestApp(t *testing.T) (*fiber.App, *repositories.MemoryStore) {
	t.Helper()
	store := repositories.NewMemoryStore()
	app := fiber.New()
	routes.SetupRoutes(app, store, testSecret)
	return app, store
}

// doJSON issues a request with an optional bearer token and decodes the
// response body into a generic map.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	}
	return resp, out
}

func doJSONList(t *testing.T, app *fiber.App, method, path, token string) (*http.Response, []map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out []map[string]any
	if len(raw) > 0 && raw[0] == '[' {
		require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	}
	return resp, out
}

// signupVendor registers a vendor account and logs it in, returning the
// access token and the vendor id.
func signupVendor(t *testing.T, app *fiber.App, email, storeName string) (token, vendorID string) {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/register-vendor", "", fiber.Map{
		"name":        "Vendor",
		"email":       email,
		"password":    "secret1",
		"storeName":   storeName,
		"bankAccount": "1234567890",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	vendorID = body["vendor"].(map[string]any)["id"].(string)

	resp, body = doJSON(t, app, http.MethodPost, "/api/auth/login-vendor", "", fiber.Map{
		"email": email, "password": "secret1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return body["token"].(string), vendorID
}

func signupCustomer(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/register-customer", "", fiber.Map{
		"name": "Customer", "email": email, "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": email, "password": "secret1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return body["token"].(string)
}

func createProduct(t *testing.T, app *fiber.App, token, name, price string, stock int) string {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/api/products", token, fiber.Map{
		"name":  name,
		"price": price,
		"stock": stock,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %v", body)
	return body["product"].(map[string]any)["id"].(string)
}

// jsonDecimal reads a decimal out of decoded JSON, where it appears as a
// quoted string.
func jsonDecimal(t *testing.T, v any) decimal.Decimal {
	t.Helper()
	s, ok := v.(string)
	require.True(t, ok, "expected decimal string, got %T (%v)", v, v)
	return decimal.RequireFromString(s)
}

func TestProductEndpoints(t *testing.T) {
	app, _ := newTestApp(t)
	token, _ := signupVendor(t, app, "vendor@example.com", "Oak & Iron")

	productID := createProduct(t, app, token, "Walnut Desk", "10.00", 5)

	// Public browse needs no token.
	resp, list := doJSONList(t, app, http.MethodGet, "/api/products", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, list, 1)
	assert.Equal(t, "Walnut Desk", list[0]["name"])

	resp, body := doJSON(t, app, http.MethodGet, "/api/products/"+productID, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Walnut Desk", body["name"])

	// Management requires a token.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/products", "", fiber.Map{
		"name": "Sneaky", "price": "1.00", "stock": 1,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Customers cannot manage the catalog.
	customerToken := signupCustomer(t, app, "customer@example.com")
	resp, body = doJSON(t, app, http.MethodPost, "/api/products", customerToken, fiber.Map{
		"name": "Sneaky", "price": "1.00", "stock": 1,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "No vendor account found for this user.", body["error"])

	// Another vendor cannot touch this vendor's product.
	otherToken, _ := signupVendor(t, app, "other@example.com", "Rival Goods")
	resp, _ = doJSON(t, app, http.MethodPut, "/api/products/"+productID, otherToken, fiber.Map{
		"price": "0.01",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodPut, "/api/products/"+productID, token, fiber.Map{
		"price": "12.50",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, jsonDecimal(t, body["product"].(map[string]any)["price"]).Equal(decimal.RequireFromString("12.50")))

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/products/"+productID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodGet, "/api/products/"+productID, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCheckoutSplitsCartAcrossVendors(t *testing.T) {
	app, _ := newTestApp(t)
	tokenA, _ := signupVendor(t, app, "a@example.com", "Store A")
	tokenB, _ := signupVendor(t, app, "b@example.com", "Store B")
	p1 := createProduct(t, app, tokenA, "Walnut Desk", "10.00", 5)
	p2 := createProduct(t, app, tokenB, "Brass Lamp", "20.00", 3)

	customer := signupCustomer(t, app, "customer@example.com")
	resp, body := doJSON(t, app, http.MethodPost, "/api/orders", customer, fiber.Map{
		"items": []fiber.Map{
			{"productId": p1, "quantity": 2},
			{"productId": p2, "quantity": 1},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %v", body)

	orders, ok := body["orders"].([]any)
	require.True(t, ok)
	require.Len(t, orders, 2)
	first := orders[0].(map[string]any)
	assert.True(t, jsonDecimal(t, first["amount"]).Equal(decimal.RequireFromString("20.00")))
	assert.Equal(t, models.OrderStatusPending, first["status"])

	// Stock was decremented on the spot.
	resp, body = doJSON(t, app, http.MethodGet, "/api/products/"+p1, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(3), body["stock"])

	// The customer sees both orders, each vendor only its own.
	resp, mine := doJSONList(t, app, http.MethodGet, "/api/orders/mine", customer)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, mine, 2)

	resp, vendorOrders := doJSONList(t, app, http.MethodGet, "/api/vendor/orders", tokenA)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, vendorOrders, 1)

	// Another customer probing the order id gets a plain not-found.
	orderID := fmt.Sprintf("%v", mine[0]["id"])
	stranger := signupCustomer(t, app, "stranger@example.com")
	resp, _ = doJSON(t, app, http.MethodGet, "/api/orders/mine/"+orderID, stranger, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/orders/mine/"+orderID, customer, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCheckoutInsufficientStock(t *testing.T) {
	app, _ := newTestApp(t)
	tokenA, _ := signupVendor(t, app, "a@example.com", "Store A")
	p1 := createProduct(t, app, tokenA, "Walnut Desk", "10.00", 2)

	customer := signupCustomer(t, app, "customer@example.com")
	resp, body := doJSON(t, app, http.MethodPost, "/api/orders", customer, fiber.Map{
		"items": []fiber.Map{{"productId": p1, "quantity": 3}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "Walnut Desk")

	// Nothing was placed or decremented.
	resp, product := doJSON(t, app, http.MethodGet, "/api/products/"+p1, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), product["stock"])
}

func TestPayoutSummary(t *testing.T) {
	app, _ := newTestApp(t)
	token, vendorID := signupVendor(t, app, "vendor@example.com", "Oak & Iron")

	for i, amount := range []string{"100.00", "200.00", "50.00"} {
		resp, body := doJSON(t, app, http.MethodPost, "/api/vendor/orders", token, fiber.Map{
			"orderId":  fmt.Sprintf("ORD-manual-%d", i),
			"amount":   amount,
			"status":   models.OrderStatusCompleted,
			"vendorId": vendorID,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %v", body)
	}
	// Pending orders never count toward the payout.
	resp, _ := doJSON(t, app, http.MethodPost, "/api/vendor/orders", token, fiber.Map{
		"orderId":  "ORD-manual-pending",
		"amount":   "999.00",
		"status":   models.OrderStatusPending,
		"vendorId": vendorID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodGet, "/api/payouts/vendors/"+vendorID+"/summary", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(3), body["total_orders"])
	assert.True(t, jsonDecimal(t, body["total_amount"]).Equal(decimal.RequireFromString("350.00")))
	assert.True(t, jsonDecimal(t, body["platform_fee"]).Equal(decimal.RequireFromString("17.50")))
	assert.True(t, jsonDecimal(t, body["net_payout"]).Equal(decimal.RequireFromString("332.50")))

	// A vendor the caller does not own reads as not found, not forbidden.
	otherToken, _ := signupVendor(t, app, "other@example.com", "Rival Goods")
	resp, _ = doJSON(t, app, http.MethodGet, "/api/payouts/vendors/"+vendorID+"/summary", otherToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMultiVendorOwnerSeesAllStorefronts(t *testing.T) {
	app, store := newTestApp(t)
	ctx := context.Background()
	token, vendor1 := signupVendor(t, app, "owner@example.com", "First Store")

	// A user may own several storefronts; only the first is created
	// through registration.
	owner, err := store.Users().FindByEmail(ctx, "owner@example.com")
	require.NoError(t, err)
	second := models.Vendor{
		Name:        owner.Name,
		Email:       "second-store@example.com",
		StoreName:   "Second Store",
		BankAccount: "0987654321",
		UserID:      owner.ID,
	}
	require.NoError(t, store.Vendors().Create(ctx, &second))
	vendor2 := second.ID.String()

	// Direct creation accepts any owned vendor id, not just the profile
	// attached at auth time.
	for i, vendorID := range []string{vendor1, vendor2} {
		resp, body := doJSON(t, app, http.MethodPost, "/api/vendor/orders", token, fiber.Map{
			"orderId":  fmt.Sprintf("ORD-multi-%d", i),
			"amount":   "100.00",
			"status":   models.OrderStatusCompleted,
			"vendorId": vendorID,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode, "vendor %s body: %v", vendorID, body)
	}

	// The payout summary works for every owned storefront.
	for _, vendorID := range []string{vendor1, vendor2} {
		resp, body := doJSON(t, app, http.MethodGet, "/api/payouts/vendors/"+vendorID+"/summary", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, "vendor %s body: %v", vendorID, body)
		assert.Equal(t, float64(1), body["total_orders"])
		assert.True(t, jsonDecimal(t, body["net_payout"]).Equal(decimal.RequireFromString("95.00")))
	}

	// The order list spans both storefronts, and id lookups reach
	// orders of either one.
	resp, orders := doJSONList(t, app, http.MethodGet, "/api/vendor/orders", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, orders, 2)
	for _, order := range orders {
		id := fmt.Sprintf("%v", order["id"])
		resp, _ := doJSON(t, app, http.MethodGet, "/api/vendor/orders/"+id, token, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	// None of it leaks to a different vendor account.
	otherToken, _ := signupVendor(t, app, "other@example.com", "Rival Goods")
	resp, _ = doJSON(t, app, http.MethodGet, "/api/payouts/vendors/"+vendor2+"/summary", otherToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, rivalOrders := doJSONList(t, app, http.MethodGet, "/api/vendor/orders", otherToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, rivalOrders)
}

func TestAdminPayoutAccess(t *testing.T) {
	app, store := newTestApp(t)
	token, vendorID := signupVendor(t, app, "vendor@example.com", "Oak & Iron")

	resp, body := doJSON(t, app, http.MethodPost, "/api/vendor/orders", token, fiber.Map{
		"orderId":  "ORD-admin-check",
		"amount":   "80.00",
		"status":   models.OrderStatusCompleted,
		"vendorId": vendorID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %v", body)

	// The vendor's own token is not enough for the admin route.
	resp, body = doJSON(t, app, http.MethodGet, "/api/payouts/admin/vendors/"+vendorID+"/summary", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Admin access only.", body["error"])

	// Admin accounts are provisioned out of band, never via registration.
	admin := models.User{Name: "Root", Email: "root@example.com", PasswordHash: "x", IsAdmin: true}
	require.NoError(t, store.Users().Create(context.Background(), &admin))
	adminToken, err := util.CreateAccessToken(&admin, testSecret, 1)
	require.NoError(t, err)

	resp, body = doJSON(t, app, http.MethodGet, "/api/payouts/admin/vendors/"+vendorID+"/summary", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, "body: %v", body)
	assert.Equal(t, true, body["accessed_by_admin"])
	assert.Equal(t, "Oak & Iron", body["vendor"])
	assert.True(t, jsonDecimal(t, body["net_payout"]).Equal(decimal.RequireFromString("76.00")))
}

func TestOrderReportEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	token, vendorID := signupVendor(t, app, "vendor@example.com", "Oak & Iron")

	resp, body := doJSON(t, app, http.MethodGet, "/api/vendor/orders/report", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, body["error"])

	resp, createBody := doJSON(t, app, http.MethodPost, "/api/vendor/orders", token, fiber.Map{
		"orderId":  "ORD-report-1",
		"amount":   "40.00",
		"status":   models.OrderStatusCompleted,
		"vendorId": vendorID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %v", createBody)

	resp, body = doJSON(t, app, http.MethodGet,
		"/api/vendor/orders/report?from=2000-01-01&to=2100-01-01", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, "body: %v", body)
	assert.Equal(t, float64(1), body["totalOrders"])
	assert.True(t, jsonDecimal(t, body["totalRevenue"]).Equal(decimal.RequireFromString("40.00")))
}
