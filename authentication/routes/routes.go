package routes

import (
	authControllers "bazaar/authentication/controllers"
	"bazaar/authentication/middleware"
	"bazaar/checkout"
	mainControllers "bazaar/controllers"
	"bazaar/payouts"
	"bazaar/repositories"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes wires the full HTTP surface. Paths mirror the public API:
// auth, public catalog browse, customer checkout, vendor management,
// and payout summaries.
func SetupRoutes(app *fiber.App, store repositories.Store, jwtSecret string) {
	auth := &authControllers.AuthController{Store: store, JWTSecret: jwtSecret, TokenExpiry: 24}
	products := &mainControllers.ProductController{Store: store}
	vendorProfile := &mainControllers.VendorController{Store: store}
	payoutSvc := payouts.NewService(store)
	customerOrders := &mainControllers.CustomerOrderController{Store: store, Checkout: checkout.NewService(store)}
	vendorOrders := &mainControllers.VendorOrderController{Store: store, Payouts: payoutSvc}
	payout := &mainControllers.PayoutController{Store: store, Payouts: payoutSvc}

	authRequired := middleware.JwtAuthMiddleware(jwtSecret)
	adminRequired := middleware.AdminAuthMiddleware(jwtSecret, store)

	app.Get("/", mainControllers.Hello)

	// Auth: the customer and vendor surfaces have separate logins.
	app.Post("/api/auth/register-customer", auth.RegisterCustomer)
	app.Post("/api/auth/register-vendor", auth.RegisterVendor)
	app.Post("/api/auth/login", auth.LoginCustomer)
	app.Post("/api/auth/login-vendor", auth.LoginVendor)

	// Products: public browse, vendor-only management. Literal segments
	// are registered before ":id" so they are not captured as ids.
	app.Get("/api/products/mine", authRequired, products.GetMyProducts)
	app.Get("/api/products", products.GetAllProducts)
	app.Get("/api/products/:id", products.GetProductByID)
	app.Post("/api/products", authRequired, products.CreateProduct)
	app.Put("/api/products/:id", authRequired, products.UpdateProduct)
	app.Delete("/api/products/:id", authRequired, products.DeleteProduct)

	// Customer orders.
	app.Post("/api/orders", authRequired, customerOrders.PlaceOrder)
	app.Get("/api/orders/mine", authRequired, customerOrders.GetMyOrders)
	app.Get("/api/orders/mine/:id", authRequired, customerOrders.GetMyOrderByID)

	// Vendor orders.
	app.Get("/api/vendor/orders/report", authRequired, vendorOrders.GetOrderReport)
	app.Get("/api/vendor/orders", authRequired, vendorOrders.GetAllOrders)
	app.Post("/api/vendor/orders", authRequired, vendorOrders.CreateOrder)
	app.Get("/api/vendor/orders/:id", authRequired, vendorOrders.GetOrderByID)
	app.Put("/api/vendor/orders/:id", authRequired, vendorOrders.UpdateOrder)
	app.Delete("/api/vendor/orders/:id", authRequired, vendorOrders.DeleteOrder)

	// Vendor profile.
	app.Get("/api/vendor/profile", authRequired, vendorProfile.GetMyVendor)
	app.Put("/api/vendor/profile", authRequired, vendorProfile.UpdateVendor)

	// Payouts.
	app.Get("/api/payouts/vendors/:vendorId/summary", authRequired, payout.GetVendorPayout)
	app.Get("/api/payouts/admin/vendors/:vendorId/summary", adminRequired, payout.GetAdminVendorPayout)
	app.Get("/api/payouts/completed", authRequired, payout.GetAllVendorPayoutsCompleted)
}
