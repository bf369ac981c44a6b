package repositories

import (
	"context"
	"time"

	"bazaar/models"

	"github.com/google/uuid"
)

// UserStore persists platform accounts.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// VendorStore persists storefront profiles.
type VendorStore interface {
	Create(ctx context.Context, vendor *models.Vendor) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Vendor, error)
	FindByEmail(ctx context.Context, email string) (*models.Vendor, error)
	FindAllByUserID(ctx context.Context, userID uuid.UUID) ([]models.Vendor, error)
	Update(ctx context.Context, vendor *models.Vendor) error
}

// ProductStore persists the catalog.
type ProductStore interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindByIDForVendor(ctx context.Context, id, vendorID uuid.UUID) (*models.Product, error)
	FindAll(ctx context.Context) ([]models.Product, error)
	FindByVendorID(ctx context.Context, vendorID uuid.UUID) ([]models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderStore persists orders. Create reports ErrDuplicateOrder when the
// human-readable order id token collides with an existing row. The
// VendorOwner lookups match orders of any vendor owned by the user, not
// just one storefront.
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uint) (*models.Order, error)
	FindByIDForVendorOwner(ctx context.Context, id uint, userID uuid.UUID) (*models.Order, error)
	FindByIDForCustomer(ctx context.Context, id uint, customerID uuid.UUID) (*models.Order, error)
	FindByVendorID(ctx context.Context, vendorID uuid.UUID) ([]models.Order, error)
	FindByVendorOwner(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]models.Order, error)
	FindCompletedByVendorID(ctx context.Context, vendorID uuid.UUID) ([]models.Order, error)
	FindCompletedByVendorIDBetween(ctx context.Context, vendorID uuid.UUID, from, to time.Time) ([]models.Order, error)
	Update(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, id uint) error
}

// OrderItemStore persists order line items.
type OrderItemStore interface {
	Create(ctx context.Context, item *models.OrderItem) error
	FindByOrderID(ctx context.Context, orderID uint) ([]models.OrderItem, error)
}

// Store bundles the per-entity stores and scopes multi-row writes.
// Transact runs fn against a store whose writes either all commit or all
// roll back.
type Store interface {
	Users() UserStore
	Vendors() VendorStore
	Products() ProductStore
	Orders() OrderStore
	OrderItems() OrderItemStore
	Transact(ctx context.Context, fn func(Store) error) error
}
