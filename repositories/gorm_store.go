package repositories

import (
	"context"
	"errors"
	"time"

	"bazaar/domain"
	"bazaar/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStore backs the repository interfaces with a gorm connection.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Users() UserStore           { return &gormUserStore{db: s.db} }
func (s *GormStore) Vendors() VendorStore       { return &gormVendorStore{db: s.db} }
func (s *GormStore) Products() ProductStore     { return &gormProductStore{db: s.db} }
func (s *GormStore) Orders() OrderStore         { return &gormOrderStore{db: s.db} }
func (s *GormStore) OrderItems() OrderItemStore { return &gormOrderItemStore{db: s.db} }

func (s *GormStore) Transact(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormStore(tx))
	})
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrConflict
	default:
		return err
	}
}

type gormUserStore struct{ db *gorm.DB }

func (s *gormUserStore) Create(ctx context.Context, user *models.User) error {
	return translate(s.db.WithContext(ctx).Create(user).Error)
}

func (s *gormUserStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *gormUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

type gormVendorStore struct{ db *gorm.DB }

func (s *gormVendorStore) Create(ctx context.Context, vendor *models.Vendor) error {
	return translate(s.db.WithContext(ctx).Create(vendor).Error)
}

func (s *gormVendorStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&vendor).Error; err != nil {
		return nil, translate(err)
	}
	return &vendor, nil
}

func (s *gormVendorStore) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&vendor).Error; err != nil {
		return nil, translate(err)
	}
	return &vendor, nil
}

func (s *gormVendorStore) FindByEmail(ctx context.Context, email string) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&vendor).Error; err != nil {
		return nil, translate(err)
	}
	return &vendor, nil
}

func (s *gormVendorStore) FindAllByUserID(ctx context.Context, userID uuid.UUID) ([]models.Vendor, error) {
	var vendors []models.Vendor
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&vendors).Error
	return vendors, translate(err)
}

func (s *gormVendorStore) Update(ctx context.Context, vendor *models.Vendor) error {
	return translate(s.db.WithContext(ctx).Save(vendor).Error)
}

type gormProductStore struct{ db *gorm.DB }

func (s *gormProductStore) Create(ctx context.Context, product *models.Product) error {
	return translate(s.db.WithContext(ctx).Create(product).Error)
}

func (s *gormProductStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (s *gormProductStore) FindByIDForVendor(ctx context.Context, id, vendorID uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).
		Where("id = ? AND vendor_id = ?", id, vendorID).
		First(&product).Error
	if err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (s *gormProductStore) FindAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).Find(&products).Error
	return products, translate(err)
}

func (s *gormProductStore) FindByVendorID(ctx context.Context, vendorID uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).Where("vendor_id = ?", vendorID).Find(&products).Error
	return products, translate(err)
}

func (s *gormProductStore) Update(ctx context.Context, product *models.Product) error {
	return translate(s.db.WithContext(ctx).Save(product).Error)
}

func (s *gormProductStore) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(s.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error)
}

type gormOrderStore struct{ db *gorm.DB }

func (s *gormOrderStore) Create(ctx context.Context, order *models.Order) error {
	err := s.db.WithContext(ctx).Create(order).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateOrder
	}
	return translate(err)
}

func (s *gormOrderStore) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (s *gormOrderStore) FindByIDForVendorOwner(ctx context.Context, id uint, userID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Joins("JOIN vendors ON vendors.id = orders.vendor_id").
		Where("orders.id = ? AND vendors.user_id = ?", id, userID).
		First(&order).Error
	if err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (s *gormOrderStore) FindByIDForCustomer(ctx context.Context, id uint, customerID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", id, customerID).
		First(&order).Error
	if err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (s *gormOrderStore) FindByVendorID(ctx context.Context, vendorID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).Where("vendor_id = ?", vendorID).Find(&orders).Error
	return orders, translate(err)
}

func (s *gormOrderStore) FindByVendorOwner(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Joins("JOIN vendors ON vendors.id = orders.vendor_id").
		Where("vendors.user_id = ?", userID).
		Find(&orders).Error
	return orders, translate(err)
}

func (s *gormOrderStore) FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).Where("customer_id = ?", customerID).Find(&orders).Error
	return orders, translate(err)
}

func (s *gormOrderStore) FindCompletedByVendorID(ctx context.Context, vendorID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Where("vendor_id = ? AND status = ?", vendorID, models.OrderStatusCompleted).
		Find(&orders).Error
	return orders, translate(err)
}

func (s *gormOrderStore) FindCompletedByVendorIDBetween(ctx context.Context, vendorID uuid.UUID, from, to time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Where("vendor_id = ? AND status = ? AND created_at BETWEEN ? AND ?",
			vendorID, models.OrderStatusCompleted, from, to).
		Find(&orders).Error
	return orders, translate(err)
}

func (s *gormOrderStore) Update(ctx context.Context, order *models.Order) error {
	err := s.db.WithContext(ctx).Save(order).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateOrder
	}
	return translate(err)
}

func (s *gormOrderStore) Delete(ctx context.Context, id uint) error {
	return translate(s.db.WithContext(ctx).Delete(&models.Order{}, "id = ?", id).Error)
}

type gormOrderItemStore struct{ db *gorm.DB }

func (s *gormOrderItemStore) Create(ctx context.Context, item *models.OrderItem) error {
	return translate(s.db.WithContext(ctx).Create(item).Error)
}

func (s *gormOrderItemStore) FindByOrderID(ctx context.Context, orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := s.db.WithContext(ctx).Where("order_id = ?", orderID).Find(&items).Error
	return items, translate(err)
}
