package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
)

// Order is one vendor's slice of a checkout. OrderID is the unique
// human-readable token exposed to callers; CustomerID is nil for orders
// created directly by a vendor.
type Order struct {
	ID         uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID    string          `json:"orderId" gorm:"uniqueIndex;not null"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:numeric(10,2);not null"`
	Status     string          `json:"status" gorm:"not null;default:'pending'"`
	VendorID   uuid.UUID       `json:"vendorId" gorm:"type:uuid;not null;index"`
	CustomerID *uuid.UUID      `json:"customerId" gorm:"type:uuid;index"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// OrderItem snapshots the product name and unit price at purchase time,
// so later product edits do not alter historical orders.
type OrderItem struct {
	ID          uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID     uint            `json:"order_id" gorm:"not null;index"`
	ProductID   uuid.UUID       `json:"productId" gorm:"type:uuid;not null"`
	ProductName string          `json:"product" gorm:"not null"`
	UnitPrice   decimal.Decimal `json:"unitPrice" gorm:"type:numeric(10,2);not null"`
	Quantity    int             `json:"quantity" gorm:"not null"`
	CreatedAt   time.Time       `json:"created_at"`
}
