package checkout

import (
	"bazaar/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is one line of a caller-submitted cart. Carts are never
// persisted; they exist only for the duration of a checkout call.
type CartItem struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

// GroupItem pairs a requested quantity with the product snapshot read at
// validation time. Downstream steps price and name items off this
// snapshot, not the live row.
type GroupItem struct {
	Product  models.Product
	Quantity int
}

// VendorGroup is the slice of a cart belonging to one vendor. One group
// becomes exactly one order.
type VendorGroup struct {
	VendorID uuid.UUID
	Items    []GroupItem
}

// PlacedOrder is the per-vendor result reported back to the caller.
type PlacedOrder struct {
	OrderID  string          `json:"orderId"`
	Amount   decimal.Decimal `json:"amount"`
	Status   string          `json:"status"`
	VendorID uuid.UUID       `json:"vendorId"`
}
