package checkout

import (
	"context"
	"errors"
	"fmt"

	"bazaar/domain"
	"bazaar/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Split validates a cart against current stock and partitions it by
// owning vendor. Groups come back in first-encounter order and items
// keep their cart order within each group. Stock is checked against the
// snapshot read here; nothing is reserved, so a concurrent cart touching
// the same product can still win the race before Build commits.
func Split(ctx context.Context, products repositories.ProductStore, cart []CartItem) ([]VendorGroup, error) {
	if len(cart) == 0 {
		return nil, domain.Validationf("items", "must contain at least 1 item")
	}

	groups := make([]VendorGroup, 0, 1)
	index := make(map[uuid.UUID]int)

	for i, item := range cart {
		if item.Quantity < 1 {
			return nil, domain.Validationf("items", "quantity must be at least 1 (item %d)", i)
		}

		product, err := products.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: product %s", domain.ErrNotFound, item.ProductID)
			}
			return nil, err
		}
		if product.Stock < item.Quantity {
			return nil, fmt.Errorf("%w: %s", domain.ErrInsufficientStock, product.Name)
		}

		gi, ok := index[product.VendorID]
		if !ok {
			gi = len(groups)
			index[product.VendorID] = gi
			groups = append(groups, VendorGroup{VendorID: product.VendorID})
		}
		groups[gi].Items = append(groups[gi].Items, GroupItem{
			Product:  *product,
			Quantity: item.Quantity,
		})
	}

	return groups, nil
}

// Amount totals a group with decimal arithmetic, so two-decimal currency
// values never accumulate float drift.
func (g VendorGroup) Amount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range g.Items {
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
