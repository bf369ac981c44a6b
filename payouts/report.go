package payouts

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const topProductLimit = 5

// TopProduct is one row of the best-sellers list in an order report.
type TopProduct struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
}

// OrderReport aggregates a vendor's completed orders over a date range.
type OrderReport struct {
	TotalOrders  int             `json:"totalOrders"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	TopProducts  []TopProduct    `json:"topProducts"`
}

// Report builds the order history report for one vendor: order count,
// revenue, and the top five products by aggregate quantity sold. Ties
// keep first-encountered product order rather than re-ranking.
func (s *Service) Report(ctx context.Context, vendorID uuid.UUID, from, to time.Time) (*OrderReport, error) {
	orders, err := s.Store.Orders().FindCompletedByVendorIDBetween(ctx, vendorID, from, to)
	if err != nil {
		return nil, err
	}

	revenue := decimal.Zero
	sales := make(map[uuid.UUID]*TopProduct)
	encountered := make([]uuid.UUID, 0)

	for _, order := range orders {
		revenue = revenue.Add(order.Amount)
		items, err := s.Store.OrderItems().FindByOrderID(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			entry, ok := sales[item.ProductID]
			if !ok {
				entry = &TopProduct{ProductID: item.ProductID, Name: item.ProductName}
				sales[item.ProductID] = entry
				encountered = append(encountered, item.ProductID)
			}
			entry.Quantity += item.Quantity
		}
	}

	top := make([]TopProduct, 0, len(encountered))
	for _, id := range encountered {
		top = append(top, *sales[id])
	}
	sort.SliceStable(top, func(i, j int) bool { return top[i].Quantity > top[j].Quantity })
	if len(top) > topProductLimit {
		top = top[:topProductLimit]
	}

	return &OrderReport{
		TotalOrders:  len(orders),
		TotalRevenue: revenue,
		TopProducts:  top,
	}, nil
}
