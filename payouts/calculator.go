package payouts

import (
	"context"

	"bazaar/models"
	"bazaar/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlatformFeeRate is the fixed platform cut deducted from a vendor's
// completed-order revenue.
var PlatformFeeRate = decimal.NewFromFloat(0.05)

// Summary is one vendor's payout breakdown.
type Summary struct {
	VendorID    uuid.UUID       `json:"vendor_id"`
	Vendor      string          `json:"vendor"`
	TotalOrders int             `json:"total_orders"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	PlatformFee decimal.Decimal `json:"platform_fee"`
	NetPayout   decimal.Decimal `json:"net_payout"`
}

// Summarize computes a vendor's payout from its completed orders. It is
// a pure function of the order set: no stored payout state, safe to
// recompute on every call.
func Summarize(vendor models.Vendor, completed []models.Order) Summary {
	total := decimal.Zero
	for _, order := range completed {
		total = total.Add(order.Amount)
	}
	fee := total.Mul(PlatformFeeRate)
	return Summary{
		VendorID:    vendor.ID,
		Vendor:      vendor.StoreName,
		TotalOrders: len(completed),
		TotalAmount: total,
		PlatformFee: fee,
		NetPayout:   total.Sub(fee),
	}
}

// Service loads order sets for payout computation and reporting.
type Service struct {
	Store repositories.Store
}

func NewService(store repositories.Store) *Service {
	return &Service{Store: store}
}

// ForVendor summarizes one vendor's completed orders.
func (s *Service) ForVendor(ctx context.Context, vendor models.Vendor) (Summary, error) {
	completed, err := s.Store.Orders().FindCompletedByVendorID(ctx, vendor.ID)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(vendor, completed), nil
}

// ForOwner summarizes every vendor the user owns, one record per vendor.
// Vendors without completed orders report zeroes rather than being
// omitted.
func (s *Service) ForOwner(ctx context.Context, userID uuid.UUID) ([]Summary, error) {
	vendors, err := s.Store.Vendors().FindAllByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	summaries := make([]Summary, 0, len(vendors))
	for _, vendor := range vendors {
		summary, err := s.ForVendor(ctx, vendor)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
