package payouts

import (
	"context"
	"testing"

	"bazaar/models"
	"bazaar/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedOrder(vendorID uuid.UUID, amount string) models.Order {
	return models.Order{
		OrderID:  "ORD-" + uuid.NewString(),
		Amount:   decimal.RequireFromString(amount),
		Status:   models.OrderStatusCompleted,
		VendorID: vendorID,
	}
}

func TestSummarize(t *testing.T) {
	vendor := models.Vendor{ID: uuid.New(), StoreName: "Oak & Iron"}

	tests := []struct {
		name    string
		amounts []string
		total   string
		fee     string
		net     string
	}{
		{
			name:    "three completed orders",
			amounts: []string{"100.00", "200.00", "50.00"},
			total:   "350.00",
			fee:     "17.50",
			net:     "332.50",
		},
		{
			name:    "no completed orders",
			amounts: nil,
			total:   "0",
			fee:     "0",
			net:     "0",
		},
		{
			name:    "fee keeps sub-cent precision",
			amounts: []string{"10.01"},
			total:   "10.01",
			fee:     "0.5005",
			net:     "9.5095",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := make([]models.Order, 0, len(tt.amounts))
			for _, a := range tt.amounts {
				orders = append(orders, completedOrder(vendor.ID, a))
			}

			s := Summarize(vendor, orders)
			assert.Equal(t, vendor.ID, s.VendorID)
			assert.Equal(t, "Oak & Iron", s.Vendor)
			assert.Equal(t, len(orders), s.TotalOrders)
			assert.True(t, s.TotalAmount.Equal(decimal.RequireFromString(tt.total)), "total %s", s.TotalAmount)
			assert.True(t, s.PlatformFee.Equal(decimal.RequireFromString(tt.fee)), "fee %s", s.PlatformFee)
			assert.True(t, s.NetPayout.Equal(decimal.RequireFromString(tt.net)), "net %s", s.NetPayout)
		})
	}
}

func TestSummarizeIsIdempotentAndIncremental(t *testing.T) {
	vendor := models.Vendor{ID: uuid.New(), StoreName: "Oak & Iron"}
	orders := []models.Order{
		completedOrder(vendor.ID, "100.00"),
		completedOrder(vendor.ID, "200.00"),
	}

	first := Summarize(vendor, orders)
	second := Summarize(vendor, orders)
	assert.Equal(t, first.TotalOrders, second.TotalOrders)
	assert.True(t, first.TotalAmount.Equal(second.TotalAmount))
	assert.True(t, first.NetPayout.Equal(second.NetPayout))

	grown := Summarize(vendor, append(orders, completedOrder(vendor.ID, "40.00")))
	assert.True(t, grown.TotalAmount.Sub(first.TotalAmount).Equal(decimal.RequireFromString("40.00")))
	assert.True(t, grown.PlatformFee.Equal(grown.TotalAmount.Mul(PlatformFeeRate)))
	assert.True(t, grown.NetPayout.Equal(grown.TotalAmount.Sub(grown.PlatformFee)))
}

func TestForVendorCountsOnlyCompletedOrders(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	svc := NewService(store)

	vendor := models.Vendor{Name: "A", Email: "a@example.com", StoreName: "Oak & Iron", BankAccount: "1234567890", UserID: uuid.New()}
	require.NoError(t, store.Vendors().Create(ctx, &vendor))

	completed := completedOrder(vendor.ID, "100.00")
	require.NoError(t, store.Orders().Create(ctx, &completed))
	pending := models.Order{
		OrderID:  "ORD-pending",
		Amount:   decimal.RequireFromString("999.00"),
		Status:   models.OrderStatusPending,
		VendorID: vendor.ID,
	}
	require.NoError(t, store.Orders().Create(ctx, &pending))

	s, err := svc.ForVendor(ctx, vendor)
	require.NoError(t, err)
	assert.Equal(t, 1, s.TotalOrders)
	assert.True(t, s.TotalAmount.Equal(decimal.RequireFromString("100.00")))
}

func TestForOwnerReportsZeroVendors(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	svc := NewService(store)
	owner := uuid.New()

	busy := models.Vendor{Name: "A", Email: "busy@example.com", StoreName: "Busy Store", BankAccount: "1234567890", UserID: owner}
	idle := models.Vendor{Name: "A", Email: "idle@example.com", StoreName: "Idle Store", BankAccount: "1234567890", UserID: owner}
	require.NoError(t, store.Vendors().Create(ctx, &busy))
	require.NoError(t, store.Vendors().Create(ctx, &idle))

	order := completedOrder(busy.ID, "80.00")
	require.NoError(t, store.Orders().Create(ctx, &order))

	summaries, err := svc.ForOwner(ctx, owner)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	byStore := map[string]Summary{}
	for _, s := range summaries {
		byStore[s.Vendor] = s
	}
	assert.Equal(t, 1, byStore["Busy Store"].TotalOrders)
	assert.True(t, byStore["Busy Store"].NetPayout.Equal(decimal.RequireFromString("76.00")))

	// Vendors without completed orders are present with zeroes, not
	// omitted.
	assert.Equal(t, 0, byStore["Idle Store"].TotalOrders)
	assert.True(t, byStore["Idle Store"].TotalAmount.IsZero())
	assert.True(t, byStore["Idle Store"].NetPayout.IsZero())
}
