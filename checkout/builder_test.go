package checkout

import (
	"context"
	"fmt"
	"testing"
	"time"

	"bazaar/domain"
	"bazaar/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.UnixMilli(1700000000000)

func newService(f *fixture) *Service {
	return &Service{Store: f.store, Now: func() time.Time { return fixedNow }}
}

func stockOf(t *testing.T, f *fixture, id uuid.UUID) int {
	t.Helper()
	p, err := f.store.Products().FindByID(context.Background(), id)
	require.NoError(t, err)
	return p.Stock
}

func TestPlaceOrderSplitsPerVendor(t *testing.T) {
	f := newFixture(t)
	svc := newService(f)
	ctx := context.Background()
	customer := uuid.New()

	placed, err := svc.PlaceOrder(ctx, &customer, []CartItem{
		{ProductID: f.p1.ID, Quantity: 2},
		{ProductID: f.p2.ID, Quantity: 1},
	})
	require.NoError(t, err)
	require.Len(t, placed, 2)

	assert.Equal(t, f.vendorA, placed[0].VendorID)
	assert.Equal(t, f.vendorB, placed[1].VendorID)
	assert.True(t, placed[0].Amount.Equal(decimal.RequireFromString("20.00")))
	assert.True(t, placed[1].Amount.Equal(decimal.RequireFromString("20.00")))
	assert.Equal(t, models.OrderStatusPending, placed[0].Status)

	// Stock decremented by exactly the ordered quantities.
	assert.Equal(t, 3, stockOf(t, f, f.p1.ID))
	assert.Equal(t, 2, stockOf(t, f, f.p2.ID))

	// One persisted order per vendor, carrying the customer id.
	ordersA, err := f.store.Orders().FindByVendorID(ctx, f.vendorA)
	require.NoError(t, err)
	require.Len(t, ordersA, 1)
	require.NotNil(t, ordersA[0].CustomerID)
	assert.Equal(t, customer, *ordersA[0].CustomerID)

	// Items snapshot name, unit price, and quantity; the order amount
	// equals the sum of quantity times unit price exactly.
	items, err := f.store.OrderItems().FindByOrderID(ctx, ordersA[0].ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Walnut Desk", items[0].ProductName)
	assert.Equal(t, 2, items[0].Quantity)
	assert.True(t, items[0].UnitPrice.Equal(decimal.RequireFromString("10.00")))

	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	assert.True(t, ordersA[0].Amount.Equal(sum))
}

func TestPlaceOrderAmountHasNoFloatDrift(t *testing.T) {
	f := newFixture(t)
	svc := newService(f)
	customer := uuid.New()

	// 7 x 1.50 trips float arithmetic (10.499999...) but not decimal.
	placed, err := svc.PlaceOrder(context.Background(), &customer, []CartItem{
		{ProductID: f.p3.ID, Quantity: 7},
	})
	require.NoError(t, err)
	require.Len(t, placed, 1)
	assert.True(t, placed[0].Amount.Equal(decimal.RequireFromString("10.50")))
}

func TestPlaceOrderInsufficientStockLeavesNothingBehind(t *testing.T) {
	f := newFixture(t)
	svc := newService(f)
	ctx := context.Background()
	customer := uuid.New()

	placed, err := svc.PlaceOrder(ctx, &customer, []CartItem{
		{ProductID: f.p1.ID, Quantity: 6},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, placed)

	assert.Equal(t, 5, stockOf(t, f, f.p1.ID))
	orders, err := f.store.Orders().FindByVendorID(ctx, f.vendorA)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestPlaceOrderDuplicateOrderIDRollsBackGroup(t *testing.T) {
	f := newFixture(t)
	svc := newService(f)
	ctx := context.Background()
	customer := uuid.New()

	// Occupy the exact token the builder will generate for vendor A.
	collision := fmt.Sprintf("ORD-%d-%s", fixedNow.UnixMilli(), f.vendorA)
	require.NoError(t, f.store.Orders().Create(ctx, &models.Order{
		OrderID:  collision,
		Amount:   decimal.RequireFromString("1.00"),
		Status:   models.OrderStatusPending,
		VendorID: f.vendorA,
	}))

	placed, err := svc.PlaceOrder(ctx, &customer, []CartItem{
		{ProductID: f.p1.ID, Quantity: 2},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateOrder)
	assert.Empty(t, placed)

	// No partial order, items, or stock mutation survives the rollback.
	assert.Equal(t, 5, stockOf(t, f, f.p1.ID))
	orders, err := f.store.Orders().FindByVendorID(ctx, f.vendorA)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	items, err := f.store.OrderItems().FindByOrderID(ctx, orders[0].ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestPlaceOrderVendorGroupsCommitIndependently(t *testing.T) {
	f := newFixture(t)
	svc := newService(f)
	ctx := context.Background()
	customer := uuid.New()

	// Vendor B's group will collide; vendor A's group commits first and
	// must stay committed.
	collision := fmt.Sprintf("ORD-%d-%s", fixedNow.UnixMilli(), f.vendorB)
	require.NoError(t, f.store.Orders().Create(ctx, &models.Order{
		OrderID:  collision,
		Amount:   decimal.RequireFromString("1.00"),
		Status:   models.OrderStatusPending,
		VendorID: f.vendorB,
	}))

	placed, err := svc.PlaceOrder(ctx, &customer, []CartItem{
		{ProductID: f.p1.ID, Quantity: 1},
		{ProductID: f.p2.ID, Quantity: 1},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateOrder)
	require.Len(t, placed, 1)
	assert.Equal(t, f.vendorA, placed[0].VendorID)

	assert.Equal(t, 4, stockOf(t, f, f.p1.ID))
	assert.Equal(t, 3, stockOf(t, f, f.p2.ID))

	ordersA, err := f.store.Orders().FindByVendorID(ctx, f.vendorA)
	require.NoError(t, err)
	assert.Len(t, ordersA, 1)
}

func TestPlaceOrderSameProductOnTwoLines(t *testing.T) {
	f := newFixture(t)
	svc := newService(f)
	customer := uuid.New()

	placed, err := svc.PlaceOrder(context.Background(), &customer, []CartItem{
		{ProductID: f.p1.ID, Quantity: 1},
		{ProductID: f.p1.ID, Quantity: 2},
	})
	require.NoError(t, err)
	require.Len(t, placed, 1)
	assert.True(t, placed[0].Amount.Equal(decimal.RequireFromString("30.00")))
	assert.Equal(t, 2, stockOf(t, f, f.p1.ID))
}
