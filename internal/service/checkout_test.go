package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmoshkin/clothes_shop/internal/models"
	"github.com/dmoshkin/clothes_shop/internal/transport"
)

func TestCheckoutService_PlaceOrder_ComputesTotals(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CheckoutService{Repo: r}
	ctx := context.Background()

	seedProduct(t, r, "Jacket", "BC-001", "100", 10)
	addr := seedAddress(t, r, 1)

	resp, err := svc.PlaceOrder(ctx, 1, transport.PlaceOrderRequest{
		Items:                 []transport.OrderLine{{Barcode: "BC-001", Quantity: 3}},
		ShippingAddressID:     addr.ID,
		BillingSameAsShipping: true,
		ShippingCost:          decimal.RequireFromString("5"),
		Discount:              decimal.RequireFromString("10"),
	})
	require.NoError(t, err)

	assert.True(t, resp.Subtotal.Equal(decimal.RequireFromString("300")), "subtotal = %s", resp.Subtotal)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("295")), "total = %s", resp.Total)
	assert.Equal(t, models.OrderStatusProcessing, resp.Status)
	assert.Equal(t, uint(7), sizeStock(t, r, "BC-001"))

	// total identity holds on the persisted row too
	order, err := r.GetOrder(ctx, resp.OrderID)
	require.NoError(t, err)
	assert.True(t, order.Total.Equal(order.Subtotal.Add(order.ShippingCost).Sub(order.Discount)))
}

func TestCheckoutService_PlaceOrder_RoundsSubCentInputs(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CheckoutService{Repo: r}
	ctx := context.Background()

	seedProduct(t, r, "Coat", "BC-005", "100", 10)
	addr := seedAddress(t, r, 1)

	resp, err := svc.PlaceOrder(ctx, 1, transport.PlaceOrderRequest{
		Items:                 []transport.OrderLine{{Barcode: "BC-005", Quantity: 1}},
		ShippingAddressID:     addr.ID,
		BillingSameAsShipping: true,
		ShippingCost:          decimal.RequireFromString("0.014"),
		Discount:              decimal.RequireFromString("0.005"),
	})
	require.NoError(t, err)

	// Sub-cent inputs land as cents, and the persisted fields must
	// reproduce the persisted total exactly.
	order, err := r.GetOrder(ctx, resp.OrderID)
	require.NoError(t, err)
	assert.True(t, order.ShippingCost.Equal(decimal.RequireFromString("0.01")), "shipping = %s", order.ShippingCost)
	assert.True(t, order.Discount.Equal(decimal.RequireFromString("0.01")), "discount = %s", order.Discount)
	recomputed := order.Subtotal.Add(order.ShippingCost).Sub(order.Discount)
	assert.True(t, order.Total.Equal(recomputed), "total = %s, recomputed = %s", order.Total, recomputed)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("100")), "total = %s", order.Total)
}

func TestCheckoutService_PlaceOrder_SnapshotsCatalogPrice(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CheckoutService{Repo: r}
	ctx := context.Background()

	prod := seedProduct(t, r, "Jeans", "BC-010", "49.99", 5)
	addr := seedAddress(t, r, 1)

	resp, err := svc.PlaceOrder(ctx, 1, transport.PlaceOrderRequest{
		Items:                 []transport.OrderLine{{Barcode: "BC-010", Quantity: 2}},
		ShippingAddressID:     addr.ID,
		BillingSameAsShipping: true,
	})
	require.NoError(t, err)

	items, err := r.ListOrderItems(ctx, resp.OrderID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, prod.ID, items[0].ProductID)
	assert.Equal(t, "Jeans", items[0].ProductName)
	assert.Equal(t, "BC-010", items[0].Barcode)
	assert.True(t, items[0].UnitPrice.Equal(decimal.RequireFromString("49.99")))

	// later price edits must not leak into the snapshot
	newPrice := decimal.RequireFromString("99.99")
	_, err = r.PatchProduct(ctx, transport.PatchProductRequest{Price: &newPrice}, prod.ID)
	require.NoError(t, err)

	items, err = r.ListOrderItems(ctx, resp.OrderID)
	require.NoError(t, err)
	assert.True(t, items[0].UnitPrice.Equal(decimal.RequireFromString("49.99")))
}

func TestCheckoutService_PlaceOrder_InsufficientStock(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CheckoutService{Repo: r}
	ctx := context.Background()

	seedProduct(t, r, "Shirt", "BC-002", "20", 5)
	addr := seedAddress(t, r, 1)

	_, err := svc.PlaceOrder(ctx, 1, transport.PlaceOrderRequest{
		Items:                 []transport.OrderLine{{Barcode: "BC-002", Quantity: 10}},
		ShippingAddressID:     addr.ID,
		BillingSameAsShipping: true,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	assert.Equal(t, uint(5), sizeStock(t, r, "BC-002"))
	assert.EqualValues(t, 0, count(t, r, &models.Order{}))
	assert.EqualValues(t, 0, count(t, r, &models.OrderItem{}))
}

func TestCheckoutService_PlaceOrder_OversellRollsBackEverything(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CheckoutService{Repo: r}
	ctx := context.Background()

	seedProduct(t, r, "Hoodie", "BC-003", "30", 10)
	addr := seedAddress(t, r, 1)

	// each line passes the per-line stock check, but together they exceed
	// the size's stock, so the conditional decrement fails after the
	// order, its items and the billing snapshot were written
	_, err := svc.PlaceOrder(ctx, 1, transport.PlaceOrderRequest{
		Items: []transport.OrderLine{
			{Barcode: "BC-003", Quantity: 6},
			{Barcode: "BC-003", Quantity: 6},
		},
		ShippingAddressID:     addr.ID,
		BillingSameAsShipping: true,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	assert.Equal(t, uint(10), sizeStock(t, r, "BC-003"))
	assert.EqualValues(t, 0, count(t, r, &models.Order{}))
	assert.EqualValues(t, 0, count(t, r, &models.OrderItem{}))
	assert.EqualValues(t, 1, count(t, r, &models.Address{}), "billing snapshot must be rolled back")
}

func TestCheckoutService_PlaceOrder_StockConservation(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CheckoutService{Repo: r}
	ctx := context.Background()

	seedProduct(t, r, "Cap", "BC-004", "15", 8)
	seedProduct(t, r, "Scarf", "BC-005", "25", 6)
	addr := seedAddress(t, r, 1)

	before := sizeStock(t, r, "BC-004") + sizeStock(t, r, "BC-005")

	_, err := svc.PlaceOrder(ctx, 1, transport.PlaceOrderRequest{
		Items: []transport.OrderLine{
			{Barcode: "BC-004", Quantity: 3},
			{Barcode: "BC-005", Quantity: 2},
		},
		ShippingAddressID:     addr.ID,
		BillingSameAsShipping: true,
	})
	require.NoError(t, err)

	after := sizeStock(t, r, "BC-004") + sizeStock(t, r, "BC-005")
	assert.Equal(t, uint(5), before-after)
}

func TestCheckoutService_PlaceOrder_UnknownBarcode(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CheckoutService{Repo: r}

	addr := seedAddress(t, r, 1)

	_, err := svc.PlaceOrder(context.Background(), 1, transport.PlaceOrderRequest{
		Items:                 []transport.OrderLine{{Barcode: "NOPE", Quantity: 1}},
		ShippingAddressID:     addr.ID,
		BillingSameAsShipping: true,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCheckoutService_PlaceOrder_AddressOwnership(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CheckoutService{Repo: r}

	seedProduct(t, r, "Belt", "BC-006", "10", 5)
	otherUsers := seedAddress(t, r, 2)

	_, err := svc.PlaceOrder(context.Background(), 1, transport.PlaceOrderRequest{
		Items:                 []transport.OrderLine{{Barcode: "BC-006", Quantity: 1}},
		ShippingAddressID:     otherUsers.ID,
		BillingSameAsShipping: true,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestCheckoutService_PlaceOrder_BillingSnapshot(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CheckoutService{Repo: r}
	ctx := context.Background()

	seedProduct(t, r, "Coat", "BC-007", "200", 4)
	addr := seedAddress(t, r, 1)

	resp, err := svc.PlaceOrder(ctx, 1, transport.PlaceOrderRequest{
		Items:                 []transport.OrderLine{{Barcode: "BC-007", Quantity: 1}},
		ShippingAddressID:     addr.ID,
		BillingSameAsShipping: true,
	})
	require.NoError(t, err)

	order, err := r.GetOrder(ctx, resp.OrderID)
	require.NoError(t, err)
	require.NotEqual(t, order.ShippingAddressID, order.BillingAddressID, "billing must be a copy, not a shared reference")

	billing, err := r.GetAddress(ctx, order.BillingAddressID)
	require.NoError(t, err)
	assert.Equal(t, models.AddressKindBilling, billing.Kind)
	assert.Equal(t, addr.Recipient, billing.Recipient)

	// editing the shipping address must not change the snapshot
	addr.City = "Elsewhere"
	require.NoError(t, r.DB.Save(addr).Error)

	billing, err = r.GetAddress(ctx, order.BillingAddressID)
	require.NoError(t, err)
	assert.Equal(t, "Testville", billing.City)
}

func TestCheckoutService_PlaceOrder_Validation(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CheckoutService{Repo: r}
	ctx := context.Background()

	seedProduct(t, r, "Socks", "BC-008", "5", 20)
	addr := seedAddress(t, r, 1)

	tests := []struct {
		name    string
		req     transport.PlaceOrderRequest
		wantErr error
	}{
		{
			name:    "no items",
			req:     transport.PlaceOrderRequest{ShippingAddressID: addr.ID, BillingSameAsShipping: true},
			wantErr: ErrValidation,
		},
		{
			name: "zero quantity",
			req: transport.PlaceOrderRequest{
				Items:             []transport.OrderLine{{Barcode: "BC-008", Quantity: 0}},
				ShippingAddressID: addr.ID, BillingSameAsShipping: true,
			},
			wantErr: ErrValidation,
		},
		{
			name: "negative shipping cost",
			req: transport.PlaceOrderRequest{
				Items:             []transport.OrderLine{{Barcode: "BC-008", Quantity: 1}},
				ShippingAddressID: addr.ID, BillingSameAsShipping: true,
				ShippingCost: decimal.RequireFromString("-1"),
			},
			wantErr: ErrValidation,
		},
		{
			name: "negative discount",
			req: transport.PlaceOrderRequest{
				Items:             []transport.OrderLine{{Barcode: "BC-008", Quantity: 1}},
				ShippingAddressID: addr.ID, BillingSameAsShipping: true,
				Discount: decimal.RequireFromString("-1"),
			},
			wantErr: ErrValidation,
		},
		{
			name: "missing billing payload",
			req: transport.PlaceOrderRequest{
				Items:             []transport.OrderLine{{Barcode: "BC-008", Quantity: 1}},
				ShippingAddressID: addr.ID,
			},
			wantErr: ErrInvalidAddress,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.PlaceOrder(ctx, 1, tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
