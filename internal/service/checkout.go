package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dmoshkin/clothes_shop/internal/logging"
	"github.com/dmoshkin/clothes_shop/internal/models"
	"github.com/dmoshkin/clothes_shop/internal/repo"
	"github.com/dmoshkin/clothes_shop/internal/transport"
)

// CheckoutService turns a validated set of order lines into a persisted
// order, snapshotting addresses and catalog state and reserving stock.
// Everything happens in one transaction: a failure on any line rolls back
// the order, its items, the billing snapshot and every stock decrement.
type CheckoutService struct {
	Repo *repo.GormRepo
}

func (s *CheckoutService) PlaceOrder(ctx context.Context, userID uint, req transport.PlaceOrderRequest) (*transport.PlaceOrderResponse, error) {
	l := logging.FromContext(ctx).With("svc", "checkout.place_order", "user_id", userID)

	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}
	for _, line := range req.Items {
		if line.Barcode == "" {
			return nil, fmt.Errorf("%w: barcode required", ErrValidation)
		}
		if line.Quantity == 0 {
			return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
		}
	}
	if !req.BillingSameAsShipping && req.Billing == nil {
		return nil, fmt.Errorf("%w: billing address required", ErrInvalidAddress)
	}

	// Round to cents once, so the persisted fields reproduce the
	// persisted total exactly.
	shippingCost := req.ShippingCost.Round(2)
	discount := req.Discount.Round(2)

	var order models.Order

	txErr := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		subtotal := decimal.Zero
		items := make([]models.OrderItem, 0, len(req.Items))
		decrements := make(map[uint]uint, len(req.Items))

		for _, line := range req.Items {
			size, prod, err := tx.SizeByBarcode(ctx, line.Barcode)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: barcode %s", ErrNotFound, line.Barcode)
				}
				return err
			}
			if line.Quantity > size.Stock {
				return fmt.Errorf("%w: barcode %s has %d left, %d requested",
					ErrInsufficientStock, line.Barcode, size.Stock, line.Quantity)
			}

			// Catalog price, never the client's.
			subtotal = subtotal.Add(lineTotal(prod.Price, line.Quantity))
			items = append(items, models.OrderItem{
				ProductID:   prod.ID,
				ProductName: prod.Name,
				SizeLabel:   size.Label,
				Barcode:     size.Barcode,
				UnitPrice:   prod.Price,
				Quantity:    line.Quantity,
			})
			decrements[size.ID] += line.Quantity
		}
		subtotal = subtotal.Round(2)

		shipping, err := tx.GetUserAddress(ctx, req.ShippingAddressID, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: shipping address %d", ErrInvalidAddress, req.ShippingAddressID)
			}
			return err
		}

		billing, err := s.billingSnapshot(ctx, tx, userID, shipping, req)
		if err != nil {
			return err
		}

		total, err := orderTotal(subtotal, shippingCost, discount)
		if err != nil {
			return err
		}

		order = models.Order{
			UserID:            userID,
			Status:            models.OrderStatusProcessing,
			Subtotal:          subtotal,
			ShippingCost:      shippingCost,
			Discount:          discount,
			Total:             total,
			ShippingAddressID: shipping.ID,
			BillingAddressID:  billing.ID,
		}
		if err := tx.CreateOrder(ctx, &order); err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.CreateOrderItems(ctx, items); err != nil {
			return err
		}

		// Conditional decrement catches the race where a concurrent order
		// drained the size between the read above and this write.
		for sizeID, qty := range decrements {
			ok, err := tx.DecrementStock(ctx, sizeID, qty)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: size %d oversold", ErrInsufficientStock, sizeID)
			}
		}

		return nil
	})
	if txErr != nil {
		l.Warn("place_order_failed", "error", txErr)
		return nil, txErr
	}

	l.Info("place_order_success", "order_id", order.ID, "total", order.Total)
	return &transport.PlaceOrderResponse{
		OrderID:      order.ID,
		Status:       order.Status,
		Subtotal:     order.Subtotal,
		ShippingCost: order.ShippingCost,
		Discount:     order.Discount,
		Total:        order.Total,
		CreatedAt:    order.CreatedAt,
	}, nil
}

// billingSnapshot inserts the billing row for this order: a copy of the
// shipping address, or the caller-supplied payload. Both become new rows,
// never shared references.
func (s *CheckoutService) billingSnapshot(ctx context.Context, tx *repo.GormRepo, userID uint, shipping *models.Address, req transport.PlaceOrderRequest) (*models.Address, error) {
	var billing models.Address
	if req.BillingSameAsShipping {
		billing = shipping.BillingCopy()
	} else {
		if req.Billing.Recipient == "" || req.Billing.Line1 == "" || req.Billing.City == "" {
			return nil, fmt.Errorf("%w: billing address incomplete", ErrInvalidAddress)
		}
		billing = models.Address{
			UserID:    userID,
			Kind:      models.AddressKindBilling,
			Recipient: req.Billing.Recipient,
			Line1:     req.Billing.Line1,
			Line2:     req.Billing.Line2,
			City:      req.Billing.City,
			Zip:       req.Billing.Zip,
			Phone:     req.Billing.Phone,
		}
	}

	if err := tx.CreateAddress(ctx, &billing); err != nil {
		return nil, err
	}
	if billing.ID == 0 {
		return nil, fmt.Errorf("%w: billing address not persisted", ErrInvalidAddress)
	}
	return &billing, nil
}

func (s *CheckoutService) GetOrder(ctx context.Context, orderID, userID uint) (*transport.OrderResponse, error) {
	order, err := s.Repo.GetUserOrder(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return nil, err
	}

	items, err := s.Repo.ListOrderItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	return &transport.OrderResponse{Order: *order, Items: items}, nil
}

func (s *CheckoutService) ListOrders(ctx context.Context, userID uint, offset, limit int) (int64, []models.Order, error) {
	return s.Repo.ListUserOrders(ctx, userID, offset, limit)
}
