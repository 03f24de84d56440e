package models

import "fmt"

type OrderStatus string

const (
	OrderStatusProcessing    OrderStatus = "processing"
	OrderStatusShipped       OrderStatus = "shipped"
	OrderStatusDelivered     OrderStatus = "delivered"
	OrderStatusCancelled     OrderStatus = "cancelled"
	OrderStatusReturned      OrderStatus = "returned"
	OrderStatusPaymentFailed OrderStatus = "payment_failed"
)

// Terminal reports whether no further operator transition is allowed.
// PaymentFailed is system-set and has no operator exits either.
func (s OrderStatus) Terminal() bool {
	switch s {
	case OrderStatusCancelled, OrderStatusReturned, OrderStatusPaymentFailed:
		return true
	}
	return false
}

func ParseOrderStatus(v string) (OrderStatus, error) {
	switch OrderStatus(v) {
	case OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered,
		OrderStatusCancelled, OrderStatusReturned, OrderStatusPaymentFailed:
		return OrderStatus(v), nil
	}
	return "", fmt.Errorf("unknown order status %q", v)
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)
