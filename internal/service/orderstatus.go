package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/dmoshkin/clothes_shop/internal/logging"
	"github.com/dmoshkin/clothes_shop/internal/models"
	"github.com/dmoshkin/clothes_shop/internal/payment"
	"github.com/dmoshkin/clothes_shop/internal/repo"
)

// StatusService guards order-status transitions and coordinates refunds.
// Legal operator transitions: processing -> shipped|cancelled,
// shipped -> delivered, delivered -> returned. Processing is system-set
// only, and nothing moves out of a terminal status or past a refund.
type StatusService struct {
	Repo    *repo.GormRepo
	Gateway payment.Gateway
}

func (s *StatusService) UpdateStatus(ctx context.Context, orderID uint, target models.OrderStatus, note string) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "orderstatus.update", "order_id", orderID, "target", target)

	var order *models.Order

	txErr := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		var err error
		order, err = tx.GetOrder(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order %d", ErrNotFound, orderID)
			}
			return err
		}

		pay, err := tx.PaymentByOrder(ctx, orderID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := checkTransition(order.Status, target, pay); err != nil {
			return err
		}

		if needsRefund(target, pay) {
			if err := s.Gateway.Refund(ctx, pay.IntentID); err != nil {
				return fmt.Errorf("%w: %v", ErrGatewayFailure, err)
			}
			// Same transaction as the status write: a crash can no longer
			// leave the gateway refunded but the local row untouched.
			if err := tx.SetPaymentStatus(ctx, pay.ID, models.PaymentStatusRefunded); err != nil {
				return err
			}
		}

		order.Status = target
		if note != "" {
			order.Notes = appendNote(order.Notes, note)
		}
		return tx.SaveOrder(ctx, order)
	})
	if txErr != nil {
		l.Warn("update_status_failed", "error", txErr)
		return nil, txErr
	}

	l.Info("update_status_success")
	return order, nil
}

// checkTransition applies the guard rules in order; the first violation wins.
func checkTransition(current, target models.OrderStatus, pay *models.Payment) error {
	if pay != nil && pay.Status == models.PaymentStatusRefunded {
		return fmt.Errorf("%w: payment already refunded", ErrInvalidOperation)
	}
	if current.Terminal() {
		return fmt.Errorf("%w: order is %s", ErrInvalidOperation, current)
	}
	if target == models.OrderStatusProcessing {
		return fmt.Errorf("%w: processing is set by payment confirmation only", ErrInvalidOperation)
	}

	switch current {
	case models.OrderStatusProcessing:
		if target != models.OrderStatusShipped && target != models.OrderStatusCancelled {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidOperation, current, target)
		}
	case models.OrderStatusShipped:
		if target != models.OrderStatusDelivered {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidOperation, current, target)
		}
	case models.OrderStatusDelivered:
		if target != models.OrderStatusReturned {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidOperation, current, target)
		}
	default:
		return fmt.Errorf("%w: %s -> %s", ErrInvalidOperation, current, target)
	}
	return nil
}

func needsRefund(target models.OrderStatus, pay *models.Payment) bool {
	if target != models.OrderStatusCancelled && target != models.OrderStatusReturned {
		return false
	}
	return pay != nil && pay.Status != models.PaymentStatusRefunded
}

func appendNote(notes, note string) string {
	if notes == "" {
		return note
	}
	return strings.TrimRight(notes, "\n") + "\n" + note
}
