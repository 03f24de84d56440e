package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dmoshkin/clothes_shop/internal/logging"
	"github.com/dmoshkin/clothes_shop/internal/models"
	"github.com/dmoshkin/clothes_shop/internal/payment"
	"github.com/dmoshkin/clothes_shop/internal/repo"
	"github.com/dmoshkin/clothes_shop/internal/transport"
)

// PaymentService wraps the gateway and owns the local payment ledger.
// Confirmation is synchronous at checkout; there is no webhook path, so the
// order status after payment has exactly one writer.
type PaymentService struct {
	Repo     *repo.GormRepo
	Gateway  payment.Gateway
	Currency string
}

func (s *PaymentService) CreateIntent(ctx context.Context, userID, orderID uint) (*transport.CreateIntentResponse, error) {
	l := logging.FromContext(ctx).With("svc", "payment.create_intent", "order_id", orderID)

	order, err := s.Repo.GetUserOrder(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return nil, err
	}

	if _, err := s.Repo.PaymentByOrder(ctx, orderID); err == nil {
		return nil, fmt.Errorf("%w: order %d already has a payment", ErrConflict, orderID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	intent, err := s.Gateway.CreateIntent(ctx, toMinorUnits(order.Total), s.Currency)
	if err != nil {
		l.Warn("create_intent_failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrGatewayFailure, err)
	}

	l.Info("create_intent_success", "intent_id", intent.ID)
	return &transport.CreateIntentResponse{
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       intent.Amount,
		Currency:     intent.Currency,
	}, nil
}

// ConfirmAndStore fetches the intent outcome from the gateway, persists the
// payment row and moves the order to processing or payment_failed, all in
// one transaction.
func (s *PaymentService) ConfirmAndStore(ctx context.Context, userID, orderID uint, intentID string) (*models.Payment, error) {
	l := logging.FromContext(ctx).With("svc", "payment.confirm", "order_id", orderID, "intent_id", intentID)

	intent, err := s.Gateway.FetchIntent(ctx, intentID)
	if err != nil {
		l.Warn("confirm_failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrGatewayFailure, err)
	}

	var pay models.Payment

	txErr := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		order, err := tx.GetUserOrder(ctx, orderID, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order %d", ErrNotFound, orderID)
			}
			return err
		}

		if _, err := tx.PaymentByIntent(ctx, intentID); err == nil {
			return fmt.Errorf("%w: intent %s already recorded", ErrConflict, intentID)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		status := mapIntentStatus(intent.Status)
		pay = models.Payment{
			OrderID:   order.ID,
			IntentID:  intent.ID,
			Amount:    decimal.New(intent.Amount, -2),
			Currency:  intent.Currency,
			Status:    status,
			CardBrand: intent.Card.Brand,
			CardLast4: intent.Card.Last4,
		}
		if err := tx.CreatePayment(ctx, &pay); err != nil {
			return err
		}

		if status == models.PaymentStatusFailed {
			order.Status = models.OrderStatusPaymentFailed
		} else {
			order.Status = models.OrderStatusProcessing
		}
		return tx.SaveOrder(ctx, order)
	})
	if txErr != nil {
		l.Warn("confirm_failed", "error", txErr)
		return nil, txErr
	}

	l.Info("confirm_success", "payment_status", pay.Status)
	return &pay, nil
}

func mapIntentStatus(gatewayStatus string) models.PaymentStatus {
	switch gatewayStatus {
	case "succeeded":
		return models.PaymentStatusSucceeded
	case "canceled":
		return models.PaymentStatusFailed
	default:
		// requires_payment_method, requires_confirmation, requires_action,
		// processing, requires_capture
		return models.PaymentStatusPending
	}
}
