package repo

import (
	"context"

	"github.com/dmoshkin/clothes_shop/internal/models"
)

func (r *GormRepo) CreatePayment(ctx context.Context, payment *models.Payment) error {
	return r.DB.WithContext(ctx).Create(payment).Error
}

func (r *GormRepo) PaymentByOrder(ctx context.Context, orderID uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.DB.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *GormRepo) PaymentByIntent(ctx context.Context, intentID string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.DB.WithContext(ctx).
		Where("intent_id = ?", intentID).
		First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *GormRepo) SetPaymentStatus(ctx context.Context, paymentID uint, status models.PaymentStatus) error {
	return r.DB.WithContext(ctx).Model(&models.Payment{}).
		Where("id = ?", paymentID).
		Update("status", status).Error
}
