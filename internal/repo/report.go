package repo

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/dmoshkin/clothes_shop/internal/models"
)

type TopProduct struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitsSold   uint   `json:"units_sold"`
}

func (r *GormRepo) CountOrders(ctx context.Context) (int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&models.Order{}).Count(&total).Error
	return total, err
}

func (r *GormRepo) CountOrdersByStatus(ctx context.Context) (map[models.OrderStatus]int64, error) {
	var rows []struct {
		Status models.OrderStatus
		Total  int64
	}
	if err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[models.OrderStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

// Revenue sums totals of orders still counting toward revenue:
// cancelled and returned orders were refunded, payment_failed ones
// were never paid.
func (r *GormRepo) Revenue(ctx context.Context) (decimal.Decimal, error) {
	var row struct {
		Revenue decimal.Decimal
	}
	if err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Select("COALESCE(SUM(total), 0) AS revenue").
		Where("status NOT IN ?", []models.OrderStatus{
			models.OrderStatusCancelled,
			models.OrderStatusReturned,
			models.OrderStatusPaymentFailed,
		}).
		Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Revenue, nil
}

func (r *GormRepo) UnitsSold(ctx context.Context) (int64, error) {
	var row struct {
		Units int64
	}
	if err := r.DB.WithContext(ctx).Model(&models.OrderItem{}).
		Select("COALESCE(SUM(quantity), 0) AS units").
		Scan(&row).Error; err != nil {
		return 0, err
	}
	return row.Units, nil
}

func (r *GormRepo) TopProducts(ctx context.Context, limit int) ([]TopProduct, error) {
	var rows []TopProduct
	if err := r.DB.WithContext(ctx).Model(&models.OrderItem{}).
		Select("product_id, product_name, SUM(quantity) AS units_sold").
		Group("product_id, product_name").
		Order("units_sold DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
