package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/dmoshkin/clothes_shop/internal/models"
	"github.com/dmoshkin/clothes_shop/internal/repo"
)

type Dashboard struct {
	TotalOrders    int64                        `json:"total_orders"`
	Revenue        decimal.Decimal              `json:"revenue"`
	OrdersByStatus map[models.OrderStatus]int64 `json:"orders_by_status"`
	UnitsSold      int64                        `json:"units_sold"`
	TopProducts    []repo.TopProduct            `json:"top_products"`
}

// ReportService aggregates the order ledger for the admin dashboard.
type ReportService struct {
	Repo *repo.GormRepo
}

func (s *ReportService) Dashboard(ctx context.Context) (*Dashboard, error) {
	totalOrders, err := s.Repo.CountOrders(ctx)
	if err != nil {
		return nil, err
	}

	revenue, err := s.Repo.Revenue(ctx)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.Repo.CountOrdersByStatus(ctx)
	if err != nil {
		return nil, err
	}

	unitsSold, err := s.Repo.UnitsSold(ctx)
	if err != nil {
		return nil, err
	}

	topProducts, err := s.Repo.TopProducts(ctx, 5)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		TotalOrders:    totalOrders,
		Revenue:        revenue,
		OrdersByStatus: byStatus,
		UnitsSold:      unitsSold,
		TopProducts:    topProducts,
	}, nil
}
