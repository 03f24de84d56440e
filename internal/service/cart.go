package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dmoshkin/clothes_shop/internal/models"
	"github.com/dmoshkin/clothes_shop/internal/repo"
	"github.com/dmoshkin/clothes_shop/internal/transport"
)

type CartService struct {
	Repo *repo.GormRepo
}

func (s *CartService) GetCart(ctx context.Context, userID uint) ([]models.CartItem, error) {
	return s.Repo.ListCartItems(ctx, userID)
}

func (s *CartService) AddToCart(ctx context.Context, userID uint, req transport.AddToCartRequest) (*models.CartItem, error) {
	if req.Barcode == "" {
		return nil, fmt.Errorf("%w: barcode required", ErrValidation)
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	if _, _, err := s.Repo.SizeByBarcode(ctx, req.Barcode); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: barcode %s", ErrNotFound, req.Barcode)
		}
		return nil, err
	}

	return s.Repo.UpsertCartItem(ctx, userID, req.Barcode, req.Quantity)
}

func (s *CartService) RemoveFromCart(ctx context.Context, userID, itemID uint) error {
	if err := s.Repo.DeleteCartItem(ctx, itemID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: cart item %d", ErrNotFound, itemID)
		}
		return err
	}
	return nil
}

func (s *CartService) ClearCart(ctx context.Context, userID uint) error {
	return s.Repo.ClearCart(ctx, userID)
}

// Lines converts the cart into checkout order lines.
func (s *CartService) Lines(ctx context.Context, userID uint) ([]transport.OrderLine, error) {
	items, err := s.Repo.ListCartItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrValidation)
	}

	lines := make([]transport.OrderLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, transport.OrderLine{Barcode: item.Barcode, Quantity: item.Quantity})
	}
	return lines, nil
}
