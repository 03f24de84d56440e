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

type AddressService struct {
	Repo *repo.GormRepo
}

func (s *AddressService) Create(ctx context.Context, userID uint, req transport.CreateAddressRequest) (*models.Address, error) {
	if req.Recipient == "" || req.Line1 == "" || req.City == "" {
		return nil, fmt.Errorf("%w: recipient, line1 and city required", ErrInvalidAddress)
	}

	addr := models.Address{
		UserID:    userID,
		Kind:      models.AddressKindShipping,
		Recipient: req.Recipient,
		Line1:     req.Line1,
		Line2:     req.Line2,
		City:      req.City,
		Zip:       req.Zip,
		Phone:     req.Phone,
	}
	if err := s.Repo.CreateAddress(ctx, &addr); err != nil {
		return nil, err
	}
	return &addr, nil
}

func (s *AddressService) List(ctx context.Context, userID uint) ([]models.Address, error) {
	return s.Repo.ListUserAddresses(ctx, userID)
}

func (s *AddressService) Delete(ctx context.Context, userID, id uint) error {
	if err := s.Repo.DeleteUserAddress(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: address %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}
