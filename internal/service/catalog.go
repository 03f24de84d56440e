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

type CatalogService struct {
	Repo *repo.GormRepo
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}
	return prod, nil
}

func (s *CatalogService) GetProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.GetProducts(ctx, offset, limit)
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	seen := make(map[string]struct{}, len(req.Sizes))
	for _, size := range req.Sizes {
		if size.Barcode == "" {
			return nil, fmt.Errorf("%w: size barcode required", ErrValidation)
		}
		if _, dup := seen[size.Barcode]; dup {
			return nil, fmt.Errorf("%w: duplicate barcode %s", ErrValidation, size.Barcode)
		}
		seen[size.Barcode] = struct{}{}
	}

	prod := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price.Round(2),
		BrandID:     req.BrandID,
		AudienceID:  req.AudienceID,
	}
	for _, size := range req.Sizes {
		prod.Sizes = append(prod.Sizes, models.ProductSize{
			Label:   size.Label,
			Barcode: size.Barcode,
			Stock:   size.Stock,
		})
	}

	if err := s.Repo.CreateProduct(ctx, &prod); err != nil {
		return nil, err
	}
	return &prod, nil
}

func (s *CatalogService) PatchProduct(ctx context.Context, req transport.PatchProductRequest, id uint) (*models.Product, error) {
	if req.Price != nil && req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}

	prod, err := s.Repo.PatchProduct(ctx, req, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}
	return prod, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}

func (s *CatalogService) AddSize(ctx context.Context, productID uint, req transport.CreateSizeRequest) (*models.ProductSize, error) {
	if req.Barcode == "" {
		return nil, fmt.Errorf("%w: barcode required", ErrValidation)
	}

	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, productID)
		}
		return nil, err
	}

	size := models.ProductSize{
		ProductID: productID,
		Label:     req.Label,
		Barcode:   req.Barcode,
		Stock:     req.Stock,
	}
	if err := s.Repo.CreateSize(ctx, &size); err != nil {
		return nil, err
	}
	return &size, nil
}

// SetStock is the admin path; checkout never sets stock directly.
func (s *CatalogService) SetStock(ctx context.Context, sizeID uint, stock uint) error {
	if err := s.Repo.SetSizeStock(ctx, sizeID, stock); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: size %d", ErrNotFound, sizeID)
		}
		return err
	}
	return nil
}

func (s *CatalogService) CreateBrand(ctx context.Context, name string) (*models.Brand, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	brand := models.Brand{Name: name}
	if err := s.Repo.CreateBrand(ctx, &brand); err != nil {
		return nil, err
	}
	return &brand, nil
}

func (s *CatalogService) ListBrands(ctx context.Context) ([]models.Brand, error) {
	return s.Repo.ListBrands(ctx)
}

func (s *CatalogService) CreateAudience(ctx context.Context, name string) (*models.Audience, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	audience := models.Audience{Name: name}
	if err := s.Repo.CreateAudience(ctx, &audience); err != nil {
		return nil, err
	}
	return &audience, nil
}

func (s *CatalogService) ListAudiences(ctx context.Context) ([]models.Audience, error) {
	return s.Repo.ListAudiences(ctx)
}

func (s *CatalogService) CreateReview(ctx context.Context, userID, productID uint, req transport.CreateReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}

	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, productID)
		}
		return nil, err
	}

	review := models.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.Repo.CreateReview(ctx, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *CatalogService) ListReviews(ctx context.Context, productID uint, offset, limit int) (int64, []models.Review, error) {
	return s.Repo.ListProductReviews(ctx, productID, offset, limit)
}
