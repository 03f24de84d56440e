package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/dmoshkin/clothes_shop/internal/models"
	"github.com/dmoshkin/clothes_shop/internal/transport"
)

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product := models.Product{}
	if err := r.DB.WithContext(ctx).Preload("Sizes").First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) GetProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Product
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).
		Preload("Sizes").
		Order("id ASC").Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Create(prod).Error
}

func (r *GormRepo) PatchProduct(ctx context.Context, req transport.PatchProductRequest, id uint) (*models.Product, error) {
	var prod models.Product
	if err := r.DB.WithContext(ctx).Preload("Sizes").First(&prod, id).Error; err != nil {
		return nil, err
	}

	if req.Name != nil {
		prod.Name = *req.Name
	}
	if req.Description != nil {
		prod.Description = *req.Description
	}
	if req.Price != nil {
		prod.Price = *req.Price
	}
	if req.BrandID != nil {
		prod.BrandID = *req.BrandID
	}
	if req.AudienceID != nil {
		prod.AudienceID = *req.AudienceID
	}

	if err := r.DB.WithContext(ctx).Save(&prod).Error; err != nil {
		return nil, err
	}

	return &prod, nil
}

// DeleteProduct removes the product and its sizes in one transaction,
// so a failed product delete cannot strand a sizeless product row.
func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	return r.Transaction(ctx, func(tx *GormRepo) error {
		if err := tx.DB.WithContext(ctx).
			Where("product_id = ?", id).
			Delete(&models.ProductSize{}).Error; err != nil {
			return err
		}

		res := tx.DB.WithContext(ctx).Delete(&models.Product{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormRepo) SizeByBarcode(ctx context.Context, barcode string) (*models.ProductSize, *models.Product, error) {
	var size models.ProductSize
	if err := r.DB.WithContext(ctx).Where("barcode = ?", barcode).First(&size).Error; err != nil {
		return nil, nil, err
	}

	var prod models.Product
	if err := r.DB.WithContext(ctx).First(&prod, size.ProductID).Error; err != nil {
		return nil, nil, err
	}

	return &size, &prod, nil
}

func (r *GormRepo) CreateSize(ctx context.Context, size *models.ProductSize) error {
	return r.DB.WithContext(ctx).Create(size).Error
}

func (r *GormRepo) SetSizeStock(ctx context.Context, sizeID uint, stock uint) error {
	res := r.DB.WithContext(ctx).Model(&models.ProductSize{}).
		Where("id = ?", sizeID).
		UpdateColumn("stock", stock)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DecrementStock runs a conditional decrement so two concurrent orders
// cannot oversell a size. RowsAffected stays 0 when stock < quantity.
func (r *GormRepo) DecrementStock(ctx context.Context, sizeID uint, quantity uint) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&models.ProductSize{}).
		Where("id = ? AND stock >= ?", sizeID, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *GormRepo) CreateBrand(ctx context.Context, brand *models.Brand) error {
	return r.DB.WithContext(ctx).Create(brand).Error
}

func (r *GormRepo) ListBrands(ctx context.Context) ([]models.Brand, error) {
	var brands []models.Brand
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

func (r *GormRepo) CreateAudience(ctx context.Context, audience *models.Audience) error {
	return r.DB.WithContext(ctx).Create(audience).Error
}

func (r *GormRepo) ListAudiences(ctx context.Context) ([]models.Audience, error) {
	var audiences []models.Audience
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&audiences).Error; err != nil {
		return nil, err
	}
	return audiences, nil
}

func (r *GormRepo) CreateReview(ctx context.Context, review *models.Review) error {
	return r.DB.WithContext(ctx).Create(review).Error
}

func (r *GormRepo) ListProductReviews(ctx context.Context, productID uint, offset, limit int) (int64, []models.Review, error) {
	q := r.DB.WithContext(ctx).Model(&models.Review{}).Where("product_id = ?", productID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var reviews []models.Review
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&reviews).Error; err != nil {
		return 0, nil, err
	}
	return total, reviews, nil
}
