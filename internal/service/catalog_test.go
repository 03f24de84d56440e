package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmoshkin/clothes_shop/internal/transport"
)

func TestCatalogService_CreateProduct(t *testing.T) {
	t.Parallel()

	svc := &CatalogService{Repo: newTestRepo(t)}
	ctx := context.Background()

	prod, err := svc.CreateProduct(ctx, transport.CreateProductRequest{
		Name:        "Parka",
		Description: "Winter parka",
		Price:       decimal.RequireFromString("129.999"),
		Sizes: []transport.CreateSizeRequest{
			{Label: "M", Barcode: "parka-m", Stock: 3},
			{Label: "L", Barcode: "parka-l", Stock: 1},
		},
	})
	require.NoError(t, err)

	assert.True(t, prod.Price.Equal(decimal.RequireFromString("130.00")), "price stored at two decimals, got %s", prod.Price)
	require.Len(t, prod.Sizes, 2)
	assert.Equal(t, uint(4), prod.TotalStock())

	got, err := svc.GetProduct(ctx, prod.ID)
	require.NoError(t, err)
	assert.Len(t, got.Sizes, 2)
}

func TestCatalogService_CreateProductValidation(t *testing.T) {
	t.Parallel()

	svc := &CatalogService{Repo: newTestRepo(t)}
	ctx := context.Background()

	tests := []struct {
		name string
		req  transport.CreateProductRequest
	}{
		{
			name: "missing name",
			req:  transport.CreateProductRequest{Price: decimal.NewFromInt(10)},
		},
		{
			name: "negative price",
			req:  transport.CreateProductRequest{Name: "Cap", Price: decimal.NewFromInt(-1)},
		},
		{
			name: "empty barcode",
			req: transport.CreateProductRequest{
				Name:  "Cap",
				Price: decimal.NewFromInt(10),
				Sizes: []transport.CreateSizeRequest{{Label: "M"}},
			},
		},
		{
			name: "duplicate barcode",
			req: transport.CreateProductRequest{
				Name:  "Cap",
				Price: decimal.NewFromInt(10),
				Sizes: []transport.CreateSizeRequest{
					{Label: "M", Barcode: "cap-1"},
					{Label: "L", Barcode: "cap-1"},
				},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := svc.CreateProduct(ctx, tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCatalogService_PatchProduct(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()

	prod := seedProduct(t, r, "Tee", "tee-m", "15.00", 5)

	newName := "Tee v2"
	newPrice := decimal.RequireFromString("17.50")
	patched, err := svc.PatchProduct(ctx, transport.PatchProductRequest{Name: &newName, Price: &newPrice}, prod.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tee v2", patched.Name)
	assert.True(t, patched.Price.Equal(newPrice))
	assert.Equal(t, prod.Description, patched.Description, "unset fields stay untouched")

	bad := decimal.NewFromInt(-5)
	_, err = svc.PatchProduct(ctx, transport.PatchProductRequest{Price: &bad}, prod.ID)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.PatchProduct(ctx, transport.PatchProductRequest{Name: &newName}, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogService_AddSizeAndSetStock(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()

	prod := seedProduct(t, r, "Jeans", "jeans-m", "60.00", 2)

	size, err := svc.AddSize(ctx, prod.ID, transport.CreateSizeRequest{Label: "L", Barcode: "jeans-l", Stock: 7})
	require.NoError(t, err)
	assert.Equal(t, prod.ID, size.ProductID)

	_, err = svc.AddSize(ctx, prod.ID, transport.CreateSizeRequest{Label: "XL"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.AddSize(ctx, 999, transport.CreateSizeRequest{Label: "M", Barcode: "orphan"})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.SetStock(ctx, size.ID, 0))
	assert.Equal(t, uint(0), sizeStock(t, r, "jeans-l"))

	assert.ErrorIs(t, svc.SetStock(ctx, 999, 1), ErrNotFound)
}

func TestCatalogService_Reviews(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()

	prod := seedProduct(t, r, "Scarf", "scarf-m", "20.00", 1)

	review, err := svc.CreateReview(ctx, 1, prod.ID, transport.CreateReviewRequest{Rating: 5, Comment: "warm"})
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.CreateReview(ctx, 1, prod.ID, transport.CreateReviewRequest{Rating: rating})
		assert.ErrorIs(t, err, ErrValidation, "rating %d", rating)
	}

	_, err = svc.CreateReview(ctx, 1, 999, transport.CreateReviewRequest{Rating: 3})
	assert.ErrorIs(t, err, ErrNotFound)

	total, reviews, err := svc.ListReviews(ctx, prod.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, reviews, 1)
	assert.Equal(t, "warm", reviews[0].Comment)
}

func TestCatalogService_BrandsAndAudiences(t *testing.T) {
	t.Parallel()

	svc := &CatalogService{Repo: newTestRepo(t)}
	ctx := context.Background()

	_, err := svc.CreateBrand(ctx, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateBrand(ctx, "Northwind")
	require.NoError(t, err)
	_, err = svc.CreateAudience(ctx, "kids")
	require.NoError(t, err)

	brands, err := svc.ListBrands(ctx)
	require.NoError(t, err)
	require.Len(t, brands, 1)
	assert.Equal(t, "Northwind", brands[0].Name)

	audiences, err := svc.ListAudiences(ctx)
	require.NoError(t, err)
	assert.Len(t, audiences, 1)
}
