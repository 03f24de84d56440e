package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dmoshkin/clothes_shop/internal/models"
	"github.com/dmoshkin/clothes_shop/internal/payment"
	"github.com/dmoshkin/clothes_shop/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// one connection, one in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Brand{},
		&models.Audience{},
		&models.Product{},
		&models.ProductSize{},
		&models.Review{},
		&models.User{},
		&models.RefreshToken{},
		&models.CartItem{},
		&models.Address{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
	))
	return db
}

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()
	return repo.New(newTestDB(t))
}

func seedProduct(t *testing.T, r *repo.GormRepo, name, barcode string, price string, stock uint) *models.Product {
	t.Helper()

	prod := models.Product{
		Name:        name,
		Description: name + " description",
		Price:       decimal.RequireFromString(price),
		Sizes: []models.ProductSize{
			{Label: "M", Barcode: barcode, Stock: stock},
		},
	}
	require.NoError(t, r.CreateProduct(context.Background(), &prod))
	return &prod
}

func seedAddress(t *testing.T, r *repo.GormRepo, userID uint) *models.Address {
	t.Helper()

	addr := models.Address{
		UserID:    userID,
		Kind:      models.AddressKindShipping,
		Recipient: "Test Recipient",
		Line1:     "1 Test Street",
		City:      "Testville",
		Zip:       "00001",
	}
	require.NoError(t, r.CreateAddress(context.Background(), &addr))
	return &addr
}

func seedOrder(t *testing.T, r *repo.GormRepo, userID uint, status models.OrderStatus, total string) *models.Order {
	t.Helper()

	addr := seedAddress(t, r, userID)
	order := models.Order{
		UserID:            userID,
		Status:            status,
		Subtotal:          decimal.RequireFromString(total),
		ShippingCost:      decimal.Zero,
		Discount:          decimal.Zero,
		Total:             decimal.RequireFromString(total),
		ShippingAddressID: addr.ID,
		BillingAddressID:  addr.ID,
	}
	require.NoError(t, r.CreateOrder(context.Background(), &order))
	return &order
}

func seedPayment(t *testing.T, r *repo.GormRepo, orderID uint, intentID string, status models.PaymentStatus) *models.Payment {
	t.Helper()

	pay := models.Payment{
		OrderID:  orderID,
		IntentID: intentID,
		Amount:   decimal.RequireFromString("100"),
		Currency: "usd",
		Status:   status,
	}
	require.NoError(t, r.CreatePayment(context.Background(), &pay))
	return &pay
}

func sizeStock(t *testing.T, r *repo.GormRepo, barcode string) uint {
	t.Helper()

	size, _, err := r.SizeByBarcode(context.Background(), barcode)
	require.NoError(t, err)
	return size.Stock
}

func count(t *testing.T, r *repo.GormRepo, model interface{}) int64 {
	t.Helper()

	var n int64
	require.NoError(t, r.DB.Model(model).Count(&n).Error)
	return n
}

// stubGateway records calls instead of reaching an external processor.
type stubGateway struct {
	createdIntent *payment.Intent
	createErr     error
	lastAmount    int64
	lastCurrency  string

	fetchedIntent *payment.Intent
	fetchErr      error

	refunds   int
	refundErr error
}

func (g *stubGateway) CreateIntent(_ context.Context, amount int64, currency string) (*payment.Intent, error) {
	g.lastAmount = amount
	g.lastCurrency = currency
	if g.createErr != nil {
		return nil, g.createErr
	}
	if g.createdIntent != nil {
		return g.createdIntent, nil
	}
	return &payment.Intent{ID: "pi_test", ClientSecret: "cs_test", Status: "requires_payment_method", Amount: amount, Currency: currency}, nil
}

func (g *stubGateway) FetchIntent(_ context.Context, intentID string) (*payment.Intent, error) {
	if g.fetchErr != nil {
		return nil, g.fetchErr
	}
	if g.fetchedIntent != nil {
		return g.fetchedIntent, nil
	}
	return &payment.Intent{ID: intentID, Status: "succeeded"}, nil
}

func (g *stubGateway) Refund(_ context.Context, _ string) error {
	g.refunds++
	return g.refundErr
}
