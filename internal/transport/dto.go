package transport

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmoshkin/clothes_shop/internal/models"
)

type OrderLine struct {
	Barcode  string `json:"barcode"`
	Quantity uint   `json:"quantity"`
}

type BillingAddress struct {
	Recipient string `json:"recipient"`
	Line1     string `json:"line1"`
	Line2     string `json:"line2"`
	City      string `json:"city"`
	Zip       string `json:"zip"`
	Phone     string `json:"phone"`
}

type PlaceOrderRequest struct {
	Items                 []OrderLine     `json:"items"`
	ShippingAddressID     uint            `json:"shipping_address_id"`
	BillingSameAsShipping bool            `json:"billing_same_as_shipping"`
	Billing               *BillingAddress `json:"billing,omitempty"`
	ShippingCost          decimal.Decimal `json:"shipping_cost"`
	Discount              decimal.Decimal `json:"discount"`
}

type PlaceOrderResponse struct {
	OrderID      uint               `json:"order_id"`
	Status       models.OrderStatus `json:"status"`
	Subtotal     decimal.Decimal    `json:"subtotal"`
	ShippingCost decimal.Decimal    `json:"shipping_cost"`
	Discount     decimal.Decimal    `json:"discount"`
	Total        decimal.Decimal    `json:"total"`
	CreatedAt    time.Time          `json:"created_at"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

type OrderResponse struct {
	Order models.Order       `json:"order"`
	Items []models.OrderItem `json:"items"`
}

type CreateIntentRequest struct {
	OrderID uint `json:"order_id"`
}

type CreateIntentResponse struct {
	IntentID     string `json:"intent_id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

type ConfirmPaymentRequest struct {
	OrderID  uint   `json:"order_id"`
	IntentID string `json:"intent_id"`
}

type CreateProductRequest struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Price       decimal.Decimal     `json:"price"`
	BrandID     uint                `json:"brand_id"`
	AudienceID  uint                `json:"audience_id"`
	Sizes       []CreateSizeRequest `json:"sizes"`
}

type CreateSizeRequest struct {
	Label   string `json:"label"`
	Barcode string `json:"barcode"`
	Stock   uint   `json:"stock"`
}

type PatchProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	BrandID     *uint            `json:"brand_id"`
	AudienceID  *uint            `json:"audience_id"`
}

type SetStockRequest struct {
	Stock uint `json:"stock"`
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type CreateAddressRequest struct {
	Recipient string `json:"recipient"`
	Line1     string `json:"line1"`
	Line2     string `json:"line2"`
	City      string `json:"city"`
	Zip       string `json:"zip"`
	Phone     string `json:"phone"`
}

type AddToCartRequest struct {
	Barcode  string `json:"barcode"`
	Quantity uint   `json:"quantity"`
}
