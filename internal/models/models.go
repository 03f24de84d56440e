package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Brand struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"unique;not null"          json:"name"`
}

type Audience struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"unique;not null"          json:"name"`
}

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name        string          `gorm:"not null"                  json:"name"`
	Description string          `gorm:"not null"                  json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	BrandID     uint            `gorm:"index"                     json:"brand_id"`
	AudienceID  uint            `gorm:"index"                     json:"audience_id"`
	Sizes       []ProductSize   `gorm:"foreignKey:ProductID"      json:"sizes"`
}

// TotalStock is the sum of per-size stock counters.
func (p *Product) TotalStock() uint {
	var total uint
	for _, s := range p.Sizes {
		total += s.Stock
	}
	return total
}

type ProductSize struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint   `gorm:"index;not null"           json:"product_id"`
	Label     string `gorm:"not null"                 json:"label"`
	Barcode   string `gorm:"unique;not null"          json:"barcode"`
	Stock     uint   `gorm:"not null;default:0"       json:"stock"`
}

type Review struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"            json:"id"`
	ProductID uint      `gorm:"index;not null"                      json:"product_id"`
	UserID    uint      `gorm:"index;not null"                      json:"user_id"`
	Rating    int       `gorm:"not null;check:rating BETWEEN 1 AND 5" json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null;default:user"    json:"role"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	UserID    uint   `gorm:"index;not null"  json:"user_id"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}

type CartItem struct {
	ID       uint   `gorm:"primaryKey"                  json:"id"`
	UserID   uint   `gorm:"index;not null"              json:"user_id"`
	Barcode  string `gorm:"not null"                    json:"barcode"`
	Quantity uint   `gorm:"default:1;check:quantity>0"  json:"quantity"`
}

const (
	AddressKindShipping = "shipping"
	AddressKindBilling  = "billing"
)

type Address struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"     json:"id"`
	UserID    uint   `gorm:"index;not null"               json:"user_id"`
	Kind      string `gorm:"not null;default:shipping"    json:"kind"`
	Recipient string `gorm:"not null"                     json:"recipient"`
	Line1     string `gorm:"not null"                     json:"line1"`
	Line2     string `json:"line2"`
	City      string `gorm:"not null"                     json:"city"`
	Zip       string `json:"zip"`
	Phone     string `json:"phone"`
}

// BillingCopy clones the address fields into a new billing row so later
// edits to the shipping address never change a past order.
func (a Address) BillingCopy() Address {
	return Address{
		UserID:    a.UserID,
		Kind:      AddressKindBilling,
		Recipient: a.Recipient,
		Line1:     a.Line1,
		Line2:     a.Line2,
		City:      a.City,
		Zip:       a.Zip,
		Phone:     a.Phone,
	}
}

type Order struct {
	ID                uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	UserID            uint            `gorm:"index;not null"              json:"user_id"`
	Status            OrderStatus     `gorm:"not null"                    json:"status"`
	Subtotal          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	ShippingCost      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"shipping_cost"`
	Discount          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"discount"`
	Total             decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	ShippingAddressID uint            `gorm:"not null"                    json:"shipping_address_id"`
	BillingAddressID  uint            `gorm:"not null"                    json:"billing_address_id"`
	Notes             string          `json:"notes"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// OrderItem snapshots the catalog state at purchase time, so later edits
// to products and sizes never change a past order.
type OrderItem struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	OrderID     uint            `gorm:"index;not null"              json:"order_id"`
	ProductID   uint            `gorm:"not null"                    json:"product_id"`
	ProductName string          `gorm:"not null"                    json:"product_name"`
	SizeLabel   string          `gorm:"not null"                    json:"size_label"`
	Barcode     string          `gorm:"not null"                    json:"barcode"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Quantity    uint            `gorm:"not null;check:quantity>0"   json:"quantity"`
}

type Payment struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	OrderID   uint            `gorm:"index;not null"              json:"order_id"`
	IntentID  string          `gorm:"unique;not null"             json:"intent_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Currency  string          `gorm:"not null"                    json:"currency"`
	Status    PaymentStatus   `gorm:"not null"                    json:"status"`
	CardBrand string          `json:"card_brand"`
	CardLast4 string          `json:"card_last4"`
	CreatedAt time.Time       `json:"created_at"`
}
