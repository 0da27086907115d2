package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID           int             `json:"id"`
	CategoryID   int             `json:"category_id"`
	CategoryName string          `json:"category_name"` // For display convenience
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Description  string          `json:"description"`
	ImageURL     string          `json:"image_url"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Order is either an open cart (IsOrdered false) or a placed order.
type Order struct {
	ID          int             `json:"id"`
	UserID      int             `json:"user_id"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	OrderedDate time.Time       `json:"ordered_date"`
	IsOrdered   bool            `json:"is_ordered"`
}

type OrderItem struct {
	ID        int `json:"id"`
	OrderID   int `json:"order_id"`
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`

	ProductName     string          `json:"product_name"` // For display convenience
	ProductPrice    decimal.Decimal `json:"product_price"`
	ProductImageURL string          `json:"product_image_url"`
}

// LineTotal is the display price of one cart row. Order.TotalPrice is not kept
// in sync with items, so cart views always total from the lines.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.ProductPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"` // Store hashed password
	IsAdmin  bool   `json:"is_admin"`
}
