package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ProductFilter narrows a product listing. Empty fields are not applied.
type ProductFilter struct {
	Category  string
	Brand     string
	ProductID string
}

// ProductRepository returns one row per product and gallery image.
type ProductRepository interface {
	FetchProducts(ctx context.Context, filter ProductFilter) ([]ProductRow, error)
}

// AttributeRepository returns one row per attribute linked to a product.
type AttributeRepository interface {
	FetchAttributes(ctx context.Context, productID string) ([]AttributeRow, error)
}

// PriceRepository returns one row per product price.
type PriceRepository interface {
	FetchPrices(ctx context.Context, productID string) ([]PriceRow, error)
}

// CategoryRepository returns one row per category.
type CategoryRepository interface {
	FetchCategories(ctx context.Context) ([]CategoryRow, error)
}

// OrderRepository reads orders and opens transactions for writing them.
type OrderRepository interface {
	BeginTx(ctx context.Context) (OrderTx, error)
	FetchOrders(ctx context.Context, orderNumbers []string) ([]OrderRow, error)
}

// OrderTx writes one order atomically. Nothing is visible to readers until Commit.
type OrderTx interface {
	// InsertOrder writes the order header and returns its generated id.
	InsertOrder(ctx context.Context, header OrderHeader) (int64, error)
	// InsertOrderLines writes every line of the order and the attributes selected for it.
	InsertOrderLines(ctx context.Context, orderID int64, lines []OrderLine) error
	Commit() error
	Rollback() error
}

// OrderHeader is the order row written by InsertOrder.
type OrderHeader struct {
	OrderNumber   string
	TotalAmount   decimal.Decimal
	CurrencyLabel string
	PlacedAt      time.Time
}

// OrderLine is an order_products row with its order_product_attributes rows.
type OrderLine struct {
	ProductID          string
	Quantity           int
	SelectedAttributes []SelectedAttribute
}

// SelectedAttribute is an order_product_attributes row.
type SelectedAttribute struct {
	AttributeSetID string
	AttributeID    string
}
