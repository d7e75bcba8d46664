package repository

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// ProductRow is a product joined with its category, brand and one gallery image.
type ProductRow struct {
	ID           string
	Name         string
	InStock      bool
	Description  string
	CategoryName sql.NullString
	BrandName    sql.NullString
	GalleryURL   sql.NullString
}

// AttributeRow is an attribute joined with its attribute set.
type AttributeRow struct {
	AttributeID      string
	Value            string
	DisplayValue     string
	AttributeSetID   string
	AttributeSetName string
	AttributeSetType string
}

// PriceRow is a price joined with its currency.
type PriceRow struct {
	Amount        decimal.Decimal
	CurrencyLabel string
}

// CategoryRow is a category row.
type CategoryRow struct {
	ID   int64
	Name string
}

// OrderRow is an order joined with one line, its product, one gallery image and one selected attribute.
// Columns from outer joins are nullable.
type OrderRow struct {
	OrderID        int64
	OrderNumber    string
	TotalAmount    decimal.Decimal
	PlacedAt       time.Time
	CurrencyLabel  sql.NullString
	ProductID      sql.NullString
	ProductName    sql.NullString
	InStock        sql.NullBool
	Description    sql.NullString
	CategoryName   sql.NullString
	BrandName      sql.NullString
	GalleryURL     sql.NullString
	Quantity       sql.NullInt64
	AttributeID    sql.NullString
	AttributeSetID sql.NullString
}
