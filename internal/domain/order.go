package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/CameronXie/storefront/pkg/orderedmap"
)

// SelectedAttribute identifies the attribute chosen from one attribute set for an order line.
type SelectedAttribute struct {
	AttributeSetID string
	AttributeID    string
}

// OrderProduct is one line of an order.
type OrderProduct struct {
	Product            Product
	Quantity           int
	SelectedAttributes []SelectedAttribute
}

// Order is a placed order with its lines.
type Order struct {
	OrderNumber string
	TotalAmount decimal.Decimal
	Currency    Currency
	PlacedAt    time.Time
	Products    []OrderProduct
}

// OrderProductBuilder accumulates gallery images and selected attributes for one order line.
type OrderProductBuilder struct {
	product  *ProductBuilder
	quantity int
	selected *orderedmap.Map[string, SelectedAttribute]
}

// NewOrderProductBuilder creates a line builder for product with the given quantity.
func NewOrderProductBuilder(product *ProductBuilder, quantity int) *OrderProductBuilder {
	return &OrderProductBuilder{
		product:  product,
		quantity: quantity,
		selected: orderedmap.New[string, SelectedAttribute](),
	}
}

// Product returns the builder of the line's product.
func (b *OrderProductBuilder) Product() *ProductBuilder {
	return b.product
}

// AddSelectedAttribute attaches attr unless an attribute from the same set is already selected.
func (b *OrderProductBuilder) AddSelectedAttribute(attr SelectedAttribute) {
	if attr.AttributeSetID == "" || attr.AttributeID == "" {
		return
	}

	b.selected.SetIfAbsent(attr.AttributeSetID, attr)
}

// Build returns the order line.
func (b *OrderProductBuilder) Build() OrderProduct {
	return OrderProduct{
		Product:            b.product.Build(),
		Quantity:           b.quantity,
		SelectedAttributes: b.selected.Values(),
	}
}

// OrderBuilder accumulates the lines of an order keyed by product id.
type OrderBuilder struct {
	order Order
	lines *orderedmap.Map[string, *OrderProductBuilder]
}

// NewOrderBuilder creates a builder for an order header.
func NewOrderBuilder(orderNumber string, total decimal.Decimal, currency Currency, placedAt time.Time) *OrderBuilder {
	return &OrderBuilder{
		order: Order{
			OrderNumber: orderNumber,
			TotalAmount: total,
			Currency:    currency,
			PlacedAt:    placedAt,
		},
		lines: orderedmap.New[string, *OrderProductBuilder](),
	}
}

// Line returns the line builder registered for productID.
func (b *OrderBuilder) Line(productID string) (*OrderProductBuilder, bool) {
	return b.lines.Get(productID)
}

// AddLine registers line under its product id unless one is already registered.
func (b *OrderBuilder) AddLine(line *OrderProductBuilder) {
	b.lines.SetIfAbsent(line.product.ID(), line)
}

// Build returns the order with its lines in insertion order.
func (b *OrderBuilder) Build() Order {
	order := b.order
	lines := b.lines.Values()
	order.Products = make([]OrderProduct, 0, len(lines))
	for _, line := range lines {
		order.Products = append(order.Products, line.Build())
	}

	return order
}
