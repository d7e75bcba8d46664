package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/CameronXie/storefront/internal/repository"
)

const (
	insertOrderQuery = `INSERT INTO orders (order_number, total_amount, currency_id, placed_at)
VALUES (?, ?, (SELECT id FROM currency WHERE label = ?), ?)`

	insertOrderProductQuery = `INSERT INTO order_products (order_id, product_id, quantity) VALUES (?, ?, ?)`

	insertOrderProductAttributeQuery = `INSERT INTO order_product_attributes (order_product_id, attribute_set_id, attribute_id)
VALUES (?, ?, ?)`

	ordersQuery = `SELECT o.id, o.order_number, o.total_amount, o.placed_at, c.label,
    op.product_id, p.name, p.in_stock, p.description, cat.name, b.name, g.url,
    op.quantity, opa.attribute_id, opa.attribute_set_id
FROM orders o
LEFT JOIN currency c ON c.id = o.currency_id
LEFT JOIN order_products op ON op.order_id = o.id
LEFT JOIN product p ON p.id = op.product_id
LEFT JOIN category cat ON cat.id = p.category_id
LEFT JOIN brand b ON b.id = p.brand_id
LEFT JOIN gallery g ON g.product_id = p.id
LEFT JOIN order_product_attributes opa ON opa.order_product_id = op.id
WHERE o.order_number IN (%s)
ORDER BY o.id, op.id, g.id, opa.attribute_set_id`
)

// OrderRepository writes orders in transactions and reads them back joined with their lines.
type OrderRepository struct {
	store *Store
}

// NewOrderRepository creates a new OrderRepository instance
func NewOrderRepository(store *Store) *OrderRepository {
	return &OrderRepository{store: store}
}

// BeginTx starts a transaction for writing one order.
func (r *OrderRepository) BeginTx(ctx context.Context) (repository.OrderTx, error) {
	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}

	return &orderTx{tx: tx, dialect: r.store.dialect}, nil
}

// FetchOrders returns one row per order, line, gallery image and selected attribute
// for the given order numbers. Orders without lines yield a single row with null line columns.
func (r *OrderRepository) FetchOrders(ctx context.Context, orderNumbers []string) ([]repository.OrderRow, error) {
	if len(orderNumbers) == 0 {
		return []repository.OrderRow{}, nil
	}

	args := make([]any, 0, len(orderNumbers))
	for _, n := range orderNumbers {
		args = append(args, n)
	}

	query := r.store.dialect.Rebind(fmt.Sprintf(ordersQuery, placeholders(len(orderNumbers))))

	rows, err := queryRows(ctx, r.store.db, query, args, scanOrderRow)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}

	return rows, nil
}

func scanOrderRow(rows *sql.Rows) (repository.OrderRow, error) {
	var row repository.OrderRow
	err := rows.Scan(
		&row.OrderID,
		&row.OrderNumber,
		&row.TotalAmount,
		&row.PlacedAt,
		&row.CurrencyLabel,
		&row.ProductID,
		&row.ProductName,
		&row.InStock,
		&row.Description,
		&row.CategoryName,
		&row.BrandName,
		&row.GalleryURL,
		&row.Quantity,
		&row.AttributeID,
		&row.AttributeSetID,
	)

	return row, err
}

type orderTx struct {
	tx      *sql.Tx
	dialect Dialect
}

func (t *orderTx) InsertOrder(ctx context.Context, header repository.OrderHeader) (int64, error) {
	id, err := insertReturningID(
		ctx,
		t.tx,
		t.dialect,
		insertOrderQuery,
		header.OrderNumber,
		header.TotalAmount,
		header.CurrencyLabel,
		header.PlacedAt.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert order %s: %w", header.OrderNumber, err)
	}

	return id, nil
}

func (t *orderTx) InsertOrderLines(ctx context.Context, orderID int64, lines []repository.OrderLine) error {
	attributeQuery := t.dialect.Rebind(insertOrderProductAttributeQuery)

	for _, line := range lines {
		lineID, err := insertReturningID(ctx, t.tx, t.dialect, insertOrderProductQuery, orderID, line.ProductID, line.Quantity)
		if err != nil {
			return fmt.Errorf("insert order line for product %s: %w", line.ProductID, err)
		}

		for _, attr := range line.SelectedAttributes {
			if _, err := t.tx.ExecContext(ctx, attributeQuery, lineID, attr.AttributeSetID, attr.AttributeID); err != nil {
				return fmt.Errorf("insert selected attribute %s for product %s: %w", attr.AttributeSetID, line.ProductID, err)
			}
		}
	}

	return nil
}

func (t *orderTx) Commit() error {
	return t.tx.Commit()
}

func (t *orderTx) Rollback() error {
	return t.tx.Rollback()
}
