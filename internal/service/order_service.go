package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/CameronXie/storefront/internal/domain"
	"github.com/CameronXie/storefront/internal/messaging"
	"github.com/CameronXie/storefront/internal/repository"
	"github.com/CameronXie/storefront/pkg/orderedmap"
)

const (
	DefaultPricingConcurrency = 4
	totalDecimalPlaces        = 2
)

// PriceLookup returns the prices of a product.
type PriceLookup interface {
	GetPrices(ctx context.Context, productID string) ([]domain.Price, error)
}

// PlaceOrderResult is returned for a committed order.
type PlaceOrderResult struct {
	OrderNumber string
}

// OrderService places orders and reconstructs them from storage.
type OrderService struct {
	orders             repository.OrderRepository
	prices             PriceLookup
	publisher          messaging.Publisher
	topic              string
	logger             *slog.Logger
	now                func() time.Time
	newOrderNumber     func(time.Time) string
	pricingConcurrency int
}

// OrderServiceOption defines configuration options for OrderService
type OrderServiceOption func(*OrderService)

// NewOrderService creates a new OrderService with the provided dependencies and options
func NewOrderService(
	orders repository.OrderRepository,
	prices PriceLookup,
	logger *slog.Logger,
	options ...OrderServiceOption,
) *OrderService {
	s := &OrderService{
		orders:             orders,
		prices:             prices,
		publisher:          messaging.NewNoopPublisher(),
		topic:              messaging.TopicOrderPlaced,
		logger:             logger,
		now:                func() time.Time { return time.Now().UTC() },
		newOrderNumber:     NewOrderNumber,
		pricingConcurrency: DefaultPricingConcurrency,
	}

	for _, option := range options {
		option(s)
	}

	return s
}

// WithPublisher publishes an OrderPlaced event to topic after every committed order.
func WithPublisher(publisher messaging.Publisher, topic string) OrderServiceOption {
	return func(s *OrderService) {
		s.publisher = publisher
		s.topic = topic
	}
}

// WithClock overrides the clock used for order numbers and placement time.
func WithClock(now func() time.Time) OrderServiceOption {
	return func(s *OrderService) {
		s.now = now
	}
}

// WithOrderNumberGenerator overrides how order numbers are generated.
func WithOrderNumberGenerator(generate func(time.Time) string) OrderServiceOption {
	return func(s *OrderService) {
		s.newOrderNumber = generate
	}
}

// WithPricingConcurrency limits how many products are priced in parallel.
func WithPricingConcurrency(n int) OrderServiceOption {
	return func(s *OrderService) {
		if n > 0 {
			s.pricingConcurrency = n
		}
	}
}

// PlaceOrder validates and prices the cart, then writes the order in a single transaction.
func (s *OrderService) PlaceOrder(ctx context.Context, items []CartItem, currencyLabel string) (*PlaceOrderResult, error) {
	if err := ValidateCart(items, currencyLabel); err != nil {
		return nil, fmt.Errorf("error placing order: %w", err)
	}

	total, currency, err := s.calculateTotal(ctx, items, strings.TrimSpace(currencyLabel))
	if err != nil {
		return nil, fmt.Errorf("error placing order: %w", err)
	}

	placedAt := s.now()
	header := repository.OrderHeader{
		OrderNumber:   s.newOrderNumber(placedAt),
		TotalAmount:   total,
		CurrencyLabel: currency.Label(),
		PlacedAt:      placedAt,
	}
	lines := toOrderLines(items)

	if err := s.persist(ctx, header, lines); err != nil {
		s.logger.ErrorContext(ctx, "order_persist_failed", "order_number", header.OrderNumber, "error", err)
		return nil, fmt.Errorf("error placing order: %w", err)
	}

	s.logger.InfoContext(
		ctx,
		"order_placed",
		"order_number", header.OrderNumber,
		"total_amount", header.TotalAmount.StringFixed(totalDecimalPlaces),
		"currency", header.CurrencyLabel,
		"lines", len(lines),
	)
	s.publishOrderPlaced(ctx, header, lines)

	return &PlaceOrderResult{OrderNumber: header.OrderNumber}, nil
}

// GetOrders returns the orders with the given numbers in storage order.
// Every number is validated before storage is queried.
func (s *OrderService) GetOrders(ctx context.Context, orderNumbers []string) ([]domain.Order, error) {
	for _, number := range orderNumbers {
		if !IsValidOrderNumber(number) {
			return nil, fmt.Errorf("error retrieving orders: %w", &domain.InvalidInputError{
				Field:  "orderNumbers",
				Reason: fmt.Sprintf("Invalid order number format: %s", number),
			})
		}
	}

	if len(orderNumbers) == 0 {
		return []domain.Order{}, nil
	}

	rows, err := s.orders.FetchOrders(ctx, orderNumbers)
	if err != nil {
		s.logger.ErrorContext(ctx, "fetch_orders_failed", "order_numbers", orderNumbers, "error", err)
		return nil, fmt.Errorf("error retrieving orders: %w", asStorageError("fetch_orders", err))
	}

	orders, err := foldOrders(rows)
	if err != nil {
		return nil, fmt.Errorf("error retrieving orders: %w", err)
	}

	s.logger.DebugContext(ctx, "orders_folded", "rows", len(rows), "orders", len(orders))
	return orders, nil
}

// calculateTotal prices every distinct product concurrently, then sums the lines in cart order.
func (s *OrderService) calculateTotal(
	ctx context.Context,
	items []CartItem,
	currencyLabel string,
) (decimal.Decimal, domain.Currency, error) {
	productIDs := orderedmap.New[string, struct{}]()
	for _, item := range items {
		productIDs.SetIfAbsent(strings.TrimSpace(item.ProductID), struct{}{})
	}

	pricesByProduct := make(map[string][]domain.Price, productIDs.Len())
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.pricingConcurrency)

	for _, productID := range productIDs.Keys() {
		productID := productID
		g.Go(func() error {
			prices, err := s.prices.GetPrices(gctx, productID)
			if err != nil {
				return fmt.Errorf("failed to get prices for product %s: %w", productID, err)
			}

			mu.Lock()
			pricesByProduct[productID] = prices
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return decimal.Zero, domain.Currency{}, err
	}

	total := decimal.Zero
	var currency domain.Currency
	for _, item := range items {
		productID := strings.TrimSpace(item.ProductID)
		price, ok := findPrice(pricesByProduct[productID], currencyLabel)
		if !ok {
			return decimal.Zero, domain.Currency{}, &domain.PricingError{ProductID: productID, Currency: currencyLabel}
		}

		currency = price.Currency
		total = total.Add(price.Amount.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return total.Round(totalDecimalPlaces), currency, nil
}

func findPrice(prices []domain.Price, currencyLabel string) (domain.Price, bool) {
	for _, price := range prices {
		if strings.EqualFold(price.Currency.Label(), currencyLabel) {
			return price, true
		}
	}

	return domain.Price{}, false
}

// persist writes header and lines in one transaction, rolling back on any failure.
func (s *OrderService) persist(ctx context.Context, header repository.OrderHeader, lines []repository.OrderLine) (err error) {
	tx, err := s.orders.BeginTx(ctx)
	if err != nil {
		return asStorageError("begin_transaction", err)
	}

	defer func() {
		if err == nil {
			return
		}

		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.WarnContext(ctx, "order_rollback_failed", "order_number", header.OrderNumber, "error", rbErr)
		}
	}()

	orderID, err := tx.InsertOrder(ctx, header)
	if err != nil {
		return asStorageError("insert_order", err)
	}

	if err = tx.InsertOrderLines(ctx, orderID, lines); err != nil {
		return asStorageError("insert_order_lines", err)
	}

	if err = tx.Commit(); err != nil {
		return asStorageError("commit", err)
	}

	return nil
}

func (s *OrderService) publishOrderPlaced(ctx context.Context, header repository.OrderHeader, lines []repository.OrderLine) {
	event := messaging.OrderPlaced{
		OrderNumber: header.OrderNumber,
		TotalAmount: header.TotalAmount,
		Currency:    header.CurrencyLabel,
		PlacedAt:    header.PlacedAt,
		Lines:       make([]messaging.OrderPlacedLine, 0, len(lines)),
	}

	for _, line := range lines {
		eventLine := messaging.OrderPlacedLine{ProductID: line.ProductID, Quantity: line.Quantity}
		if len(line.SelectedAttributes) > 0 {
			eventLine.SelectedAttributes = make(map[string]string, len(line.SelectedAttributes))
			for _, attr := range line.SelectedAttributes {
				eventLine.SelectedAttributes[attr.AttributeSetID] = attr.AttributeID
			}
		}
		event.Lines = append(event.Lines, eventLine)
	}

	if err := s.publisher.PublishEvent(ctx, s.topic, header.OrderNumber, event); err != nil {
		s.logger.WarnContext(ctx, "order_event_publish_failed", "order_number", header.OrderNumber, "error", err)
	}
}

func toOrderLines(items []CartItem) []repository.OrderLine {
	lines := make([]repository.OrderLine, 0, len(items))
	for _, item := range items {
		line := repository.OrderLine{
			ProductID:          strings.TrimSpace(item.ProductID),
			Quantity:           item.Quantity,
			SelectedAttributes: make([]repository.SelectedAttribute, 0, len(item.SelectedAttributes)),
		}
		for _, attr := range item.SelectedAttributes {
			line.SelectedAttributes = append(line.SelectedAttributes, repository.SelectedAttribute{
				AttributeSetID: attr.AttributeSetID,
				AttributeID:    attr.AttributeID,
			})
		}
		lines = append(lines, line)
	}

	return lines
}

// foldOrders groups rows by order number, then by product id within an order.
func foldOrders(rows []repository.OrderRow) ([]domain.Order, error) {
	builders := orderedmap.New[string, *domain.OrderBuilder]()

	for i := range rows {
		row := &rows[i]

		order, ok := builders.Get(row.OrderNumber)
		if !ok {
			currency, err := domain.NewCurrency(row.CurrencyLabel.String)
			if err != nil {
				return nil, fmt.Errorf("failed to build order %s: %w", row.OrderNumber, err)
			}

			order = domain.NewOrderBuilder(row.OrderNumber, row.TotalAmount, currency, row.PlacedAt)
			builders.Set(row.OrderNumber, order)
		}

		if !row.ProductID.Valid {
			continue
		}

		line, ok := order.Line(row.ProductID.String)
		if !ok {
			product, err := domain.NewProductBuilder(row.CategoryName.String, domain.ProductFields{
				ID:          row.ProductID.String,
				Name:        row.ProductName.String,
				InStock:     row.InStock.Bool,
				Description: row.Description.String,
				Brand:       row.BrandName.String,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to build product %s of order %s: %w", row.ProductID.String, row.OrderNumber, err)
			}

			line = domain.NewOrderProductBuilder(product, int(row.Quantity.Int64))
			order.AddLine(line)
		}

		if row.GalleryURL.Valid {
			line.Product().AddGalleryImage(row.GalleryURL.String)
		}

		if row.AttributeSetID.Valid && row.AttributeID.Valid {
			line.AddSelectedAttribute(domain.SelectedAttribute{
				AttributeSetID: row.AttributeSetID.String,
				AttributeID:    row.AttributeID.String,
			})
		}
	}

	orders := make([]domain.Order, 0, builders.Len())
	for _, b := range builders.Values() {
		orders = append(orders, b.Build())
	}

	return orders, nil
}
