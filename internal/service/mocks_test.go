package service

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/CameronXie/storefront/internal/domain"
	"github.com/CameronXie/storefront/internal/repository"
)

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) FetchProducts(ctx context.Context, filter repository.ProductFilter) ([]repository.ProductRow, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.ProductRow), args.Error(1)
}

type mockAttributeRepository struct {
	mock.Mock
}

func (m *mockAttributeRepository) FetchAttributes(ctx context.Context, productID string) ([]repository.AttributeRow, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.AttributeRow), args.Error(1)
}

type mockPriceRepository struct {
	mock.Mock
}

func (m *mockPriceRepository) FetchPrices(ctx context.Context, productID string) ([]repository.PriceRow, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.PriceRow), args.Error(1)
}

type mockCategoryRepository struct {
	mock.Mock
}

func (m *mockCategoryRepository) FetchCategories(ctx context.Context) ([]repository.CategoryRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.CategoryRow), args.Error(1)
}

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) BeginTx(ctx context.Context) (repository.OrderTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.OrderTx), args.Error(1)
}

func (m *mockOrderRepository) FetchOrders(ctx context.Context, orderNumbers []string) ([]repository.OrderRow, error) {
	args := m.Called(ctx, orderNumbers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.OrderRow), args.Error(1)
}

type mockOrderTx struct {
	mock.Mock
}

func (m *mockOrderTx) InsertOrder(ctx context.Context, header repository.OrderHeader) (int64, error) {
	args := m.Called(ctx, header)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockOrderTx) InsertOrderLines(ctx context.Context, orderID int64, lines []repository.OrderLine) error {
	args := m.Called(ctx, orderID, lines)
	return args.Error(0)
}

func (m *mockOrderTx) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *mockOrderTx) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

type mockPriceLookup struct {
	mock.Mock
}

func (m *mockPriceLookup) GetPrices(ctx context.Context, productID string) ([]domain.Price, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Price), args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishEvent(ctx context.Context, topic string, key string, event any) error {
	args := m.Called(ctx, topic, key, event)
	return args.Error(0)
}

// testLogger captures log messages and levels for testing
type testLogger struct {
	messages []string
	levels   []slog.Level
	buffer   *bytes.Buffer
}

func newTestLogger() *testLogger {
	return &testLogger{
		messages: make([]string, 0),
		levels:   make([]slog.Level, 0),
		buffer:   &bytes.Buffer{},
	}
}

func (tl *testLogger) getLogger() *slog.Logger {
	handler := slog.NewTextHandler(tl.buffer, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})

	return slog.New(&captureHandler{
		testLogger: tl,
		handler:    handler,
	})
}

// captureHandler wraps the original handler to capture log data
type captureHandler struct {
	testLogger *testLogger
	handler    slog.Handler
}

func (ch *captureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return ch.handler.Enabled(ctx, level)
}

func (ch *captureHandler) Handle(ctx context.Context, record slog.Record) error { //nolint:gocritic // slog.Handler interface
	ch.testLogger.messages = append(ch.testLogger.messages, record.Message)
	ch.testLogger.levels = append(ch.testLogger.levels, record.Level)
	return ch.handler.Handle(ctx, record)
}

func (ch *captureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &captureHandler{
		testLogger: ch.testLogger,
		handler:    ch.handler.WithAttrs(attrs),
	}
}

func (ch *captureHandler) WithGroup(name string) slog.Handler {
	return &captureHandler{
		testLogger: ch.testLogger,
		handler:    ch.handler.WithGroup(name),
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

// assertErrorKind asserts that err wraps an error of the same type as kind.
func assertErrorKind(t *testing.T, err error, kind error) {
	t.Helper()

	switch kind.(type) {
	case *domain.InvalidInputError:
		var target *domain.InvalidInputError
		assert.ErrorAs(t, err, &target)
	case *domain.UnknownVariantError:
		var target *domain.UnknownVariantError
		assert.ErrorAs(t, err, &target)
	case *domain.NotFoundError:
		var target *domain.NotFoundError
		assert.ErrorAs(t, err, &target)
	case *domain.PricingError:
		var target *domain.PricingError
		assert.ErrorAs(t, err, &target)
	case *domain.StorageError:
		var target *domain.StorageError
		assert.ErrorAs(t, err, &target)
	case nil:
	default:
		t.Fatalf("unsupported error kind %T", kind)
	}
}
