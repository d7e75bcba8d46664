package messaging

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TopicOrderPlaced = "orders.placed"
)

// Publisher defines an interface for publishing events to a message broker.
type Publisher interface {
	PublishEvent(ctx context.Context, topic string, key string, event any) error
}

// OrderPlaced is published once an order has been committed.
type OrderPlaced struct {
	OrderNumber string            `json:"order_number"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	Currency    string            `json:"currency"`
	PlacedAt    time.Time         `json:"placed_at"`
	Lines       []OrderPlacedLine `json:"lines"`
}

// OrderPlacedLine is one line of an OrderPlaced event.
type OrderPlacedLine struct {
	ProductID          string            `json:"product_id"`
	Quantity           int               `json:"quantity"`
	SelectedAttributes map[string]string `json:"selected_attributes,omitempty"`
}

type noopPublisher struct{}

// NewNoopPublisher returns a Publisher that discards every event.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) PublishEvent(context.Context, string, string, any) error {
	return nil
}
