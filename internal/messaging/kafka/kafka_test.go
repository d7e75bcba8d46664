package kafka

import (
	"context"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	testCases := map[string]struct {
		topic         string
		key           string
		payload       []byte
		expected      kafkaGo.Message
		expectedError string
	}{
		"should build message with topic and key": {
			topic:   "orders.placed",
			key:     "20250102abcdef0123456",
			payload: []byte(`{"order_number":"20250102abcdef0123456"}`),
			expected: kafkaGo.Message{
				Topic: "orders.placed",
				Key:   []byte("20250102abcdef0123456"),
				Value: []byte(`{"order_number":"20250102abcdef0123456"}`),
			},
		},

		"should return error when topic is empty": {
			key:           "key",
			payload:       []byte(`{}`),
			expectedError: "topic cannot be empty",
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			msg, err := newMessage(tc.topic, tc.key, tc.payload)

			if tc.expectedError != "" {
				assert.EqualError(t, err, tc.expectedError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, msg)
		})
	}
}

func TestPublisher_PublishEvent(t *testing.T) {
	p := NewPublisher([]string{"localhost:9092"})
	defer func() {
		_ = p.Close()
	}()

	err := p.PublishEvent(context.Background(), "orders.placed", "key", map[string]any{"bad": make(chan int)})
	assert.ErrorContains(t, err, "failed to marshal event")

	err = p.PublishEvent(context.Background(), "", "key", map[string]any{})
	assert.EqualError(t, err, "topic cannot be empty")
}

func TestNewPublisher_WriterConfig(t *testing.T) {
	p := NewPublisher([]string{"broker-1:9092", "broker-2:9092"})
	defer func() {
		_ = p.Close()
	}()

	assert.Equal(t, "broker-1:9092,broker-2:9092", p.writer.Addr.String())
	assert.Equal(t, DefaultBatchTimeout, p.writer.BatchTimeout)
	assert.Equal(t, 1, p.writer.BatchSize)
	assert.False(t, p.writer.Async)
	assert.Equal(t, kafkaGo.RequireAll, p.writer.RequiredAcks)
	assert.Equal(t, DefaultWriteTimeout, p.writer.WriteTimeout)
}
