package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_Error(t *testing.T) {
	testCases := map[string]struct {
		err      error
		expected string
	}{
		"should format not found error with all fields": {
			err:      &NotFoundError{Resource: "product", Key: "category", Value: "tech"},
			expected: "product with category tech not found",
		},

		"should format not found error without key": {
			err:      &NotFoundError{Resource: "products"},
			expected: "no products found",
		},

		"should use reason as invalid input message": {
			err:      &InvalidInputError{Field: "quantity", Reason: "Quantity must be greater than zero."},
			expected: "Quantity must be greater than zero.",
		},

		"should quote unknown variant value": {
			err:      &UnknownVariantError{Family: "category", Value: "furniture"},
			expected: `unknown category "furniture"`,
		},

		"should name product and currency in pricing error": {
			err:      &PricingError{ProductID: "P1", Currency: "USD"},
			expected: "no price for product P1 in currency USD",
		},

		"should include operation and cause in storage error": {
			err:      &StorageError{Op: "fetch_prices", Err: errors.New("connection refused")},
			expected: "storage fetch_prices: connection refused",
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.err.Error())
		})
	}
}

func TestStorageError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("error fetching prices: %w", &StorageError{Op: "fetch_prices", Err: cause})

	var storageErr *StorageError
	assert.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "fetch_prices", storageErr.Op)
	assert.ErrorIs(t, err, cause)
}
