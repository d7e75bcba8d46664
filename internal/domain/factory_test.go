package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	testCases := map[string]struct {
		name          string
		expected      CategoryName
		expectedError string
	}{
		"should create tech category": {
			name:     "tech",
			expected: CategoryTech,
		},

		"should normalise case and spaces": {
			name:     "  ClOtHeS ",
			expected: CategoryClothes,
		},

		"should create all category": {
			name:     "ALL",
			expected: CategoryAll,
		},

		"should return unknown variant error for furniture": {
			name:          "furniture",
			expectedError: `unknown category "furniture"`,
		},

		"should return unknown variant error for empty name": {
			name:          "",
			expectedError: `unknown category ""`,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			category, err := NewCategory(tc.name)

			if tc.expectedError != "" {
				var variantErr *UnknownVariantError
				require.ErrorAs(t, err, &variantErr)
				assert.Equal(t, "category", variantErr.Family)
				assert.Equal(t, tc.name, variantErr.Value)
				assert.EqualError(t, err, tc.expectedError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, category.Name())
			assert.Equal(t, string(tc.expected), category.String())
		})
	}
}

func TestNewCurrency(t *testing.T) {
	testCases := map[string]struct {
		label          string
		expectedLabel  string
		expectedSymbol string
		expectedError  string
	}{
		"should create usd": {
			label:          "USD",
			expectedLabel:  "USD",
			expectedSymbol: "$",
		},

		"should match label case-insensitively": {
			label:          " usd",
			expectedLabel:  "USD",
			expectedSymbol: "$",
		},

		"should return unknown variant error for eur": {
			label:         "EUR",
			expectedError: `unknown currency "EUR"`,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			currency, err := NewCurrency(tc.label)

			if tc.expectedError != "" {
				assert.EqualError(t, err, tc.expectedError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expectedLabel, currency.Label())
			assert.Equal(t, tc.expectedSymbol, currency.Symbol())
		})
	}
}

func TestNewAttributeSet(t *testing.T) {
	testCases := map[string]struct {
		setType       string
		expected      AttributeSet
		expectedError string
	}{
		"should create text set": {
			setType:  "text",
			expected: AttributeSet{ID: "Size", Name: "Size", Type: AttributeSetText},
		},

		"should create swatch set": {
			setType:  "Swatch",
			expected: AttributeSet{ID: "Size", Name: "Size", Type: AttributeSetSwatch},
		},

		"should return unknown variant error for dropdown": {
			setType:       "dropdown",
			expectedError: `unknown attribute set type "dropdown"`,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			set, err := NewAttributeSet(tc.setType, "Size", "Size")

			if tc.expectedError != "" {
				assert.EqualError(t, err, tc.expectedError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, set)
		})
	}
}

func TestNewProduct(t *testing.T) {
	fields := ProductFields{
		ID:          "ps-5",
		Name:        "PlayStation 5",
		InStock:     true,
		Gallery:     []string{"a.jpg", "", "b.jpg", "a.jpg"},
		Description: "A console",
		Brand:       "Sony",
	}

	testCases := map[string]struct {
		category         string
		expectedCategory CategoryName
		expectedError    string
	}{
		"should create tech product": {
			category:         "tech",
			expectedCategory: CategoryTech,
		},

		"should create clothes product": {
			category:         "Clothes",
			expectedCategory: CategoryClothes,
		},

		"should reject the all category": {
			category:      "all",
			expectedError: `unknown product category "all"`,
		},

		"should reject unknown category": {
			category:      "furniture",
			expectedError: `unknown product category "furniture"`,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			product, err := NewProduct(tc.category, fields)

			if tc.expectedError != "" {
				assert.EqualError(t, err, tc.expectedError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expectedCategory, product.Category.Name())
			assert.Equal(t, []string{"a.jpg", "b.jpg"}, product.Gallery)
			assert.Equal(t, "Sony", product.Brand)
		})
	}
}

func TestNewPrice(t *testing.T) {
	testCases := map[string]struct {
		amount        decimal.Decimal
		currency      string
		expectedError string
	}{
		"should create price": {
			amount:   decimal.RequireFromString("144.69"),
			currency: "USD",
		},

		"should allow zero amount": {
			amount:   decimal.Zero,
			currency: "usd",
		},

		"should reject negative amount": {
			amount:        decimal.RequireFromString("-1"),
			currency:      "USD",
			expectedError: "Price amount cannot be negative.",
		},

		"should reject unknown currency": {
			amount:        decimal.RequireFromString("1"),
			currency:      "EUR",
			expectedError: `unknown currency "EUR"`,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			price, err := NewPrice(tc.amount, tc.currency)

			if tc.expectedError != "" {
				assert.EqualError(t, err, tc.expectedError)
				return
			}

			require.NoError(t, err)
			assert.True(t, tc.amount.Equal(price.Amount))
			assert.Equal(t, CurrencyUSD, price.Currency.Label())
		})
	}
}
