package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CameronXie/storefront/internal/domain"
)

func validProduct() Product {
	return Product{
		ID:          "ps-5",
		Name:        "PlayStation 5",
		InStock:     true,
		Description: "Console",
		Category:    "tech",
		Brand:       "Sony",
		Attributes: []AttributeSet{
			{ID: "Color", Name: "Color", Type: "swatch", Items: []Attribute{{ID: "Green", Value: "#44FF03", DisplayValue: "Green"}}},
		},
		Prices: []Price{{Amount: 844.02, Currency: Currency{Label: "USD", Symbol: "$"}}},
	}
}

func TestDecode(t *testing.T) {
	testCases := map[string]struct {
		content       string
		format        Format
		expectedCount int
		expectedError string
	}{
		"should decode json without envelope": {
			content:       `{"categories":[{"name":"all"}],"products":[{"id":"a"},{"id":"b"}]}`,
			format:        FormatJSON,
			expectedCount: 2,
		},
		"should decode json with envelope": {
			content:       `{"data":{"categories":[],"products":[{"id":"a"}]}}`,
			format:        FormatJSON,
			expectedCount: 1,
		},
		"should decode yaml with envelope": {
			content:       "data:\n  products:\n    - id: a\n",
			format:        FormatYAML,
			expectedCount: 1,
		},
		"should return error for unsupported format": {
			content:       "{}",
			format:        Format("toml"),
			expectedError: `unsupported catalog format "toml"`,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			c, err := Decode([]byte(tc.content), tc.format)

			if tc.expectedError != "" {
				assert.EqualError(t, err, tc.expectedError)
				return
			}

			require.NoError(t, err)
			assert.Len(t, c.Products, tc.expectedCount)
		})
	}
}

func TestCatalog_Validate(t *testing.T) {
	testCases := map[string]struct {
		mutate        func(c *Catalog)
		expectedError error
	}{
		"should accept valid catalog": {
			mutate: func(*Catalog) {},
		},
		"should reject unknown category name": {
			mutate:        func(c *Catalog) { c.Categories = append(c.Categories, Category{Name: "toys"}) },
			expectedError: &domain.UnknownVariantError{},
		},
		"should reject product in all category": {
			mutate:        func(c *Catalog) { c.Products[0].Category = "all" },
			expectedError: &domain.UnknownVariantError{},
		},
		"should reject unsupported currency": {
			mutate:        func(c *Catalog) { c.Products[0].Prices[0].Currency.Label = "EUR" },
			expectedError: &domain.UnknownVariantError{},
		},
		"should reject negative price": {
			mutate:        func(c *Catalog) { c.Products[0].Prices[0].Amount = -1 },
			expectedError: &domain.InvalidInputError{},
		},
		"should reject unknown attribute set type": {
			mutate:        func(c *Catalog) { c.Products[0].Attributes[0].Type = "slider" },
			expectedError: &domain.UnknownVariantError{},
		},
		"should reject empty product id": {
			mutate:        func(c *Catalog) { c.Products[0].ID = " " },
			expectedError: &domain.InvalidInputError{},
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			c := &Catalog{Categories: []Category{{Name: "all"}, {Name: "tech"}}, Products: []Product{validProduct()}}
			tc.mutate(c)

			err := c.Validate()
			if tc.expectedError == nil {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			switch tc.expectedError.(type) {
			case *domain.UnknownVariantError:
				var target *domain.UnknownVariantError
				assert.ErrorAs(t, err, &target)
			case *domain.InvalidInputError:
				var target *domain.InvalidInputError
				assert.ErrorAs(t, err, &target)
			}
		})
	}
}

func TestCatalog_Validate_DuplicateProduct(t *testing.T) {
	c := &Catalog{Products: []Product{validProduct(), validProduct()}}

	assert.ErrorContains(t, c.Validate(), `product "ps-5": duplicate id`)
}

func TestCatalog_BrandsAndCurrencies(t *testing.T) {
	second := validProduct()
	second.ID = "xbox"
	second.Brand = "Microsoft"
	second.Prices[0].Currency.Label = "usd"

	c := &Catalog{Products: []Product{validProduct(), second, validProduct()}}

	assert.Equal(t, []string{"Sony", "Microsoft"}, c.Brands())
	assert.Equal(t, []Currency{{Label: "USD", Symbol: "$"}}, c.Currencies())
}

func TestPrice_DecimalAmount(t *testing.T) {
	assert.Equal(t, "844.02", Price{Amount: 844.02}.DecimalAmount().StringFixed(2))
}
