// Package catalog describes the product catalog document used to seed the store.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/CameronXie/storefront/internal/domain"
)

// Format identifies the encoding of a catalog document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Source loads a catalog document.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
}

// Catalog is the full set of categories and products to seed.
type Catalog struct {
	Categories []Category `json:"categories" yaml:"categories"`
	Products   []Product  `json:"products" yaml:"products"`
}

type Category struct {
	Name string `json:"name" yaml:"name"`
}

type Product struct {
	ID          string         `json:"id" yaml:"id"`
	Name        string         `json:"name" yaml:"name"`
	InStock     bool           `json:"inStock" yaml:"inStock"`
	Gallery     []string       `json:"gallery" yaml:"gallery"`
	Description string         `json:"description" yaml:"description"`
	Category    string         `json:"category" yaml:"category"`
	Attributes  []AttributeSet `json:"attributes" yaml:"attributes"`
	Prices      []Price        `json:"prices" yaml:"prices"`
	Brand       string         `json:"brand" yaml:"brand"`
}

type AttributeSet struct {
	ID    string      `json:"id" yaml:"id"`
	Name  string      `json:"name" yaml:"name"`
	Type  string      `json:"type" yaml:"type"`
	Items []Attribute `json:"items" yaml:"items"`
}

type Attribute struct {
	ID           string `json:"id" yaml:"id"`
	Value        string `json:"value" yaml:"value"`
	DisplayValue string `json:"displayValue" yaml:"displayValue"`
}

type Price struct {
	Amount   float64  `json:"amount" yaml:"amount"`
	Currency Currency `json:"currency" yaml:"currency"`
}

// DecimalAmount returns the amount rounded to cents.
func (p Price) DecimalAmount() decimal.Decimal {
	return decimal.NewFromFloat(p.Amount).Round(2)
}

type Currency struct {
	Label  string `json:"label" yaml:"label"`
	Symbol string `json:"symbol" yaml:"symbol"`
}

// envelope matches documents wrapped as {"data": {...}}.
type envelope struct {
	Data *Catalog `json:"data" yaml:"data"`
}

// Decode parses a catalog document. The catalog may be wrapped in a top level data key.
func Decode(content []byte, format Format) (*Catalog, error) {
	unmarshal, err := unmarshalerFor(format)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := unmarshal(content, &env); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	if env.Data != nil {
		return env.Data, nil
	}

	var c Catalog
	if err := unmarshal(content, &c); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	return &c, nil
}

func unmarshalerFor(format Format) (func([]byte, any) error, error) {
	switch format {
	case FormatJSON:
		return json.Unmarshal, nil
	case FormatYAML:
		return yaml.Unmarshal, nil
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}
}

// Validate checks every category, product, price and attribute set against the domain model.
// All problems are reported together.
func (c *Catalog) Validate() error {
	var errs []error

	for _, cat := range c.Categories {
		if _, err := domain.NewCategory(cat.Name); err != nil {
			errs = append(errs, fmt.Errorf("category %q: %w", cat.Name, err))
		}
	}

	seen := make(map[string]struct{}, len(c.Products))
	for _, p := range c.Products {
		if err := validateProduct(p); err != nil {
			errs = append(errs, fmt.Errorf("product %q: %w", p.ID, err))
		}

		if _, dup := seen[p.ID]; dup {
			errs = append(errs, fmt.Errorf("product %q: duplicate id", p.ID))
		}
		seen[p.ID] = struct{}{}
	}

	return errors.Join(errs...)
}

// Brands returns the distinct brand names in product order.
func (c *Catalog) Brands() []string {
	seen := make(map[string]struct{})
	brands := make([]string, 0)

	for _, p := range c.Products {
		if p.Brand == "" {
			continue
		}
		if _, ok := seen[p.Brand]; ok {
			continue
		}
		seen[p.Brand] = struct{}{}
		brands = append(brands, p.Brand)
	}

	return brands
}

// Currencies returns the distinct price currencies keyed by upper-cased label, in product order.
func (c *Catalog) Currencies() []Currency {
	seen := make(map[string]struct{})
	currencies := make([]Currency, 0)

	for _, p := range c.Products {
		for _, price := range p.Prices {
			label := strings.ToUpper(strings.TrimSpace(price.Currency.Label))
			if _, ok := seen[label]; ok {
				continue
			}
			seen[label] = struct{}{}
			currencies = append(currencies, Currency{Label: label, Symbol: price.Currency.Symbol})
		}
	}

	return currencies
}

func validateProduct(p Product) error {
	if strings.TrimSpace(p.ID) == "" {
		return &domain.InvalidInputError{Field: "id", Reason: "Product ID cannot be empty."}
	}

	if _, err := domain.NewProduct(p.Category, domain.ProductFields{
		ID:          p.ID,
		Name:        p.Name,
		InStock:     p.InStock,
		Gallery:     p.Gallery,
		Description: p.Description,
		Brand:       p.Brand,
	}); err != nil {
		return err
	}

	for _, price := range p.Prices {
		if _, err := domain.NewPrice(price.DecimalAmount(), price.Currency.Label); err != nil {
			return err
		}
	}

	for _, set := range p.Attributes {
		if _, err := domain.NewAttributeSet(set.Type, set.ID, set.Name); err != nil {
			return err
		}
	}

	return nil
}
