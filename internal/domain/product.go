package domain

import (
	"github.com/CameronXie/storefront/pkg/orderedmap"
)

// ProductFields carries the category independent attributes of a product.
type ProductFields struct {
	ID          string
	Name        string
	InStock     bool
	Gallery     []string
	Description string
	Brand       string
}

// Product is a catalog item. Its variant is determined by Category.
type Product struct {
	ID          string
	Name        string
	InStock     bool
	Gallery     []string
	Description string
	Category    Category
	Brand       string
}

func newProductVariant(category CategoryName) func(ProductFields) Product {
	return func(fields ProductFields) Product {
		return Product{
			ID:          fields.ID,
			Name:        fields.Name,
			InStock:     fields.InStock,
			Gallery:     uniqueURLs(fields.Gallery),
			Description: fields.Description,
			Category:    Category{name: category},
			Brand:       fields.Brand,
		}
	}
}

var productVariants = map[CategoryName]func(ProductFields) Product{
	CategoryTech:    newProductVariant(CategoryTech),
	CategoryClothes: newProductVariant(CategoryClothes),
}

// NewProduct creates a Product of the variant registered for category.
// Only concrete categories have a product variant; "all" does not.
func NewProduct(category string, fields ProductFields) (Product, error) {
	create, ok := productVariants[normaliseCategoryName(category)]
	if !ok {
		return Product{}, &UnknownVariantError{Family: "product category", Value: category}
	}

	return create(fields), nil
}

// ProductBuilder accumulates gallery images for a product while rows are folded.
type ProductBuilder struct {
	product Product
	gallery *orderedmap.Map[string, struct{}]
}

// NewProductBuilder creates a builder for a product of the given category.
func NewProductBuilder(category string, fields ProductFields) (*ProductBuilder, error) {
	product, err := NewProduct(category, fields)
	if err != nil {
		return nil, err
	}

	b := &ProductBuilder{
		product: product,
		gallery: orderedmap.New[string, struct{}](),
	}
	for _, url := range product.Gallery {
		b.gallery.Set(url, struct{}{})
	}

	return b, nil
}

// ID returns the id of the product being built.
func (b *ProductBuilder) ID() string {
	return b.product.ID
}

// AddGalleryImage appends url unless it is empty or already present.
func (b *ProductBuilder) AddGalleryImage(url string) {
	if url == "" {
		return
	}

	b.gallery.SetIfAbsent(url, struct{}{})
}

// Build returns the product with its gallery in insertion order.
func (b *ProductBuilder) Build() Product {
	product := b.product
	product.Gallery = b.gallery.Keys()
	return product
}

func uniqueURLs(urls []string) []string {
	seen := orderedmap.New[string, struct{}]()
	for _, url := range urls {
		if url != "" {
			seen.SetIfAbsent(url, struct{}{})
		}
	}

	return seen.Keys()
}
