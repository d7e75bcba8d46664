package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/CameronXie/storefront/internal/domain"
	"github.com/CameronXie/storefront/internal/repository"
	"github.com/CameronXie/storefront/pkg/orderedmap"
)

// ProductService lists products, folding product and gallery rows into products.
type ProductService struct {
	repo   repository.ProductRepository
	logger *slog.Logger
}

// NewProductService creates a new ProductService instance
func NewProductService(repo repository.ProductRepository, logger *slog.Logger) *ProductService {
	return &ProductService{
		repo:   repo,
		logger: logger,
	}
}

// GetProducts returns the products matching filter in storage order.
// An empty result is reported as a NotFoundError.
func (s *ProductService) GetProducts(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	filter, err := normaliseProductFilter(filter)
	if err != nil {
		return nil, fmt.Errorf("error serving products: %w", err)
	}

	rows, err := s.repo.FetchProducts(ctx, filter)
	if err != nil {
		s.logger.ErrorContext(
			ctx,
			"fetch_products_failed",
			"category", filter.Category,
			"brand", filter.Brand,
			"product_id", filter.ProductID,
			"error", err,
		)
		return nil, fmt.Errorf("error serving products: %w", asStorageError("fetch_products", err))
	}

	products, err := foldProducts(rows)
	if err != nil {
		return nil, fmt.Errorf("error serving products: %w", err)
	}

	if len(products) == 0 {
		return nil, fmt.Errorf("error serving products: %w", productsNotFound(filter))
	}

	s.logger.DebugContext(ctx, "products_folded", "rows", len(rows), "products", len(products))
	return products, nil
}

// normaliseProductFilter validates the category filter. The "all" category means no filter.
func normaliseProductFilter(filter repository.ProductFilter) (repository.ProductFilter, error) {
	filter.Brand = strings.TrimSpace(filter.Brand)
	filter.ProductID = strings.TrimSpace(filter.ProductID)

	if strings.TrimSpace(filter.Category) == "" {
		filter.Category = ""
		return filter, nil
	}

	category, err := domain.NewCategory(filter.Category)
	if err != nil {
		return filter, err
	}

	filter.Category = category.String()
	if category.Name() == domain.CategoryAll {
		filter.Category = ""
	}

	return filter, nil
}

func productsNotFound(filter repository.ProductFilter) *domain.NotFoundError {
	switch {
	case filter.ProductID != "":
		return &domain.NotFoundError{Resource: "product", Key: "id", Value: filter.ProductID}
	case filter.Category != "":
		return &domain.NotFoundError{Resource: "product", Key: "category", Value: filter.Category}
	case filter.Brand != "":
		return &domain.NotFoundError{Resource: "product", Key: "brand", Value: filter.Brand}
	default:
		return &domain.NotFoundError{Resource: "products"}
	}
}

func foldProducts(rows []repository.ProductRow) ([]domain.Product, error) {
	builders := orderedmap.New[string, *domain.ProductBuilder]()

	for i := range rows {
		row := &rows[i]

		b, ok := builders.Get(row.ID)
		if !ok {
			var err error
			b, err = domain.NewProductBuilder(row.CategoryName.String, domain.ProductFields{
				ID:          row.ID,
				Name:        row.Name,
				InStock:     row.InStock,
				Description: row.Description,
				Brand:       row.BrandName.String,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to build product %s: %w", row.ID, err)
			}

			builders.Set(row.ID, b)
		}

		if row.GalleryURL.Valid {
			b.AddGalleryImage(row.GalleryURL.String)
		}
	}

	products := make([]domain.Product, 0, builders.Len())
	for _, b := range builders.Values() {
		products = append(products, b.Build())
	}

	return products, nil
}
