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

// AttributeService folds attribute rows of a product into attribute sets.
type AttributeService struct {
	repo   repository.AttributeRepository
	logger *slog.Logger
}

// NewAttributeService creates a new AttributeService instance
func NewAttributeService(repo repository.AttributeRepository, logger *slog.Logger) *AttributeService {
	return &AttributeService{
		repo:   repo,
		logger: logger,
	}
}

// GetAttributes returns the attribute sets of a product. A product without attributes yields an empty list.
func (s *AttributeService) GetAttributes(ctx context.Context, productID string) ([]domain.AttributeSet, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, fmt.Errorf("error fetching attributes: %w", emptyProductIDError())
	}

	rows, err := s.repo.FetchAttributes(ctx, productID)
	if err != nil {
		s.logger.ErrorContext(ctx, "fetch_attributes_failed", "product_id", productID, "error", err)
		return nil, fmt.Errorf("error fetching attributes: %w", asStorageError("fetch_attributes", err))
	}

	sets, err := foldAttributeSets(rows)
	if err != nil {
		return nil, fmt.Errorf("error fetching attributes: %w", err)
	}

	s.logger.DebugContext(ctx, "attributes_folded", "product_id", productID, "sets", len(sets))
	return sets, nil
}

func foldAttributeSets(rows []repository.AttributeRow) ([]domain.AttributeSet, error) {
	builders := orderedmap.New[string, *domain.AttributeSetBuilder]()

	for _, row := range rows {
		b, ok := builders.Get(row.AttributeSetID)
		if !ok {
			var err error
			b, err = domain.NewAttributeSetBuilder(row.AttributeSetType, row.AttributeSetID, row.AttributeSetName)
			if err != nil {
				return nil, fmt.Errorf("failed to build attribute set %s: %w", row.AttributeSetID, err)
			}

			builders.Set(row.AttributeSetID, b)
		}

		if row.AttributeID == "" {
			continue
		}

		b.AddItem(domain.Attribute{
			ID:           row.AttributeID,
			Value:        row.Value,
			DisplayValue: row.DisplayValue,
		})
	}

	sets := make([]domain.AttributeSet, 0, builders.Len())
	for _, b := range builders.Values() {
		sets = append(sets, b.Build())
	}

	return sets, nil
}

func emptyProductIDError() *domain.InvalidInputError {
	return &domain.InvalidInputError{Field: "productId", Reason: "Product ID cannot be empty."}
}
