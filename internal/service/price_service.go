package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/CameronXie/storefront/internal/domain"
	"github.com/CameronXie/storefront/internal/repository"
	"github.com/CameronXie/storefront/pkg/orderedmap"
)

// PriceService folds price rows of a product into prices.
type PriceService struct {
	repo   repository.PriceRepository
	logger *slog.Logger
}

// NewPriceService creates a new PriceService instance
func NewPriceService(repo repository.PriceRepository, logger *slog.Logger) *PriceService {
	return &PriceService{
		repo:   repo,
		logger: logger,
	}
}

// GetPrices returns the prices of a product, at most one per currency.
// A product without prices yields an empty list, not an error.
// Prices in currencies outside the supported set are skipped.
func (s *PriceService) GetPrices(ctx context.Context, productID string) ([]domain.Price, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, fmt.Errorf("error fetching prices: %w", emptyProductIDError())
	}

	rows, err := s.repo.FetchPrices(ctx, productID)
	if err != nil {
		s.logger.ErrorContext(ctx, "fetch_prices_failed", "product_id", productID, "error", err)
		return nil, fmt.Errorf("error fetching prices: %w", asStorageError("fetch_prices", err))
	}

	prices := orderedmap.New[string, domain.Price]()
	for _, row := range rows {
		price, err := domain.NewPrice(row.Amount, row.CurrencyLabel)
		if err != nil {
			var variantErr *domain.UnknownVariantError
			if errors.As(err, &variantErr) {
				s.logger.WarnContext(ctx, "price_currency_unsupported", "product_id", productID, "currency", row.CurrencyLabel)
				continue
			}

			return nil, fmt.Errorf("error fetching prices: %w", err)
		}

		prices.SetIfAbsent(price.Currency.Label(), price)
	}

	s.logger.DebugContext(ctx, "prices_folded", "product_id", productID, "prices", prices.Len())
	return prices.Values(), nil
}
