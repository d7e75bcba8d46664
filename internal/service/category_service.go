package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/CameronXie/storefront/internal/domain"
	"github.com/CameronXie/storefront/internal/repository"
	"github.com/CameronXie/storefront/pkg/orderedmap"
)

// CategoryService lists categories.
type CategoryService struct {
	repo   repository.CategoryRepository
	logger *slog.Logger
}

// NewCategoryService creates a new CategoryService instance
func NewCategoryService(repo repository.CategoryRepository, logger *slog.Logger) *CategoryService {
	return &CategoryService{
		repo:   repo,
		logger: logger,
	}
}

// GetCategories returns every stored category once, in storage order.
func (s *CategoryService) GetCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.repo.FetchCategories(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "fetch_categories_failed", "error", err)
		return nil, fmt.Errorf("error fetching categories: %w", asStorageError("fetch_categories", err))
	}

	categories := orderedmap.New[domain.CategoryName, domain.Category]()
	for _, row := range rows {
		category, err := domain.NewCategory(row.Name)
		if err != nil {
			return nil, fmt.Errorf("error fetching categories: %w", err)
		}

		categories.SetIfAbsent(category.Name(), category)
	}

	return categories.Values(), nil
}
