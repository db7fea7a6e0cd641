package services

import (
	"context"
	"fmt"

	"github.com/ross2p/ems-app/internal/apiclient"
	"github.com/ross2p/ems-app/internal/dto"
	"github.com/ross2p/ems-app/internal/models"
	"github.com/ross2p/ems-app/internal/query"
)

// CategoryService wraps the category endpoints.
type CategoryService struct {
	client *apiclient.Client
}

// NewCategoryService creates a new category service over the shared client.
func NewCategoryService(client *apiclient.Client) CategoryServiceInterface {
	return &CategoryService{client: client}
}

// List fetches a page of categories, optionally filtered by search term.
func (s *CategoryService) List(ctx context.Context, params models.CategoryListParams) (*dto.PageResponse[models.Category], error) {
	var out dto.PageResponse[models.Category]
	if err := s.client.Get(ctx, routeCategories, query.CategoryFiltersValues(params), &out); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return &out, nil
}

// Get fetches a single category by ID.
func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	var out models.Category
	if err := s.client.Get(ctx, routeCategory(id), nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get category %s: %w", id, err)
	}
	return &out, nil
}

// Create creates a new category.
func (s *CategoryService) Create(ctx context.Context, req dto.CreateCategoryRequest) (*models.Category, error) {
	var out models.Category
	if err := s.client.Post(ctx, routeCategories, req, &out); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &out, nil
}
