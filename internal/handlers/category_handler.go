package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ross2p/ems-app/internal/dto"
	apierrors "github.com/ross2p/ems-app/internal/errors"
	"github.com/ross2p/ems-app/internal/models"
	"github.com/ross2p/ems-app/internal/query"
	"github.com/ross2p/ems-app/internal/repositories"
)

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	categoryRepo repositories.CategoryRepositoryInterface
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryRepo repositories.CategoryRepositoryInterface) *CategoryHandler {
	return &CategoryHandler{
		categoryRepo: categoryRepo,
	}
}

// List returns a page of categories, optionally filtered by name.
func (h *CategoryHandler) List(c echo.Context) error {
	params := query.ParseCategoryFilters(c.QueryParams())

	categories, total, err := h.categoryRepo.List(params)
	if err != nil {
		return SendSystemError(c, err)
	}

	limit := params.PageSize
	if limit < 1 {
		limit = 50
	}

	return SendSuccess(c, http.StatusOK, "Categories retrieved successfully",
		buildPage(categories, total, params.PageNumber, limit))
}

// Get returns a single category by ID.
func (h *CategoryHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.CategoryInvalidID)
	}

	category, err := h.categoryRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return SendError(c, apierrors.CategoryNotFound)
		}
		return SendSystemError(c, err)
	}

	return SendSuccess(c, http.StatusOK, "Category retrieved successfully", category)
}

// Create creates a new category owned by the authenticated user.
func (h *CategoryHandler) Create(c echo.Context) error {
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return SendError(c, apierrors.AuthMissingToken)
	}

	var req dto.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return SendErrorMessage(c, apierrors.ValidationGeneral, "Invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	category := &models.Category{
		Name:        req.Name,
		Description: req.Description,
		CreatedByID: userID,
	}

	if err := h.categoryRepo.Create(category); err != nil {
		if errors.Is(err, repositories.ErrCategoryAlreadyExists) {
			return SendError(c, apierrors.CategoryAlreadyExists)
		}
		return SendSystemError(c, err)
	}

	return SendSuccess(c, http.StatusCreated, "Category created successfully", category)
}
