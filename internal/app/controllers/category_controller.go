package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emrekoc/schoolforum/internal/app/models/dto"
	"github.com/emrekoc/schoolforum/internal/app/services"
	"github.com/emrekoc/schoolforum/internal/middleware"
)

// CategoryController handles category operations
type CategoryController struct {
	categoryService services.CategoryService
}

// NewCategoryController creates a new CategoryController
func NewCategoryController(categoryService services.CategoryService) *CategoryController {
	return &CategoryController{
		categoryService: categoryService,
	}
}

func parseCategoryID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid category ID"))
		return 0, false
	}
	return id, true
}

// GetAllCategories retrieves all active categories
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {object} dto.CategoryListResponse
// @Router /categories [get]
func (c *CategoryController) GetAllCategories(ctx *gin.Context) {
	categories, err := c.categoryService.GetAll(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CategoryListResponse{Categories: categories})
}

// GetCategoryByID retrieves a category by ID
// @Summary Get category by ID
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} dto.CategoryResponse
// @Failure 404 {object} dto.ErrorResponse "Category not found or deleted"
// @Router /categories/{id} [get]
func (c *CategoryController) GetCategoryByID(ctx *gin.Context) {
	id, ok := parseCategoryID(ctx)
	if !ok {
		return
	}

	category, err := c.categoryService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CategoryResponse{Category: category})
}

// CreateCategory creates a new category
// @Summary Create a category
// @Description Moderators only. Category names are unique, including against soft-deleted categories.
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCategoryRequest true "Category data"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failure or duplicate name"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /categories [post]
func (c *CategoryController) CreateCategory(ctx *gin.Context) {
	userID, role, ok := actor(ctx)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request body"))
		return
	}

	category, err := c.categoryService.Create(ctx.Request.Context(), userID, role, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.CategoryResponse{Category: category})
}

// UpdateCategory updates a category
// @Summary Update a category
// @Description Moderators only. The creator reference is immutable.
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Param request body dto.UpdateCategoryRequest true "Category data"
// @Success 200 {object} dto.CategoryResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failure or duplicate name"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Category not found or deleted"
// @Router /categories/{id} [put]
func (c *CategoryController) UpdateCategory(ctx *gin.Context) {
	_, role, ok := actor(ctx)
	if !ok {
		return
	}
	id, ok := parseCategoryID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request body"))
		return
	}

	category, err := c.categoryService.Update(ctx.Request.Context(), role, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CategoryResponse{Category: category})
}

// DeleteCategory soft-deletes a category
// @Summary Delete a category
// @Description Moderators only. Soft delete; the name stays reserved and post history keeps its reference.
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Category not found or deleted"
// @Router /categories/{id} [delete]
func (c *CategoryController) DeleteCategory(ctx *gin.Context) {
	_, role, ok := actor(ctx)
	if !ok {
		return
	}
	id, ok := parseCategoryID(ctx)
	if !ok {
		return
	}

	if err := c.categoryService.Delete(ctx.Request.Context(), role, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Category deleted"})
}
