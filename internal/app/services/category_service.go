package services

import (
	"context"

	"github.com/rs/zerolog"

	appauth "github.com/emrekoc/schoolforum/internal/app/auth"
	"github.com/emrekoc/schoolforum/internal/app/models"
	"github.com/emrekoc/schoolforum/internal/app/models/dto"
	"github.com/emrekoc/schoolforum/internal/app/repositories"
	"github.com/emrekoc/schoolforum/internal/pkg/apperrors"
	"github.com/emrekoc/schoolforum/internal/pkg/validation"
)

type categoryService struct {
	categoryRepo repositories.ICategoryRepository
	logger       zerolog.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo repositories.ICategoryRepository, logger zerolog.Logger) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

func validateCategoryFields(name, color string) error {
	verrs := apperrors.NewValidationErrors()
	if !validation.IsValidName(name) {
		verrs.Add("name", "name must be 2-100 characters")
	}
	if color != "" && !validation.IsValidHexColor(color) {
		verrs.Add("color", "color must be a hex value like #3498db")
	}
	if verrs.HasErrors() {
		return verrs
	}
	return nil
}

// GetAll retrieves all active categories
func (s *categoryService) GetAll(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.GetAll(ctx)
}

// GetByID retrieves an active category by ID
func (s *categoryService) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

// Create creates a new category. Moderators only. Name uniqueness spans
// soft-deleted categories: a deleted name stays reserved.
func (s *categoryService) Create(ctx context.Context, actorID int64, actorRole models.Role, req *dto.CreateCategoryRequest) (*models.Category, error) {
	if !appauth.CanModerate(actorRole) {
		return nil, apperrors.ErrPermissionDenied
	}

	if err := validateCategoryFields(req.Name, req.Color); err != nil {
		return nil, err
	}

	exists, err := s.categoryRepo.NameExists(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrCategoryAlreadyExists
	}

	category := &models.Category{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
		CreatedBy:   actorID,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("categoryID", category.ID).Str("name", category.Name).Msg("Category created")
	return category, nil
}

// Update updates a category. Moderators only; the creator reference is
// immutable.
func (s *categoryService) Update(ctx context.Context, actorRole models.Role, id int64, req *dto.UpdateCategoryRequest) (*models.Category, error) {
	if !appauth.CanModerate(actorRole) {
		return nil, apperrors.ErrPermissionDenied
	}

	if err := validateCategoryFields(req.Name, req.Color); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != category.Name {
		exists, err := s.categoryRepo.NameExists(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.ErrCategoryAlreadyExists
		}
	}

	category.Name = req.Name
	category.Description = req.Description
	category.Color = req.Color
	category.Icon = req.Icon
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return s.categoryRepo.GetByID(ctx, id)
}

// Delete soft-deletes a category. Moderators only; the row survives so post
// history keeps its reference.
func (s *categoryService) Delete(ctx context.Context, actorRole models.Role, id int64) error {
	if !appauth.CanModerate(actorRole) {
		return apperrors.ErrPermissionDenied
	}

	if err := s.categoryRepo.SoftDelete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("categoryID", id).Msg("Category deleted")
	return nil
}
