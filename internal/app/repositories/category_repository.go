package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emrekoc/schoolforum/internal/app/models"
	"github.com/emrekoc/schoolforum/internal/pkg/apperrors"
	"github.com/emrekoc/schoolforum/internal/pkg/dberrors"
	"github.com/emrekoc/schoolforum/internal/pkg/logger"
)

// CategoryRepository handles category database operations
type CategoryRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new category. The unique constraint on name spans active
// and soft-deleted rows, so a deleted category's name stays reserved.
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	sql, args, err := r.sb.Insert("categories").
		Columns("name", "description", "color", "icon", "created_by").
		Values(category.Name, category.Description, category.Color, category.Icon, category.CreatedBy).
		Suffix("RETURNING id, is_active, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create category query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&category.ID, &category.IsActive, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCategoryAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create category query")
		return fmt.Errorf("error creating category: %w", err)
	}

	return nil
}

// GetByID retrieves an active category by ID, including its active post count.
// Soft-deleted categories behave as absent.
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	sql := `
		SELECT c.id, c.name, c.description, c.color, c.icon, c.created_by, c.is_active,
			c.created_at, c.updated_at,
			COUNT(p.id) FILTER (WHERE p.is_active) AS post_count
		FROM categories c
		LEFT JOIN posts p ON p.category_id = c.id
		WHERE c.id = $1 AND c.is_active
		GROUP BY c.id`

	category := &models.Category{}
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&category.ID,
		&category.Name,
		&category.Description,
		&category.Color,
		&category.Icon,
		&category.CreatedBy,
		&category.IsActive,
		&category.CreatedAt,
		&category.UpdatedAt,
		&category.PostCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCategoryNotFound
		}
		logger.Error().Err(err).Int64("categoryID", id).Msg("Error scanning category row")
		return nil, fmt.Errorf("error getting category by ID: %w", err)
	}

	return category, nil
}

// GetAll retrieves all active categories ordered by name
func (r *CategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	sql := `
		SELECT c.id, c.name, c.description, c.color, c.icon, c.created_by, c.is_active,
			c.created_at, c.updated_at,
			COUNT(p.id) FILTER (WHERE p.is_active) AS post_count
		FROM categories c
		LEFT JOIN posts p ON p.category_id = c.id
		WHERE c.is_active
		GROUP BY c.id
		ORDER BY c.name ASC`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all categories query")
		return nil, fmt.Errorf("error querying categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var category models.Category
		err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Description,
			&category.Color,
			&category.Icon,
			&category.CreatedBy,
			&category.IsActive,
			&category.CreatedAt,
			&category.UpdatedAt,
			&category.PostCount,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning category row: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}

	return categories, nil
}

// NameExists checks name uniqueness among all categories regardless of
// active state.
func (r *CategoryRepository) NameExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1)", name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking category name existence: %w", err)
	}
	return exists, nil
}

// Update updates a category's mutable fields. The creator reference is
// immutable.
func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	sql, args, err := r.sb.Update("categories").
		Set("name", category.Name).
		Set("description", category.Description).
		Set("color", category.Color).
		Set("icon", category.Icon).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": category.ID, "is_active": true}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update category query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCategoryAlreadyExists
		}
		logger.Error().Err(err).Int64("categoryID", category.ID).Msg("Error executing update category query")
		return fmt.Errorf("error updating category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCategoryNotFound
	}

	return nil
}

// SoftDelete marks a category inactive. The row is never physically removed
// so post history keeps a valid reference.
func (r *CategoryRepository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "UPDATE categories SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND is_active", id)
	if err != nil {
		logger.Error().Err(err).Int64("categoryID", id).Msg("Error executing soft delete category query")
		return fmt.Errorf("error deleting category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}
