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
	"github.com/emrekoc/schoolforum/internal/pkg/logger"
)

// sortColumns whitelists the sortable post columns
var sortColumns = map[string]string{
	"createdAt": "p.created_at",
	"views":     "p.views",
	"title":     "p.title",
}

// PostRepository handles post database operations
type PostRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new post and sets its generated ID
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	if post.Tags == nil {
		post.Tags = []string{}
	}

	sql, args, err := r.sb.Insert("posts").
		Columns("title", "content", "author_id", "category_id", "tags").
		Values(post.Title, post.Content, post.AuthorID, post.CategoryID, post.Tags).
		Suffix("RETURNING id, views, is_pinned, is_locked, is_active, is_edited, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create post query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&post.ID,
		&post.Views,
		&post.IsPinned,
		&post.IsLocked,
		&post.IsActive,
		&post.IsEdited,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create post query")
		return fmt.Errorf("error creating post: %w", err)
	}

	post.Replies = []models.Reply{}
	post.Likes = []int64{}
	return nil
}

// GetByID retrieves an active post with its author, category, replies and
// like set. Soft-deleted posts behave as absent.
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	sql := `
		SELECT p.id, p.title, p.content, p.author_id, p.category_id, p.tags, p.views,
			p.is_pinned, p.is_locked, p.is_active, p.is_edited, p.edited_at,
			p.created_at, p.updated_at,
			u.id, u.username, u.first_name, u.last_name, u.role,
			c.id, c.name, c.color, c.icon
		FROM posts p
		JOIN users u ON u.id = p.author_id
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1 AND p.is_active`

	post := &models.Post{Author: &models.User{}, Category: &models.Category{}}
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.AuthorID,
		&post.CategoryID,
		&post.Tags,
		&post.Views,
		&post.IsPinned,
		&post.IsLocked,
		&post.IsActive,
		&post.IsEdited,
		&post.EditedAt,
		&post.CreatedAt,
		&post.UpdatedAt,
		&post.Author.ID,
		&post.Author.Username,
		&post.Author.FirstName,
		&post.Author.LastName,
		&post.Author.Role,
		&post.Category.ID,
		&post.Category.Name,
		&post.Category.Color,
		&post.Category.Icon,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		logger.Error().Err(err).Int64("postID", id).Msg("Error scanning post row")
		return nil, fmt.Errorf("error getting post by ID: %w", err)
	}

	post.Replies, err = r.getReplies(ctx, id)
	if err != nil {
		return nil, err
	}

	post.Likes, err = r.getLikes(ctx, id)
	if err != nil {
		return nil, err
	}
	post.LikeCount = len(post.Likes)

	return post, nil
}

// getReplies loads a post's replies in creation order, with author summaries
func (r *PostRepository) getReplies(ctx context.Context, postID int64) ([]models.Reply, error) {
	sql := `
		SELECT r.id, r.post_id, r.author_id, r.content, r.likes, r.created_at,
			u.id, u.username, u.first_name, u.last_name, u.role
		FROM post_replies r
		JOIN users u ON u.id = r.author_id
		WHERE r.post_id = $1
		ORDER BY r.created_at ASC, r.id ASC`

	rows, err := r.db.Query(ctx, sql, postID)
	if err != nil {
		logger.Error().Err(err).Int64("postID", postID).Msg("Error querying post replies")
		return nil, fmt.Errorf("error querying replies: %w", err)
	}
	defer rows.Close()

	replies := []models.Reply{}
	for rows.Next() {
		reply := models.Reply{Author: &models.User{}}
		err := rows.Scan(
			&reply.ID,
			&reply.PostID,
			&reply.AuthorID,
			&reply.Content,
			&reply.Likes,
			&reply.CreatedAt,
			&reply.Author.ID,
			&reply.Author.Username,
			&reply.Author.FirstName,
			&reply.Author.LastName,
			&reply.Author.Role,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning reply row: %w", err)
		}
		replies = append(replies, reply)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reply rows: %w", err)
	}

	return replies, nil
}

// getLikes loads the post's like set as user IDs
func (r *PostRepository) getLikes(ctx context.Context, postID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, "SELECT user_id FROM post_likes WHERE post_id = $1 ORDER BY user_id", postID)
	if err != nil {
		logger.Error().Err(err).Int64("postID", postID).Msg("Error querying post likes")
		return nil, fmt.Errorf("error querying likes: %w", err)
	}
	defer rows.Close()

	likes := []int64{}
	for rows.Next() {
		var userID int64
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("error scanning like row: %w", err)
		}
		likes = append(likes, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating like rows: %w", err)
	}

	return likes, nil
}

// List retrieves active posts with filtering, sorting and pagination.
// Pinned posts sort before the rest regardless of sort key.
func (r *PostRepository) List(ctx context.Context, filter PostFilter, page, limit int) ([]models.Post, int64, error) {
	offset := uint64((page - 1) * limit)

	builder := r.sb.Select(
		"p.id", "p.title", "p.content", "p.author_id", "p.category_id", "p.tags", "p.views",
		"p.is_pinned", "p.is_locked", "p.is_active", "p.is_edited", "p.edited_at",
		"p.created_at", "p.updated_at",
		"u.username", "c.name",
		"(SELECT COUNT(*) FROM post_likes pl WHERE pl.post_id = p.id) AS like_count",
		"COUNT(*) OVER() AS total_count",
	).
		From("posts p").
		Join("users u ON u.id = p.author_id").
		Join("categories c ON c.id = p.category_id").
		Where(squirrel.Eq{"p.is_active": true})

	if filter.CategoryID != nil {
		builder = builder.Where(squirrel.Eq{"p.category_id": *filter.CategoryID})
	}
	if filter.AuthorID != nil {
		builder = builder.Where(squirrel.Eq{"p.author_id": *filter.AuthorID})
	}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"p.title": pattern},
			squirrel.ILike{"p.content": pattern},
		})
	}

	sortColumn, ok := sortColumns[filter.SortBy]
	if !ok {
		sortColumn = "p.created_at"
	}
	direction := "DESC"
	if filter.SortOrder == "asc" {
		direction = "ASC"
	}
	builder = builder.
		OrderBy("p.is_pinned DESC", sortColumn+" "+direction).
		Limit(uint64(limit)).
		Offset(offset)

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list posts query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list posts query")
		return nil, 0, fmt.Errorf("error listing posts: %w", err)
	}
	defer rows.Close()

	posts := []models.Post{}
	var total int64
	for rows.Next() {
		post := models.Post{Author: &models.User{}, Category: &models.Category{}}
		err := rows.Scan(
			&post.ID,
			&post.Title,
			&post.Content,
			&post.AuthorID,
			&post.CategoryID,
			&post.Tags,
			&post.Views,
			&post.IsPinned,
			&post.IsLocked,
			&post.IsActive,
			&post.IsEdited,
			&post.EditedAt,
			&post.CreatedAt,
			&post.UpdatedAt,
			&post.Author.Username,
			&post.Category.Name,
			&post.LikeCount,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning post row: %w", err)
		}
		post.Author.ID = post.AuthorID
		post.Category.ID = post.CategoryID
		post.Replies = []models.Reply{}
		post.Likes = []int64{}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating post rows: %w", err)
	}

	return posts, total, nil
}

// Update edits a post's title, content and tags, marking it as edited.
// Views and likes are untouched.
func (r *PostRepository) Update(ctx context.Context, post *models.Post) error {
	if post.Tags == nil {
		post.Tags = []string{}
	}

	sql, args, err := r.sb.Update("posts").
		Set("title", post.Title).
		Set("content", post.Content).
		Set("tags", post.Tags).
		Set("is_edited", true).
		Set("edited_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": post.ID, "is_active": true}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update post query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("postID", post.ID).Msg("Error executing update post query")
		return fmt.Errorf("error updating post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}

	return nil
}

// SoftDelete marks a post inactive. Terminal: there is no undelete.
func (r *PostRepository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "UPDATE posts SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND is_active", id)
	if err != nil {
		logger.Error().Err(err).Int64("postID", id).Msg("Error executing soft delete post query")
		return fmt.Errorf("error deleting post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}
	return nil
}

// SetPinned updates the pin flag of an active post
func (r *PostRepository) SetPinned(ctx context.Context, id int64, pinned bool) error {
	tag, err := r.db.Exec(ctx, "UPDATE posts SET is_pinned = $1, updated_at = NOW() WHERE id = $2 AND is_active", pinned, id)
	if err != nil {
		logger.Error().Err(err).Int64("postID", id).Msg("Error executing set pinned query")
		return fmt.Errorf("error updating pin state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}
	return nil
}

// SetLocked updates the lock flag of an active post
func (r *PostRepository) SetLocked(ctx context.Context, id int64, locked bool) error {
	tag, err := r.db.Exec(ctx, "UPDATE posts SET is_locked = $1, updated_at = NOW() WHERE id = $2 AND is_active", locked, id)
	if err != nil {
		logger.Error().Err(err).Int64("postID", id).Msg("Error executing set locked query")
		return fmt.Errorf("error updating lock state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}
	return nil
}

// IncrementViews bumps the monotonic view counter of an active post
func (r *PostRepository) IncrementViews(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, "UPDATE posts SET views = views + 1 WHERE id = $1 AND is_active", id)
	if err != nil {
		logger.Error().Err(err).Int64("postID", id).Msg("Error incrementing post views")
		return fmt.Errorf("error incrementing views: %w", err)
	}
	return nil
}

// AddReply appends an immutable reply to a post
func (r *PostRepository) AddReply(ctx context.Context, reply *models.Reply) error {
	sql, args, err := r.sb.Insert("post_replies").
		Columns("post_id", "author_id", "content").
		Values(reply.PostID, reply.AuthorID, reply.Content).
		Suffix("RETURNING id, likes, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build add reply query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&reply.ID, &reply.Likes, &reply.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Int64("postID", reply.PostID).Msg("Error executing add reply query")
		return fmt.Errorf("error adding reply: %w", err)
	}

	return nil
}

// ToggleLike flips a user's membership in the post's like set. The primary
// key on (post_id, user_id) keeps the toggle idempotent under races: a user
// is either in the set or not.
func (r *PostRepository) ToggleLike(ctx context.Context, postID, userID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2", postID, userID)
	if err != nil {
		logger.Error().Err(err).Int64("postID", postID).Msg("Error removing post like")
		return false, fmt.Errorf("error toggling like: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	_, err = r.db.Exec(ctx, "INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING", postID, userID)
	if err != nil {
		logger.Error().Err(err).Int64("postID", postID).Msg("Error adding post like")
		return false, fmt.Errorf("error toggling like: %w", err)
	}

	return true, nil
}
