package services

import (
	"context"

	"github.com/rs/zerolog"

	appauth "github.com/emrekoc/schoolforum/internal/app/auth"
	"github.com/emrekoc/schoolforum/internal/app/models"
	"github.com/emrekoc/schoolforum/internal/app/models/dto"
	"github.com/emrekoc/schoolforum/internal/app/repositories"
	"github.com/emrekoc/schoolforum/internal/pkg/apperrors"
)

type postService struct {
	postRepo     repositories.IPostRepository
	categoryRepo repositories.ICategoryRepository
	logger       zerolog.Logger
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.IPostRepository, categoryRepo repositories.ICategoryRepository, logger zerolog.Logger) PostService {
	return &postService{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// Create creates a new post in an existing category
func (s *postService) Create(ctx context.Context, authorID int64, req *dto.CreatePostRequest) (*models.Post, error) {
	if _, err := s.categoryRepo.GetByID(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:      req.Title,
		Content:    req.Content,
		AuthorID:   authorID,
		CategoryID: req.CategoryID,
		Tags:       req.Tags,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("postID", post.ID).Int64("authorID", authorID).Msg("Post created")
	return post, nil
}

// Get fetches an active post and counts the view. The counter moves exactly
// once per successful fetch.
func (s *postService) Get(ctx context.Context, id int64) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.postRepo.IncrementViews(ctx, id); err != nil {
		return nil, err
	}
	post.Views++

	return post, nil
}

// List retrieves active posts with filtering and pagination
func (s *postService) List(ctx context.Context, filter repositories.PostFilter, page, limit int) ([]models.Post, int64, error) {
	return s.postRepo.List(ctx, filter, page, limit)
}

// Update edits title, content and tags, per the ownership policy. Edits mark
// the post as edited but never touch views or likes.
func (s *postService) Update(ctx context.Context, actorID int64, actorRole models.Role, postID int64, req *dto.UpdatePostRequest) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if !appauth.CanModify(actorRole, actorID, post.AuthorID) {
		return nil, apperrors.ErrPermissionDenied
	}

	post.Title = req.Title
	post.Content = req.Content
	post.Tags = req.Tags
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, postID)
}

// Delete soft-deletes a post, per the ownership policy. Terminal: the post
// behaves as absent afterwards.
func (s *postService) Delete(ctx context.Context, actorID int64, actorRole models.Role, postID int64) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if !appauth.CanModify(actorRole, actorID, post.AuthorID) {
		return apperrors.ErrPermissionDenied
	}

	if err := s.postRepo.SoftDelete(ctx, postID); err != nil {
		return err
	}

	s.logger.Info().Int64("postID", postID).Int64("actorID", actorID).Msg("Post deleted")
	return nil
}

// TogglePin flips the pin flag. Moderators only; orthogonal to lock state.
func (s *postService) TogglePin(ctx context.Context, actorRole models.Role, postID int64) (*models.Post, error) {
	if !appauth.CanModerate(actorRole) {
		return nil, apperrors.ErrPermissionDenied
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := s.postRepo.SetPinned(ctx, postID, !post.IsPinned); err != nil {
		return nil, err
	}
	post.IsPinned = !post.IsPinned

	return post, nil
}

// ToggleLock flips the lock flag. Moderators only; locking blocks new
// replies but not likes.
func (s *postService) ToggleLock(ctx context.Context, actorRole models.Role, postID int64) (*models.Post, error) {
	if !appauth.CanModerate(actorRole) {
		return nil, apperrors.ErrPermissionDenied
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := s.postRepo.SetLocked(ctx, postID, !post.IsLocked); err != nil {
		return nil, err
	}
	post.IsLocked = !post.IsLocked

	return post, nil
}

// AddReply appends a reply to an active, unlocked post. A lock blocks
// everyone, moderators included.
func (s *postService) AddReply(ctx context.Context, actorID, postID int64, req *dto.CreateReplyRequest) (*models.Reply, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.IsLocked {
		return nil, apperrors.ErrPostLocked
	}

	reply := &models.Reply{
		PostID:   postID,
		AuthorID: actorID,
		Content:  req.Content,
	}
	if err := s.postRepo.AddReply(ctx, reply); err != nil {
		return nil, err
	}

	return reply, nil
}

// ToggleLike flips the caller's like on an active post. Idempotent per user:
// toggling twice restores the original like set. Lock state does not matter.
func (s *postService) ToggleLike(ctx context.Context, actorID, postID int64) (bool, int, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return false, 0, err
	}

	liked, err := s.postRepo.ToggleLike(ctx, postID, actorID)
	if err != nil {
		return false, 0, err
	}

	count := post.LikeCount
	if liked {
		count++
	} else {
		count--
	}
	if count < 0 {
		count = 0
	}

	return liked, count, nil
}
