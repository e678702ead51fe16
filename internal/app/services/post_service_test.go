package services_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/emrekoc/schoolforum/internal/app/models"
	"github.com/emrekoc/schoolforum/internal/app/models/dto"
	"github.com/emrekoc/schoolforum/internal/app/services"
	"github.com/emrekoc/schoolforum/internal/pkg/apperrors"
)

func newPostService(postRepo *MockPostRepository, categoryRepo *MockCategoryRepository) services.PostService {
	return services.NewPostService(postRepo, categoryRepo, zerolog.Nop())
}

func TestCreatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a post in an existing category", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		categoryRepo := new(MockCategoryRepository)
		svc := newPostService(postRepo, categoryRepo)

		categoryRepo.On("GetByID", ctx, int64(3)).Return(&models.Category{ID: 3, Name: "Homework Help"}, nil)
		postRepo.On("Create", ctx, mock.MatchedBy(func(p *models.Post) bool {
			return p.AuthorID == 5 && p.CategoryID == 3 && p.Title == "Algebra question"
		})).Return(nil)

		post, err := svc.Create(ctx, 5, &dto.CreatePostRequest{
			Title:      "Algebra question",
			Content:    "How do I factor this?",
			CategoryID: 3,
			Tags:       []string{"math"},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(5), post.AuthorID)
		postRepo.AssertExpectations(t)
	})

	t.Run("missing or deleted category rejects the post", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		categoryRepo := new(MockCategoryRepository)
		svc := newPostService(postRepo, categoryRepo)

		categoryRepo.On("GetByID", ctx, int64(99)).Return(nil, apperrors.ErrCategoryNotFound)

		_, err := svc.Create(ctx, 5, &dto.CreatePostRequest{Title: "t", Content: "c", CategoryID: 99})
		assert.ErrorIs(t, err, apperrors.ErrCategoryNotFound)
		postRepo.AssertNotCalled(t, "Create")
	})
}

func TestGetPost(t *testing.T) {
	ctx := context.Background()

	t.Run("fetch counts exactly one view", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := newPostService(postRepo, new(MockCategoryRepository))

		postRepo.On("GetByID", ctx, int64(1)).Return(&models.Post{ID: 1, Views: 10}, nil)
		postRepo.On("IncrementViews", ctx, int64(1)).Return(nil).Once()

		post, err := svc.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(11), post.Views)
		postRepo.AssertExpectations(t)
	})

	t.Run("deleted post behaves as absent", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := newPostService(postRepo, new(MockCategoryRepository))

		postRepo.On("GetByID", ctx, int64(1)).Return(nil, apperrors.ErrPostNotFound)

		_, err := svc.Get(ctx, 1)
		assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
		postRepo.AssertNotCalled(t, "IncrementViews")
	})
}

func TestUpdatePost(t *testing.T) {
	ctx := context.Background()
	existing := func() *models.Post {
		return &models.Post{ID: 1, AuthorID: 5, Title: "old", Content: "old", Views: 3}
	}

	t.Run("author can edit own post", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := newPostService(postRepo, new(MockCategoryRepository))

		postRepo.On("GetByID", ctx, int64(1)).Return(existing(), nil)
		postRepo.On("Update", ctx, mock.MatchedBy(func(p *models.Post) bool {
			return p.Title == "new title"
		})).Return(nil)

		_, err := svc.Update(ctx, 5, models.RoleStudent, 1, &dto.UpdatePostRequest{Title: "new title", Content: "new"})
		require.NoError(t, err)
		postRepo.AssertExpectations(t)
	})

	t.Run("another student cannot edit", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := newPostService(postRepo, new(MockCategoryRepository))

		postRepo.On("GetByID", ctx, int64(1)).Return(existing(), nil)

		_, err := svc.Update(ctx, 6, models.RoleStudent, 1, &dto.UpdatePostRequest{Title: "x", Content: "y"})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		postRepo.AssertNotCalled(t, "Update")
	})

	t.Run("teacher can edit any post", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := newPostService(postRepo, new(MockCategoryRepository))

		postRepo.On("GetByID", ctx, int64(1)).Return(existing(), nil)
		postRepo.On("Update", ctx, mock.Anything).Return(nil)

		_, err := svc.Update(ctx, 99, models.RoleTeacher, 1, &dto.UpdatePostRequest{Title: "x", Content: "y"})
		require.NoError(t, err)
	})
}

func TestDeletePost(t *testing.T) {
	ctx := context.Background()

	t.Run("owner delete succeeds", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := newPostService(postRepo, new(MockCategoryRepository))

		postRepo.On("GetByID", ctx, int64(1)).Return(&models.Post{ID: 1, AuthorID: 5}, nil)
		postRepo.On("SoftDelete", ctx, int64(1)).Return(nil)

		err := svc.Delete(ctx, 5, models.RoleStudent, 1)
		require.NoError(t, err)
		postRepo.AssertExpectations(t)
	})

	t.Run("non-owner student cannot delete", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := newPostService(postRepo, new(MockCategoryRepository))

		postRepo.On("GetByID", ctx, int64(1)).Return(&models.Post{ID: 1, AuthorID: 5}, nil)

		err := svc.Delete(ctx, 6, models.RoleStudent, 1)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		postRepo.AssertNotCalled(t, "SoftDelete")
	})

	t.Run("deleting an already deleted post reports not found", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := newPostService(postRepo, new(MockCategoryRepository))

		postRepo.On("GetByID", ctx, int64(1)).Return(nil, apperrors.ErrPostNotFound)

		err := svc.Delete(ctx, 5, models.RoleStudent, 1)
		assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
	})
}

func TestTogglePinAndLock(t *testing.T) {
	ctx := context.Background()

	t.Run("student cannot pin", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := newPostService(postRepo, new(MockCategoryRepository))

		_, err := svc.TogglePin(ctx, models.RoleStudent, 1)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		postRepo.AssertNotCalled(t, "GetByID")
	})

	t.Run("teacher pin flips the flag", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := newPostService(postRepo, new(MockCategoryRepository))

		postRepo.On("GetByID", ctx, int64(1)).Return(&models.Post{ID: 1, IsPinned: false}, nil)
		postRepo.On("SetPinned", ctx, int64(1), true).Return(nil)

		post, err := svc.TogglePin(ctx, models.RoleTeacher, 1)
		require.NoError(t, err)
		assert.True(t, post.IsPinned)
	})

	t.Run("admin unlock flips the flag back", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := newPostService(postRepo, new(MockCategoryRepository))

		postRepo.On("GetByID", ctx, int64(1)).Return(&models.Post{ID: 1, IsLocked: true}, nil)
		postRepo.On("SetLocked", ctx, int64(1), false).Return(nil)

		post, err := svc.ToggleLock(ctx, models.RoleAdmin, 1)
		require.NoError(t, err)
		assert.False(t, post.IsLocked)
	})
}

func TestAddReply(t *testing.T) {
	ctx := context.Background()

	t.Run("reply on open post succeeds", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := newPostService(postRepo, new(MockCategoryRepository))

		postRepo.On("GetByID", ctx, int64(1)).Return(&models.Post{ID: 1}, nil)
		postRepo.On("AddReply", ctx, mock.MatchedBy(func(r *models.Reply) bool {
			return r.PostID == 1 && r.AuthorID == 5 && r.Content == "same question"
		})).Return(nil)

		reply, err := svc.AddReply(ctx, 5, 1, &dto.CreateReplyRequest{Content: "same question"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), reply.PostID)
	})

	t.Run("lock blocks replies for every role", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := newPostService(postRepo, new(MockCategoryRepository))

		postRepo.On("GetByID", ctx, int64(1)).Return(&models.Post{ID: 1, IsLocked: true}, nil)

		_, err := svc.AddReply(ctx, 5, 1, &dto.CreateReplyRequest{Content: "hi"})
		assert.ErrorIs(t, err, apperrors.ErrPostLocked)
		postRepo.AssertNotCalled(t, "AddReply")
	})
}

func TestToggleLike(t *testing.T) {
	ctx := context.Background()

	t.Run("first toggle likes", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := newPostService(postRepo, new(MockCategoryRepository))

		postRepo.On("GetByID", ctx, int64(1)).Return(&models.Post{ID: 1, LikeCount: 2}, nil)
		postRepo.On("ToggleLike", ctx, int64(1), int64(5)).Return(true, nil)

		liked, count, err := svc.ToggleLike(ctx, 5, 1)
		require.NoError(t, err)
		assert.True(t, liked)
		assert.Equal(t, 3, count)
	})

	t.Run("second toggle unlikes", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := newPostService(postRepo, new(MockCategoryRepository))

		postRepo.On("GetByID", ctx, int64(1)).Return(&models.Post{ID: 1, LikeCount: 3}, nil)
		postRepo.On("ToggleLike", ctx, int64(1), int64(5)).Return(false, nil)

		liked, count, err := svc.ToggleLike(ctx, 5, 1)
		require.NoError(t, err)
		assert.False(t, liked)
		assert.Equal(t, 2, count)
	})

	t.Run("locked post still accepts likes", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := newPostService(postRepo, new(MockCategoryRepository))

		postRepo.On("GetByID", ctx, int64(1)).Return(&models.Post{ID: 1, IsLocked: true}, nil)
		postRepo.On("ToggleLike", ctx, int64(1), int64(5)).Return(true, nil)

		liked, _, err := svc.ToggleLike(ctx, 5, 1)
		require.NoError(t, err)
		assert.True(t, liked)
	})

	t.Run("deleted post cannot be liked", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := newPostService(postRepo, new(MockCategoryRepository))

		postRepo.On("GetByID", ctx, int64(1)).Return(nil, apperrors.ErrPostNotFound)

		_, _, err := svc.ToggleLike(ctx, 5, 1)
		assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
		postRepo.AssertNotCalled(t, "ToggleLike")
	})
}
