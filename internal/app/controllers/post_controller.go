package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emrekoc/schoolforum/internal/app/models"
	"github.com/emrekoc/schoolforum/internal/app/models/dto"
	"github.com/emrekoc/schoolforum/internal/app/repositories"
	"github.com/emrekoc/schoolforum/internal/app/services"
	"github.com/emrekoc/schoolforum/internal/middleware"
	"github.com/emrekoc/schoolforum/internal/pkg/helpers"
)

// PostController handles post operations
type PostController struct {
	postService services.PostService
}

// NewPostController creates a new PostController
func NewPostController(postService services.PostService) *PostController {
	return &PostController{
		postService: postService,
	}
}

func parsePostID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid post ID"))
		return 0, false
	}
	return id, true
}

// actor pulls the caller's identity out of the request context
func actor(ctx *gin.Context) (int64, models.Role, bool) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
		return 0, "", false
	}
	role, ok := middleware.CurrentUserRole(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
		return 0, "", false
	}
	return userID, role, true
}

// ListPosts retrieves posts with filtering, sorting and pagination
// @Summary List posts
// @Description Lists active posts. Pinned posts sort first. Supports category/author filters and title/content search.
// @Tags posts
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Param category query int false "Filter by category ID"
// @Param author query int false "Filter by author ID"
// @Param search query string false "Search in title and content"
// @Param sortBy query string false "Sort key: createdAt, views or title"
// @Param sortOrder query string false "asc or desc"
// @Success 200 {object} dto.PostListResponse
// @Router /posts [get]
func (c *PostController) ListPosts(ctx *gin.Context) {
	page, limit := helpers.ParsePaginationParams(ctx)

	filter := repositories.PostFilter{
		SortBy:    ctx.Query("sortBy"),
		SortOrder: ctx.Query("sortOrder"),
	}
	if v := ctx.Query("category"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid category filter"))
			return
		}
		filter.CategoryID = &id
	}
	if v := ctx.Query("author"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid author filter"))
			return
		}
		filter.AuthorID = &id
	}
	if v := ctx.Query("search"); v != "" {
		filter.Search = &v
	}

	posts, total, err := c.postService.List(ctx.Request.Context(), filter, page, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PostListResponse{
		Posts:       posts,
		TotalPages:  helpers.TotalPages(total, limit),
		CurrentPage: page,
		Total:       total,
	})
}

// GetPost retrieves a post by ID and counts the view
// @Summary Get post by ID
// @Description Returns the post with replies and likes. Each successful fetch increments the view counter once.
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} dto.PostResponse
// @Failure 404 {object} dto.ErrorResponse "Post not found or deleted"
// @Router /posts/{id} [get]
func (c *PostController) GetPost(ctx *gin.Context) {
	id, ok := parsePostID(ctx)
	if !ok {
		return
	}

	post, err := c.postService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PostResponse{Post: post})
}

// CreatePost creates a new post
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePostRequest true "Post data"
// @Success 201 {object} dto.PostResponse
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Router /posts [post]
func (c *PostController) CreatePost(ctx *gin.Context) {
	userID, _, ok := actor(ctx)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request body"))
		return
	}

	post, err := c.postService.Create(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.PostResponse{Post: post})
}

// UpdatePost edits a post's title, content and tags
// @Summary Update a post
// @Description Owner or moderator only. Marks the post as edited; views and likes are untouched.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body dto.UpdatePostRequest true "Post data"
// @Success 200 {object} dto.PostResponse
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Post not found or deleted"
// @Router /posts/{id} [put]
func (c *PostController) UpdatePost(ctx *gin.Context) {
	userID, role, ok := actor(ctx)
	if !ok {
		return
	}
	id, ok := parsePostID(ctx)
	if !ok {
		return
	}

	var req dto.UpdatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request body"))
		return
	}

	post, err := c.postService.Update(ctx.Request.Context(), userID, role, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PostResponse{Post: post})
}

// DeletePost soft-deletes a post
// @Summary Delete a post
// @Description Owner or moderator only. Soft delete; the post behaves as absent afterwards.
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Post not found or deleted"
// @Router /posts/{id} [delete]
func (c *PostController) DeletePost(ctx *gin.Context) {
	userID, role, ok := actor(ctx)
	if !ok {
		return
	}
	id, ok := parsePostID(ctx)
	if !ok {
		return
	}

	if err := c.postService.Delete(ctx.Request.Context(), userID, role, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Post deleted"})
}

// AddReply appends a reply to a post
// @Summary Reply to a post
// @Description Fails on locked posts for everyone, moderators included.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body dto.CreateReplyRequest true "Reply content"
// @Success 201 {object} models.Reply
// @Failure 403 {object} dto.ErrorResponse "Post is locked"
// @Failure 404 {object} dto.ErrorResponse "Post not found or deleted"
// @Router /posts/{id}/replies [post]
func (c *PostController) AddReply(ctx *gin.Context) {
	userID, _, ok := actor(ctx)
	if !ok {
		return
	}
	id, ok := parsePostID(ctx)
	if !ok {
		return
	}

	var req dto.CreateReplyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request body"))
		return
	}

	reply, err := c.postService.AddReply(ctx.Request.Context(), userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, reply)
}

// ToggleLike flips the caller's like on a post
// @Summary Toggle like
// @Description Idempotent per user; works on locked posts, not on deleted ones.
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]interface{} "liked flag and like count"
// @Failure 404 {object} dto.ErrorResponse "Post not found or deleted"
// @Router /posts/{id}/like [post]
func (c *PostController) ToggleLike(ctx *gin.Context) {
	userID, _, ok := actor(ctx)
	if !ok {
		return
	}
	id, ok := parsePostID(ctx)
	if !ok {
		return
	}

	liked, likeCount, err := c.postService.ToggleLike(ctx.Request.Context(), userID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"liked": liked, "likeCount": likeCount})
}

// TogglePin flips the pin flag of a post
// @Summary Toggle pin
// @Description Moderators only. Orthogonal to lock state.
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.PostResponse
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Post not found or deleted"
// @Router /posts/{id}/pin [patch]
func (c *PostController) TogglePin(ctx *gin.Context) {
	_, role, ok := actor(ctx)
	if !ok {
		return
	}
	id, ok := parsePostID(ctx)
	if !ok {
		return
	}

	post, err := c.postService.TogglePin(ctx.Request.Context(), role, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PostResponse{Post: post})
}

// ToggleLock flips the lock flag of a post
// @Summary Toggle lock
// @Description Moderators only. Locking blocks new replies but not likes.
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.PostResponse
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Post not found or deleted"
// @Router /posts/{id}/lock [patch]
func (c *PostController) ToggleLock(ctx *gin.Context) {
	_, role, ok := actor(ctx)
	if !ok {
		return
	}
	id, ok := parsePostID(ctx)
	if !ok {
		return
	}

	post, err := c.postService.ToggleLock(ctx.Request.Context(), role, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PostResponse{Post: post})
}
