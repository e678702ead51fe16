package services

import (
	"context"

	"github.com/emrekoc/schoolforum/internal/app/models"
	"github.com/emrekoc/schoolforum/internal/app/models/dto"
	"github.com/emrekoc/schoolforum/internal/app/repositories"
)

// AuthService handles registration and login
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
}

// UserService handles user profile and administration operations
type UserService interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.User, error)
	List(ctx context.Context, actorRole models.Role, page, limit int) ([]models.User, int64, error)
	SetActive(ctx context.Context, actorRole models.Role, userID int64, active bool) error
}

// PostService handles the post content lifecycle
type PostService interface {
	Create(ctx context.Context, authorID int64, req *dto.CreatePostRequest) (*models.Post, error)
	Get(ctx context.Context, id int64) (*models.Post, error)
	List(ctx context.Context, filter repositories.PostFilter, page, limit int) ([]models.Post, int64, error)
	Update(ctx context.Context, actorID int64, actorRole models.Role, postID int64, req *dto.UpdatePostRequest) (*models.Post, error)
	Delete(ctx context.Context, actorID int64, actorRole models.Role, postID int64) error
	TogglePin(ctx context.Context, actorRole models.Role, postID int64) (*models.Post, error)
	ToggleLock(ctx context.Context, actorRole models.Role, postID int64) (*models.Post, error)
	AddReply(ctx context.Context, actorID, postID int64, req *dto.CreateReplyRequest) (*models.Reply, error)
	ToggleLike(ctx context.Context, actorID, postID int64) (liked bool, likeCount int, err error)
}

// CategoryService handles the category lifecycle
type CategoryService interface {
	GetAll(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	Create(ctx context.Context, actorID int64, actorRole models.Role, req *dto.CreateCategoryRequest) (*models.Category, error)
	Update(ctx context.Context, actorRole models.Role, id int64, req *dto.UpdateCategoryRequest) (*models.Category, error)
	Delete(ctx context.Context, actorRole models.Role, id int64) error
}
