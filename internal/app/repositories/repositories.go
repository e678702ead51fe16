package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emrekoc/schoolforum/internal/app/models"
)

// IUserRepository defines the interface for user-related database operations
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	UpdateProfile(ctx context.Context, userID int64, firstName, lastName string, grade *int, subject *string) error
	UpdateLastLogin(ctx context.Context, userID int64) error
	SetActive(ctx context.Context, userID int64, active bool) error
	List(ctx context.Context, page, limit int) ([]models.User, int64, error)
}

// ICategoryRepository defines the interface for category database operations
type ICategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	GetAll(ctx context.Context) ([]models.Category, error)
	NameExists(ctx context.Context, name string) (bool, error)
	Update(ctx context.Context, category *models.Category) error
	SoftDelete(ctx context.Context, id int64) error
}

// IPostRepository defines the interface for post database operations
type IPostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	List(ctx context.Context, filter PostFilter, page, limit int) ([]models.Post, int64, error)
	Update(ctx context.Context, post *models.Post) error
	SoftDelete(ctx context.Context, id int64) error
	SetPinned(ctx context.Context, id int64, pinned bool) error
	SetLocked(ctx context.Context, id int64, locked bool) error
	IncrementViews(ctx context.Context, id int64) error
	AddReply(ctx context.Context, reply *models.Reply) error
	ToggleLike(ctx context.Context, postID, userID int64) (liked bool, err error)
}

// PostFilter carries the supported post listing filters and sort options.
type PostFilter struct {
	CategoryID *int64
	AuthorID   *int64
	Search     *string
	SortBy     string
	SortOrder  string
}

// Repositories bundles all repositories for dependency injection
type Repositories struct {
	User     *UserRepository
	Category *CategoryRepository
	Post     *PostRepository
}

// NewRepositories creates all repositories backed by the given pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:     NewUserRepository(db),
		Category: NewCategoryRepository(db),
		Post:     NewPostRepository(db),
	}
}
