package models

import "time"

// Post represents a forum post based on the 'posts' table
type Post struct {
	ID         int64      `json:"id" db:"id"`
	Title      string     `json:"title" db:"title"`
	Content    string     `json:"content" db:"content"`
	AuthorID   int64      `json:"authorId" db:"author_id"`     // Immutable after creation
	CategoryID int64      `json:"categoryId" db:"category_id"` // Immutable after creation
	Tags       []string   `json:"tags" db:"tags"`
	Views      int64      `json:"views" db:"views"` // Monotonic view counter
	IsPinned   bool       `json:"isPinned" db:"is_pinned"`
	IsLocked   bool       `json:"isLocked" db:"is_locked"`
	IsActive   bool       `json:"isActive" db:"is_active"` // Soft-delete flag; deleted posts behave as absent
	IsEdited   bool       `json:"isEdited" db:"is_edited"`
	EditedAt   *time.Time `json:"editedAt,omitempty" db:"edited_at"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time  `json:"updatedAt" db:"updated_at"`

	// Related entities
	Author    *User     `json:"author,omitempty"`
	Category  *Category `json:"category,omitempty"`
	Replies   []Reply   `json:"replies"`
	Likes     []int64   `json:"likes"` // User IDs, set semantics (no duplicates)
	LikeCount int       `json:"likeCount"`
}

// Reply represents a reply embedded in a post's discussion thread.
// Replies are immutable once created.
type Reply struct {
	ID        int64     `json:"id" db:"id"`
	PostID    int64     `json:"postId" db:"post_id"`
	AuthorID  int64     `json:"authorId" db:"author_id"`
	Content   string    `json:"content" db:"content"`
	Likes     int       `json:"likes" db:"likes"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	Author *User `json:"author,omitempty"`
}
