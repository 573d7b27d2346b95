package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MaxTitleLength is the maximum accepted post title length.
const MaxTitleLength = 100

// Post represents a blog post. Title is unique across all posts; the slug is
// derived from the title on create and title updates.
type Post struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	PhotoKey  *string   `json:"photo,omitempty"`
	OwnerID   uuid.UUID `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostUpdate is a partial update of mutable post fields. Nil fields are
// left untouched.
type PostUpdate struct {
	Title    *string
	Slug     *string
	Content  *string
	Tags     *[]string
	PhotoKey *string
}

// PostStore defines persistence operations for posts.
type PostStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (Post, error)
	List(ctx context.Context) ([]Post, error)
	Create(ctx context.Context, post Post) (Post, error)
	Update(ctx context.Context, id uuid.UUID, update PostUpdate) (Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
