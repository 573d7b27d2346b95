package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MinCommentLength is the minimum accepted comment content length.
const MinCommentLength = 6

// Comment represents a comment on a post.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	PostID    uuid.UUID `json:"post"`
	OwnerID   uuid.UUID `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommentDetail is a comment with its post title and owner name resolved.
type CommentDetail struct {
	Comment
	PostTitle string `json:"post_title"`
	OwnerName string `json:"owner_name"`
}

// CommentUpdate is a partial update of mutable comment fields.
type CommentUpdate struct {
	Content *string
}

// CommentStore defines persistence operations for comments.
type CommentStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (Comment, error)
	GetDetailByID(ctx context.Context, id uuid.UUID) (CommentDetail, error)
	List(ctx context.Context) ([]Comment, error)
	ListByPost(ctx context.Context, postID uuid.UUID) ([]Comment, error)
	Create(ctx context.Context, comment Comment) (Comment, error)
	Update(ctx context.Context, id uuid.UUID, update CommentUpdate) (Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
