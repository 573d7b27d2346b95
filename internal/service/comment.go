package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/blogapi/internal/logger"
	"github.com/dtroode/blogapi/internal/model"
)

// Comment manages comments on posts.
type Comment struct {
	commentStore model.CommentStore
	postStore    model.PostStore
	logger       *logger.Logger
}

func NewComment(
	commentStore model.CommentStore,
	postStore model.PostStore,
	logger *logger.Logger,
) *Comment {
	return &Comment{
		commentStore: commentStore,
		postStore:    postStore,
		logger:       logger,
	}
}

func validateContent(content string) error {
	if len(content) < model.MinCommentLength {
		return model.NewValidationError("Comment minlength: %d", model.MinCommentLength)
	}
	return nil
}

// Create adds a comment to an existing post.
func (s *Comment) Create(ctx context.Context, ownerID, postID uuid.UUID, content string) (model.Comment, error) {
	if err := validateContent(content); err != nil {
		return model.Comment{}, err
	}

	if _, err := s.postStore.GetByID(ctx, postID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Comment{}, model.ErrNotFound
		}
		return model.Comment{}, fmt.Errorf("failed to get post by id: %w", err)
	}

	now := time.Now()
	comment, err := s.commentStore.Create(ctx, model.Comment{
		ID:        uuid.New(),
		Content:   content,
		PostID:    postID,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return model.Comment{}, fmt.Errorf("failed to create comment: %w", err)
	}

	s.logger.Info("Comment service: comment created",
		"comment_id", comment.ID,
		"post_id", postID,
		"owner_id", ownerID)

	return comment, nil
}

// List returns all comments, or the comments of one post when postID is set.
func (s *Comment) List(ctx context.Context, postID *uuid.UUID) ([]model.Comment, error) {
	var (
		comments []model.Comment
		err      error
	)
	if postID != nil {
		comments, err = s.commentStore.ListByPost(ctx, *postID)
	} else {
		comments, err = s.commentStore.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return comments, nil
}

// Get returns a single comment with its post title and owner name resolved.
func (s *Comment) Get(ctx context.Context, id uuid.UUID) (model.CommentDetail, error) {
	detail, err := s.commentStore.GetDetailByID(ctx, id)
	if err != nil {
		return model.CommentDetail{}, fmt.Errorf("failed to get comment by id: %w", err)
	}

	return detail, nil
}

// Update changes the content of a comment. Only the owner may update.
func (s *Comment) Update(ctx context.Context, actor model.User, id uuid.UUID, content string) (model.Comment, error) {
	comment, err := s.commentStore.GetByID(ctx, id)
	if err != nil {
		return model.Comment{}, fmt.Errorf("failed to get comment by id: %w", err)
	}

	if comment.OwnerID != actor.ID {
		return model.Comment{}, model.ErrForbidden
	}

	if err := validateContent(content); err != nil {
		return model.Comment{}, err
	}

	comment, err = s.commentStore.Update(ctx, id, model.CommentUpdate{Content: &content})
	if err != nil {
		return model.Comment{}, fmt.Errorf("failed to update comment: %w", err)
	}

	return comment, nil
}

// Delete removes a comment. Only the owner may delete.
func (s *Comment) Delete(ctx context.Context, actor model.User, id uuid.UUID) error {
	comment, err := s.commentStore.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get comment by id: %w", err)
	}

	if comment.OwnerID != actor.ID {
		return model.ErrForbidden
	}

	if err := s.commentStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return nil
}
