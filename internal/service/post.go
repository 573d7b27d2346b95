package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/dtroode/blogapi/internal/logger"
	"github.com/dtroode/blogapi/internal/model"
)

// Post manages blog posts and their cover photos.
type Post struct {
	postStore model.PostStore
	storage   model.Storage
	logger    *logger.Logger
}

func NewPost(
	postStore model.PostStore,
	storage model.Storage,
	logger *logger.Logger,
) *Post {
	return &Post{
		postStore: postStore,
		storage:   storage,
		logger:    logger,
	}
}

// CreatePostParams holds input for post creation.
type CreatePostParams struct {
	Title   string
	Content string
	Tags    []string
}

// UpdatePostParams is a partial post update. Nil fields are left untouched.
type UpdatePostParams struct {
	Title   *string
	Content *string
	Tags    *[]string
}

func validateTitle(title string) error {
	if title == "" {
		return model.NewValidationError("Title must be required")
	}
	if len(title) > model.MaxTitleLength {
		return model.NewValidationError("Title cannot be more than %d characters", model.MaxTitleLength)
	}
	return nil
}

// Create stores a new post owned by ownerID. The slug is derived from the
// title.
func (s *Post) Create(ctx context.Context, ownerID uuid.UUID, params CreatePostParams) (model.Post, error) {
	if err := validateTitle(params.Title); err != nil {
		return model.Post{}, err
	}
	if params.Content == "" {
		return model.Post{}, model.NewValidationError("Content must be required")
	}
	if len(params.Tags) == 0 {
		return model.Post{}, model.NewValidationError("Tags must be required")
	}

	now := time.Now()
	post, err := s.postStore.Create(ctx, model.Post{
		ID:        uuid.New(),
		Title:     params.Title,
		Slug:      slug.Make(params.Title),
		Content:   params.Content,
		Tags:      params.Tags,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return model.Post{}, fmt.Errorf("failed to create post: %w", err)
	}

	s.logger.Info("Post service: post created",
		"post_id", post.ID,
		"owner_id", ownerID)

	return post, nil
}

// List returns all posts, newest first.
func (s *Post) List(ctx context.Context) ([]model.Post, error) {
	posts, err := s.postStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return posts, nil
}

// Get returns a single post by id.
func (s *Post) Get(ctx context.Context, id uuid.UUID) (model.Post, error) {
	post, err := s.postStore.GetByID(ctx, id)
	if err != nil {
		return model.Post{}, fmt.Errorf("failed to get post by id: %w", err)
	}

	return post, nil
}

func canMutatePost(actor model.User, post model.Post) bool {
	return post.OwnerID == actor.ID || actor.Role == model.RoleAdmin
}

// Update applies a partial update to a post. Only the owner or an admin may
// update; a title change recomputes the slug.
func (s *Post) Update(ctx context.Context, actor model.User, id uuid.UUID, params UpdatePostParams) (model.Post, error) {
	post, err := s.postStore.GetByID(ctx, id)
	if err != nil {
		return model.Post{}, fmt.Errorf("failed to get post by id: %w", err)
	}

	if !canMutatePost(actor, post) {
		return model.Post{}, model.ErrForbidden
	}

	update := model.PostUpdate{
		Title:   params.Title,
		Content: params.Content,
		Tags:    params.Tags,
	}
	if params.Title != nil {
		if err := validateTitle(*params.Title); err != nil {
			return model.Post{}, err
		}
		newSlug := slug.Make(*params.Title)
		update.Slug = &newSlug
	}

	post, err = s.postStore.Update(ctx, id, update)
	if err != nil {
		return model.Post{}, fmt.Errorf("failed to update post: %w", err)
	}

	return post, nil
}

// Delete removes a post. Only the owner or an admin may delete. The cover
// photo object is removed as well when present.
func (s *Post) Delete(ctx context.Context, actor model.User, id uuid.UUID) error {
	post, err := s.postStore.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get post by id: %w", err)
	}

	if !canMutatePost(actor, post) {
		return model.ErrForbidden
	}

	if err := s.postStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	if post.PhotoKey != nil {
		if err := s.storage.Delete(ctx, *post.PhotoKey); err != nil {
			s.logger.Error("Post service: failed to delete photo object",
				"post_id", id,
				"key", *post.PhotoKey,
				"error", err.Error())
		}
	}

	return nil
}

// UploadPhoto stores a cover photo for a post and records its object key.
func (s *Post) UploadPhoto(ctx context.Context, actor model.User, id uuid.UUID, reader io.Reader) (model.Post, error) {
	post, err := s.postStore.GetByID(ctx, id)
	if err != nil {
		return model.Post{}, fmt.Errorf("failed to get post by id: %w", err)
	}

	if !canMutatePost(actor, post) {
		return model.Post{}, model.ErrForbidden
	}

	key := fmt.Sprintf("posts/%s/photo", id)
	if err := s.storage.Upload(ctx, key, reader); err != nil {
		return model.Post{}, fmt.Errorf("failed to upload photo: %w", err)
	}

	post, err = s.postStore.Update(ctx, id, model.PostUpdate{PhotoKey: &key})
	if err != nil {
		return model.Post{}, fmt.Errorf("failed to record photo key: %w", err)
	}

	return post, nil
}

// DownloadPhoto streams the cover photo of a post.
func (s *Post) DownloadPhoto(ctx context.Context, id uuid.UUID) (io.ReadCloser, error) {
	post, err := s.postStore.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}

	if post.PhotoKey == nil {
		return nil, model.ErrNotFound
	}

	reader, err := s.storage.Download(ctx, *post.PhotoKey)
	if err != nil {
		return nil, fmt.Errorf("failed to download photo: %w", err)
	}

	return reader, nil
}
