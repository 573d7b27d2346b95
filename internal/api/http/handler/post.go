package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/dtroode/blogapi/internal/logger"
	"github.com/dtroode/blogapi/internal/model"
	"github.com/dtroode/blogapi/internal/service"
)

// PostService defines the post operations the post handler exposes.
type PostService interface {
	Create(ctx context.Context, ownerID uuid.UUID, params service.CreatePostParams) (model.Post, error)
	List(ctx context.Context) ([]model.Post, error)
	Get(ctx context.Context, id uuid.UUID) (model.Post, error)
	Update(ctx context.Context, actor model.User, id uuid.UUID, params service.UpdatePostParams) (model.Post, error)
	Delete(ctx context.Context, actor model.User, id uuid.UUID) error
	UploadPhoto(ctx context.Context, actor model.User, id uuid.UUID, reader io.Reader) (model.Post, error)
	DownloadPhoto(ctx context.Context, id uuid.UUID) (io.ReadCloser, error)
}

// Post handles HTTP endpoints for blog posts.
type Post struct {
	service        PostService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewPost creates a new Post handler.
func NewPost(service PostService, contextManager model.ContextManager, logger *logger.Logger) *Post {
	return &Post{
		service:        service,
		contextManager: contextManager,
		logger:         logger,
	}
}

type createPostRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

type updatePostRequest struct {
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Tags    *[]string `json:"tags"`
}

// List returns all posts.
func (h *Post) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.List(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	writeList(w, len(posts), posts)
}

// Get returns a single post.
func (h *Post) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	post, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	writeData(w, http.StatusOK, post)
}

// Create stores a new post owned by the authenticated user.
func (h *Post) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	var req createPostRequest
	if !decodeBody(w, r, &req) {
		return
	}

	post, err := h.service.Create(r.Context(), user.ID, service.CreatePostParams{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	writeData(w, http.StatusCreated, post)
}

// Update applies a partial update to a post.
func (h *Post) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req updatePostRequest
	if !decodeBody(w, r, &req) {
		return
	}

	post, err := h.service.Update(r.Context(), user, id, service.UpdatePostParams{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	writeData(w, http.StatusOK, post)
}

// Delete removes a post.
func (h *Post) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), user, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadPhoto stores the request body as the post's cover photo.
func (h *Post) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	post, err := h.service.UploadPhoto(r.Context(), user, id, r.Body)
	if err != nil {
		handleError(w, err)
		return
	}

	writeData(w, http.StatusOK, post)
}

// DownloadPhoto streams the post's cover photo.
func (h *Post) DownloadPhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	reader, err := h.service.DownloadPhoto(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Error("Post handler: failed to stream photo",
			"post_id", id,
			"error", err.Error())
	}
}
