package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/dtroode/blogapi/internal/logger"
	"github.com/dtroode/blogapi/internal/model"
)

// CommentService defines the comment operations the comment handler exposes.
type CommentService interface {
	Create(ctx context.Context, ownerID, postID uuid.UUID, content string) (model.Comment, error)
	List(ctx context.Context, postID *uuid.UUID) ([]model.Comment, error)
	Get(ctx context.Context, id uuid.UUID) (model.CommentDetail, error)
	Update(ctx context.Context, actor model.User, id uuid.UUID, content string) (model.Comment, error)
	Delete(ctx context.Context, actor model.User, id uuid.UUID) error
}

// Comment handles HTTP endpoints for comments.
type Comment struct {
	service        CommentService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewComment creates a new Comment handler.
func NewComment(service CommentService, contextManager model.ContextManager, logger *logger.Logger) *Comment {
	return &Comment{
		service:        service,
		contextManager: contextManager,
		logger:         logger,
	}
}

type createCommentRequest struct {
	Content string `json:"content"`
}

type updateCommentRequest struct {
	Content string `json:"content"`
}

// List returns all comments. Mounted under a post it returns only that
// post's comments.
func (h *Comment) List(w http.ResponseWriter, r *http.Request) {
	var postID *uuid.UUID
	if raw, ok := mux.Vars(r)["postId"]; ok {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusNotFound, "Resource not found with id: "+raw)
			return
		}
		postID = &id
	}

	comments, err := h.service.List(r.Context(), postID)
	if err != nil {
		handleError(w, err)
		return
	}

	writeList(w, len(comments), comments)
}

// Get returns a single comment with post title and author name resolved.
func (h *Comment) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	detail, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	writeData(w, http.StatusOK, detail)
}

// Create adds a comment to the post named in the path.
func (h *Comment) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	postID, ok := pathID(w, r, "postId")
	if !ok {
		return
	}

	var req createCommentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	comment, err := h.service.Create(r.Context(), user.ID, postID, req.Content)
	if err != nil {
		handleError(w, err)
		return
	}

	writeData(w, http.StatusCreated, comment)
}

// Update changes a comment's content.
func (h *Comment) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req updateCommentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	comment, err := h.service.Update(r.Context(), user, id, req.Content)
	if err != nil {
		handleError(w, err)
		return
	}

	writeData(w, http.StatusOK, comment)
}

// Delete removes a comment.
func (h *Comment) Delete(w http.ResponseWriter, r *http.Request) {
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
