package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/dtroode/blogapi/internal/logger"
	"github.com/dtroode/blogapi/internal/model"
	"github.com/dtroode/blogapi/internal/service"
)

// UserService defines the admin user management operations.
type UserService interface {
	List(ctx context.Context) ([]model.User, error)
	Get(ctx context.Context, id uuid.UUID) (model.User, error)
	Update(ctx context.Context, id uuid.UUID, params service.UpdateUserParams) (model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AccountCreator creates accounts on behalf of an administrator. It is the
// same registration flow the public endpoint uses, minus the session token.
type AccountCreator interface {
	Register(ctx context.Context, params service.RegisterParams) (model.User, string, error)
}

// User handles the admin-only user management endpoints.
type User struct {
	service UserService
	creator AccountCreator
	logger  *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(service UserService, creator AccountCreator, logger *logger.Logger) *User {
	return &User{
		service: service,
		creator: creator,
		logger:  logger,
	}
}

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type updateUserRequest struct {
	Username *string `json:"username"`
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	Password *string `json:"password"`
}

// List returns all users.
func (h *User) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	writeList(w, len(users), users)
}

// Get returns a single user.
func (h *User) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	writeData(w, http.StatusOK, user)
}

// Create creates a user account without issuing a session.
func (h *User) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, _, err := h.creator.Register(r.Context(), service.RegisterParams{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Role:     model.Role(req.Role),
	})
	if err != nil {
		handleError(w, err)
		return
	}

	writeData(w, http.StatusCreated, user)
}

// Update applies a partial update to a user.
func (h *User) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req updateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	params := service.UpdateUserParams{
		Username: req.Username,
		Name:     req.Name,
		Password: req.Password,
	}
	if req.Role != nil {
		role := model.Role(*req.Role)
		params.Role = &role
	}

	user, err := h.service.Update(r.Context(), id, params)
	if err != nil {
		handleError(w, err)
		return
	}

	writeData(w, http.StatusOK, user)
}

// Delete removes a user.
func (h *User) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
