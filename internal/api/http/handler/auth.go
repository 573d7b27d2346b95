package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/dtroode/blogapi/internal/api/http/middleware"
	"github.com/dtroode/blogapi/internal/logger"
	"github.com/dtroode/blogapi/internal/model"
	"github.com/dtroode/blogapi/internal/service"
)

// AuthService defines the account operations the auth handler exposes.
type AuthService interface {
	Register(ctx context.Context, params service.RegisterParams) (model.User, string, error)
	Login(ctx context.Context, username, password string) (model.User, string, error)
	Me(ctx context.Context, userID uuid.UUID) (model.User, error)
	UpdateDetails(ctx context.Context, userID uuid.UUID, name string) (model.User, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) (model.User, string, error)
	ForgotPassword(ctx context.Context, username, resetURLBase string) error
	ResetPassword(ctx context.Context, plaintext, newPassword string) (model.User, string, error)
}

// CookieOptions configures the session cookie set alongside token
// responses.
type CookieOptions struct {
	ExpireDays int
	Secure     bool
}

// Auth handles HTTP endpoints for authentication and account management.
type Auth struct {
	service        AuthService
	contextManager model.ContextManager
	cookie         CookieOptions
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(service AuthService, contextManager model.ContextManager, cookie CookieOptions, logger *logger.Logger) *Auth {
	return &Auth{
		service:        service,
		contextManager: contextManager,
		cookie:         cookie,
		logger:         logger,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type updateDetailsRequest struct {
	Name string `json:"name"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type forgotPasswordRequest struct {
	Username string `json:"username"`
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

// sendTokenResponse sets the session cookie and writes the token envelope.
// The cookie is httpOnly always and secure in production.
func (h *Auth) sendTokenResponse(w http.ResponseWriter, status int, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(time.Duration(h.cookie.ExpireDays) * 24 * time.Hour),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
	})
	writeJSON(w, status, tokenResponse{Success: true, Token: token})
}

// Register creates a user account and returns a session token.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	_, token, err := h.service.Register(r.Context(), service.RegisterParams{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Role:     model.Role(req.Role),
	})
	if err != nil {
		h.logger.Error("Auth handler: registration failed",
			"username", req.Username,
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.sendTokenResponse(w, http.StatusOK, token)
}

// Login verifies credentials and returns a session token.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	_, token, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		handleError(w, err)
		return
	}

	h.sendTokenResponse(w, http.StatusOK, token)
}

// Logout overwrites the session cookie with an expired placeholder. The
// token itself stays valid until its natural expiry.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "none",
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Second),
		HttpOnly: true,
	})
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Me returns the authenticated user.
func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	current, err := h.service.Me(r.Context(), user.ID)
	if err != nil {
		handleError(w, err)
		return
	}

	writeData(w, http.StatusOK, current)
}

// UpdateDetails updates the authenticated user's display name.
func (h *Auth) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	var req updateDetailsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	updated, err := h.service.UpdateDetails(r.Context(), user.ID, req.Name)
	if err != nil {
		handleError(w, err)
		return
	}

	writeData(w, http.StatusOK, updated)
}

// UpdatePassword changes the authenticated user's password and returns a
// fresh session token.
func (h *Auth) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	var req updatePasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	_, token, err := h.service.UpdatePassword(r.Context(), user.ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		handleError(w, err)
		return
	}

	h.sendTokenResponse(w, http.StatusOK, token)
}

// ForgotPassword mails a reset token to the account holder.
func (h *Auth) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	resetURLBase := fmt.Sprintf("%s://%s", scheme, r.Host)

	if err := h.service.ForgotPassword(r.Context(), req.Username, resetURLBase); err != nil {
		handleError(w, err)
		return
	}

	writeData(w, http.StatusOK, "Email sent")
}

// ResetPassword consumes a reset token and sets a new password.
func (h *Auth) ResetPassword(w http.ResponseWriter, r *http.Request) {
	plaintext := mux.Vars(r)["resettoken"]

	var req resetPasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	_, token, err := h.service.ResetPassword(r.Context(), plaintext, req.Password)
	if err != nil {
		handleError(w, err)
		return
	}

	h.sendTokenResponse(w, http.StatusOK, token)
}
