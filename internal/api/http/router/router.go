package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/dtroode/blogapi/internal/api/http/handler"
	"github.com/dtroode/blogapi/internal/api/http/middleware"
	"github.com/dtroode/blogapi/internal/model"
)

// Config carries the handlers and middleware the router mounts.
type Config struct {
	Auth    *handler.Auth
	Post    *handler.Post
	Comment *handler.Comment
	User    *handler.User

	Authenticate *middleware.Authenticate
	Logging      *middleware.Logging

	ContextManager model.ContextManager
}

// New builds the API router. All routes live under /api/v1. Protected
// routes require a session, the /users subtree additionally requires the
// admin role.
func New(cfg Config) http.Handler {
	r := mux.NewRouter()
	r.Use(cfg.Logging.Handle)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public auth routes.
	api.HandleFunc("/auth/register", cfg.Auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", cfg.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", cfg.Auth.Logout).Methods(http.MethodGet)
	api.HandleFunc("/auth/forgotpassword", cfg.Auth.ForgotPassword).Methods(http.MethodPost)
	api.HandleFunc("/auth/resetpassword/{resettoken}", cfg.Auth.ResetPassword).Methods(http.MethodPatch)

	// Auth routes that require a session.
	authPriv := api.PathPrefix("/auth").Subrouter()
	authPriv.Use(cfg.Authenticate.Handle)
	authPriv.HandleFunc("/me", cfg.Auth.Me).Methods(http.MethodGet)
	authPriv.HandleFunc("/updatedetails", cfg.Auth.UpdateDetails).Methods(http.MethodPatch)
	authPriv.HandleFunc("/updatepassword", cfg.Auth.UpdatePassword).Methods(http.MethodPatch)

	// Public read access to posts and comments.
	api.HandleFunc("/posts", cfg.Post.List).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id}", cfg.Post.Get).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id}/photo", cfg.Post.DownloadPhoto).Methods(http.MethodGet)
	api.HandleFunc("/posts/{postId}/comments", cfg.Comment.List).Methods(http.MethodGet)
	api.HandleFunc("/comments", cfg.Comment.List).Methods(http.MethodGet)
	api.HandleFunc("/comments/{id}", cfg.Comment.Get).Methods(http.MethodGet)

	// Mutations require a session.
	priv := api.NewRoute().Subrouter()
	priv.Use(cfg.Authenticate.Handle)
	priv.HandleFunc("/posts", cfg.Post.Create).Methods(http.MethodPost)
	priv.HandleFunc("/posts/{id}", cfg.Post.Update).Methods(http.MethodPatch)
	priv.HandleFunc("/posts/{id}", cfg.Post.Delete).Methods(http.MethodDelete)
	priv.HandleFunc("/posts/{id}/photo", cfg.Post.UploadPhoto).Methods(http.MethodPut)
	priv.HandleFunc("/posts/{postId}/comments", cfg.Comment.Create).Methods(http.MethodPost)
	priv.HandleFunc("/comments/{id}", cfg.Comment.Update).Methods(http.MethodPatch)
	priv.HandleFunc("/comments/{id}", cfg.Comment.Delete).Methods(http.MethodDelete)

	// User management is admin only.
	admin := api.PathPrefix("/users").Subrouter()
	admin.Use(cfg.Authenticate.Handle)
	admin.Use(middleware.NewAuthorize(cfg.ContextManager, model.RoleAdmin).Handle)
	admin.HandleFunc("", cfg.User.List).Methods(http.MethodGet)
	admin.HandleFunc("", cfg.User.Create).Methods(http.MethodPost)
	admin.HandleFunc("/{id}", cfg.User.Get).Methods(http.MethodGet)
	admin.HandleFunc("/{id}", cfg.User.Update).Methods(http.MethodPatch)
	admin.HandleFunc("/{id}", cfg.User.Delete).Methods(http.MethodDelete)

	return cors.New(cors.Options{
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(r)
}
