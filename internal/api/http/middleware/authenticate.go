package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/blogapi/internal/logger"
	"github.com/dtroode/blogapi/internal/model"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "token"

const notAuthorizedMessage = "Not authorized to access this route"

// TokenParser resolves user IDs from session tokens.
type TokenParser interface {
	ParseSessionToken(token string) (uuid.UUID, error)
}

// Authenticate validates session tokens and injects the resolved user into
// the request context. Requests whose token does not resolve to an existing
// user are rejected.
type Authenticate struct {
	tokenParser    TokenParser
	userStore      model.UserStore
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenParser TokenParser, userStore model.UserStore, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{
		tokenParser:    tokenParser,
		userStore:      userStore,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Handle extracts the session token from the Authorization header or the
// token cookie, verifies it and resolves the user. Every failure mode
// collapses to the same 401 response.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := extractToken(r)
		if tokenString == "" {
			writeUnauthorized(w)
			return
		}

		userID, err := m.tokenParser.ParseSessionToken(tokenString)
		if err != nil {
			writeUnauthorized(w)
			return
		}

		// Fail closed: a valid token whose user has since been deleted
		// does not authenticate.
		user, err := m.userStore.GetByID(r.Context(), userID)
		if err != nil {
			writeUnauthorized(w)
			return
		}

		ctx := m.contextManager.SetUserToContext(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   notAuthorizedMessage,
	})
}
