package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/dtroode/blogapi/internal/model"
)

// Authorize rejects authenticated requests whose user role is not in the
// allowed set. It must run after Authenticate.
type Authorize struct {
	contextManager model.ContextManager
	allowed        []model.Role
}

// NewAuthorize creates an Authorize middleware admitting the given roles.
func NewAuthorize(contextManager model.ContextManager, roles ...model.Role) *Authorize {
	return &Authorize{
		contextManager: contextManager,
		allowed:        roles,
	}
}

// Handle checks the resolved user's role against the allowed set.
func (m *Authorize) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := m.contextManager.GetUserFromContext(r.Context())
		if !ok {
			writeUnauthorized(w)
			return
		}

		if !user.Role.In(m.allowed...) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]any{
				"success": false,
				"error":   "user role is not authorized to access this route",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
