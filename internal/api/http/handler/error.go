package handler

import (
	"errors"
	"net/http"

	"github.com/dtroode/blogapi/internal/model"
)

// handleError maps service errors to the JSON error envelope. Unknown
// errors become a generic 500 so internals never leak to the caller.
func handleError(w http.ResponseWriter, err error) {
	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, http.StatusBadRequest, validationErr.Message)
		return
	}

	switch {
	case errors.Is(err, model.ErrDuplicate):
		writeError(w, http.StatusBadRequest, "Duplicate field")
	case errors.Is(err, model.ErrInvalidToken):
		writeError(w, http.StatusBadRequest, "invalid token")
	case errors.Is(err, model.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, model.ErrForbidden):
		writeError(w, http.StatusForbidden, "not authorized to modify this resource")
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, "Resource not found")
	case errors.Is(err, model.ErrMailDelivery):
		writeError(w, http.StatusInternalServerError, "email could not be sent")
	default:
		writeError(w, http.StatusInternalServerError, "Server Error")
	}
}
