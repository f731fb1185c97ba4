package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dangerclosesec/apmap/internal/domain"
	"github.com/dangerclosesec/apmap/internal/middleware"
	"github.com/go-chi/chi/v5"
	chmw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const maxBodyBytes = 1 << 20

type ErrorBody struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

// respondWithError sends an error response with a message
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: ErrorBody{Message: message, Status: code}})
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	// Sets content type header
	w.Header().Set("Content-Type", "application/json")

	// Sets the HTTP status code
	w.WriteHeader(code)

	// Encodes the response
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// statusFor maps an error category to its HTTP status. Conflicts answer
// 400 like every other client mistake.
func statusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, true
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, true
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, true
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, domain.ErrConflict):
		return http.StatusBadRequest, true
	case errors.Is(err, domain.ErrDependency):
		return http.StatusInternalServerError, true
	}
	return 0, false
}

// writeError answers with the client-facing message of a categorized error.
// Anything else is logged and hidden behind a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code, ok := statusFor(err)
	if !ok {
		slog.ErrorContext(r.Context(), "Unexpected error", "error", err, "path", r.URL.Path, "requestID", chmw.GetReqID(r.Context()))
		respondWithError(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	if code >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "Dependency failure", "error", err, "path", r.URL.Path, "requestID", chmw.GetReqID(r.Context()))
	}
	respondWithError(w, code, domain.Message(err, http.StatusText(code)))
}

// decodeJSON reads the request body into dst
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	defer r.Body.Close()

	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return false
	}
	return true
}

// currentUser returns the authenticated caller. Routes using it sit behind
// middleware.AuthMiddleware, so a miss means the router is misconfigured.
func currentUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := middleware.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Access token required")
		return uuid.Nil, false
	}
	return id.UserID, true
}

// optionalUser returns the caller's id, or nil for anonymous requests
func optionalUser(r *http.Request) *uuid.UUID {
	id, ok := middleware.FromContext(r.Context())
	if !ok {
		return nil
	}
	return &id.UserID
}

// uuidParam parses a UUID route parameter. Malformed ids cannot name an
// existing row, so they answer 404 with the given message.
func uuidParam(w http.ResponseWriter, r *http.Request, name, notFound string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		respondWithError(w, http.StatusNotFound, notFound)
		return uuid.Nil, false
	}
	return id, true
}
