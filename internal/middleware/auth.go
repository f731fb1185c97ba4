// internal/middleware/auth.go
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dangerclosesec/apmap/internal/auth"
	"github.com/google/uuid"
)

type identityContextKey string

const identityKey identityContextKey = "apmap_identity"

// Identity is the authenticated caller decoded from the bearer token. It
// carries no organization; membership is read from the database.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

// WithIdentity returns a copy of ctx carrying id
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// FromContext returns the caller set by one of the auth middlewares
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// AuthMiddleware rejects requests without a valid bearer token. A missing
// token answers 401 and an invalid or expired one 403.
func AuthMiddleware(tokenManager *auth.TokenManager) func(http.Handler) http.Handler {
	return requireToken(tokenManager, bearerToken)
}

// QueryTokenAuth is AuthMiddleware for clients that cannot set headers,
// such as browser websockets. The token is read from ?token= first.
func QueryTokenAuth(tokenManager *auth.TokenManager) func(http.Handler) http.Handler {
	return requireToken(tokenManager, func(r *http.Request) string {
		if token := r.URL.Query().Get("token"); token != "" {
			return token
		}
		return bearerToken(r)
	})
}

// OptionalAuth attaches the caller when a valid token is present and lets
// every other request through anonymously.
func OptionalAuth(tokenManager *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			id, err := identify(tokenManager, token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

func requireToken(tokenManager *auth.TokenManager, extract func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extract(r)
			if token == "" {
				respondWithError(w, http.StatusUnauthorized, "Access token required")
				return
			}

			id, err := identify(tokenManager, token)
			if err != nil {
				respondWithError(w, http.StatusForbidden, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

func identify(tokenManager *auth.TokenManager, token string) (Identity, error) {
	claims, err := tokenManager.Validate(token)
	if err != nil {
		return Identity{}, err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return Identity{}, auth.ErrInvalidToken
	}

	return Identity{UserID: userID, Email: claims.Email}, nil
}

// bearerToken returns the token of an "Authorization: Bearer <token>" header
func bearerToken(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

type errorBody struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// respondWithError sends a JSON error response
func respondWithError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]errorBody{"error": {Message: message, Status: code}})
}
