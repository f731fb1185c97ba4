package audit

import (
	"context"
	"net/http"
	"time"

	"github.com/dangerclosesec/apmap/internal/model"
	"github.com/dangerclosesec/apmap/internal/repository"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

//go:generate mockgen -source=./logger.go -destination=../mocks/mock_audit_logger.go -package=mocks Logger

// Entry describes one credential access
type Entry struct {
	AccessPointID  uuid.UUID
	ActorID        *uuid.UUID
	OrganizationID *uuid.UUID
	Action         string
	Context        map[string]interface{}
}

// Logger defines the interface for auditing credential access
type Logger interface {
	// LogCredentialAccess records a password being revealed or changed
	LogCredentialAccess(ctx context.Context, entry Entry) error
}

// RequestInfo is the HTTP request metadata attached to audit records
type RequestInfo struct {
	RequestID string
	ClientIP  string
	UserAgent string
}

type requestInfoKey struct{}

// WithRequest stores r's metadata in ctx for later audit records
func WithRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, requestInfoKey{}, RequestInfo{
		RequestID: middleware.GetReqID(ctx),
		ClientIP:  r.RemoteAddr,
		UserAgent: r.UserAgent(),
	})
}

// RequestFromContext returns the metadata stored by WithRequest
func RequestFromContext(ctx context.Context) (RequestInfo, bool) {
	info, ok := ctx.Value(requestInfoKey{}).(RequestInfo)
	return info, ok
}

// Middleware attaches request metadata for audit records. It must run
// after chi's RequestID and RealIP middleware.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithRequest(r.Context(), r)))
	})
}

// Ensure RepositoryLogger implements the Logger interface
var _ Logger = (*RepositoryLogger)(nil)

// RepositoryLogger persists audit records to the database
type RepositoryLogger struct {
	repo repository.CredentialAuditLogRepositoryIface
	now  func() time.Time
}

// NewRepositoryLogger creates a new RepositoryLogger
func NewRepositoryLogger(repo repository.CredentialAuditLogRepositoryIface) *RepositoryLogger {
	return &RepositoryLogger{
		repo: repo,
		now:  time.Now,
	}
}

// LogCredentialAccess implements Logger.LogCredentialAccess
func (l *RepositoryLogger) LogCredentialAccess(ctx context.Context, entry Entry) error {
	log := &model.CredentialAuditLog{
		AccessPointID:  entry.AccessPointID,
		ActorID:        entry.ActorID,
		OrganizationID: entry.OrganizationID,
		Action:         entry.Action,
		CreatedAt:      l.now().UTC(),
	}
	if entry.Context != nil {
		log.Context = entry.Context
	}

	if info, ok := RequestFromContext(ctx); ok {
		log.RequestID = info.RequestID
		log.ClientIP = info.ClientIP
		log.UserAgent = info.UserAgent
	}

	return l.repo.Create(ctx, log)
}

// NoOpLogger is a logger that does nothing
type NoOpLogger struct{}

// LogCredentialAccess implements Logger.LogCredentialAccess
func (NoOpLogger) LogCredentialAccess(ctx context.Context, entry Entry) error {
	return nil
}
