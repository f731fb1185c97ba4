package handler

import (
	"net/http"
	"strconv"

	"github.com/dangerclosesec/apmap/internal/service"
	"github.com/google/uuid"
)

// AuditLogHandler serves the credential audit trail of the caller's
// organization
type AuditLogHandler struct {
	organizations *service.OrganizationService
}

// NewAuditLogHandler creates a new audit log handler
func NewAuditLogHandler(organizations *service.OrganizationService) *AuditLogHandler {
	return &AuditLogHandler{
		organizations: organizations,
	}
}

// GetAuditLogs handles requests to retrieve audit logs with filtering
func (h *AuditLogHandler) GetAuditLogs(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	query := service.AuditLogQuery{}

	// Apply filters from query parameters
	if apID := r.URL.Query().Get("access_point_id"); apID != "" {
		id, err := uuid.Parse(apID)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid access point ID")
			return
		}
		query.AccessPointID = &id
	}

	if action := r.URL.Query().Get("action"); action != "" {
		query.Action = action
	}

	// Pagination
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err == nil && limit > 0 {
			query.Limit = limit
		}
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err == nil && offset >= 0 {
			query.Offset = offset
		}
	}

	page, err := h.organizations.ListAuditLogs(r.Context(), userID, query)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, page)
}
