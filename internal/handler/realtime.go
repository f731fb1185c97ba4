package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dangerclosesec/apmap/internal/realtime"
	"github.com/dangerclosesec/apmap/internal/service"
	chmw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// RealtimeHandler upgrades authenticated requests to the event websocket
type RealtimeHandler struct {
	hub           *realtime.Hub
	upgrader      *realtime.Upgrader
	organizations *service.OrganizationService
}

func NewRealtimeHandler(hub *realtime.Hub, upgrader *realtime.Upgrader, organizations *service.OrganizationService) *RealtimeHandler {
	return &RealtimeHandler{
		hub:           hub,
		upgrader:      upgrader,
		organizations: organizations,
	}
}

func (h *RealtimeHandler) Serve(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	err := h.upgrader.Serve(h.hub, w, r, userID, h.authorizer(userID))
	if err == nil {
		return
	}

	// A failed upgrade has already answered the request
	if errors.Is(err, realtime.ErrHubStopped) {
		slog.WarnContext(r.Context(), "Websocket rejected, hub stopped", "requestID", chmw.GetReqID(r.Context()))
		return
	}
	slog.WarnContext(r.Context(), "Websocket upgrade failed", "error", err, "requestID", chmw.GetReqID(r.Context()))
}

// authorizer admits a client to an organization's events only while its
// user belongs to that organization
func (h *RealtimeHandler) authorizer(userID uuid.UUID) realtime.Authorizer {
	return func(ctx context.Context, orgID uuid.UUID) bool {
		member, err := h.organizations.IsMember(ctx, userID, orgID)
		if err != nil {
			slog.WarnContext(ctx, "Membership check failed", "user", userID.String(), "error", err)
			return false
		}
		return member
	}
}
