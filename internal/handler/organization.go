package handler

import (
	"net/http"

	"github.com/dangerclosesec/apmap/internal/model"
	"github.com/dangerclosesec/apmap/internal/service"
	"github.com/go-chi/chi/v5"
)

type OrganizationHandler struct {
	service *service.OrganizationService
}

func NewOrganizationHandler(service *service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{
		service: service,
	}
}

type JoinOrganizationRequest struct {
	Slug string `json:"slug"`
}

type JoinOrganizationResponse struct {
	SuccessResponse
	Organization *model.Organization `json:"organization"`
}

func (h *OrganizationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var input service.CreateOrganizationInput
	if !decodeJSON(w, r, &input) {
		return
	}

	org, err := h.service.Create(r.Context(), userID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, org)
}

// Mine answers null when the caller has no organization
func (h *OrganizationHandler) Mine(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	summary, err := h.service.Mine(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}

func (h *OrganizationHandler) Join(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req JoinOrganizationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	org, err := h.service.Join(r.Context(), userID, req.Slug)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, JoinOrganizationResponse{
		SuccessResponse: SuccessResponse{Success: true},
		Organization:    org,
	})
}

func (h *OrganizationHandler) Leave(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.service.Leave(r.Context(), userID); err != nil {
		writeError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

func (h *OrganizationHandler) AccessPoints(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	aps, err := h.service.ListAccessPoints(r.Context(), userID, chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, aps)
}
