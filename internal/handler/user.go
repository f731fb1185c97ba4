package handler

import (
	"net/http"

	"github.com/dangerclosesec/apmap/internal/service"
)

type UserHandler struct {
	service *service.UserService
}

func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

func (h *UserHandler) Favorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	favorites, err := h.service.Favorites(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, favorites)
}

func (h *UserHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	apID, ok := uuidParam(w, r, "accessPointId", accessPointNotFound)
	if !ok {
		return
	}

	if err := h.service.AddFavorite(r.Context(), userID, apID); err != nil {
		writeError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

func (h *UserHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	apID, ok := uuidParam(w, r, "accessPointId", accessPointNotFound)
	if !ok {
		return
	}

	if err := h.service.RemoveFavorite(r.Context(), userID, apID); err != nil {
		writeError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

func (h *UserHandler) Activity(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	activity, err := h.service.Activity(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, activity)
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	profile, err := h.service.Profile(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, profile)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var input service.UpdateProfileInput
	if !decodeJSON(w, r, &input) {
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), userID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}
