package handler

import (
	"net/http"

	"github.com/dangerclosesec/apmap/internal/service"
)

type SpeedTestHandler struct {
	service *service.SpeedTestService
}

func NewSpeedTestHandler(service *service.SpeedTestService) *SpeedTestHandler {
	return &SpeedTestHandler{
		service: service,
	}
}

func (h *SpeedTestHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var input service.StartSpeedTestInput
	if !decodeJSON(w, r, &input) {
		return
	}

	started, err := h.service.Start(r.Context(), userID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusAccepted, started)
}

func (h *SpeedTestHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var input service.SpeedTestInput
	if !decodeJSON(w, r, &input) {
		return
	}

	test, err := h.service.Record(r.Context(), userID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, test)
}

func (h *SpeedTestHandler) History(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "accessPointId", accessPointNotFound)
	if !ok {
		return
	}

	history, err := h.service.History(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, history)
}
