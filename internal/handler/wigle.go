package handler

import (
	"net/http"

	"github.com/dangerclosesec/apmap/internal/service"
)

type WigleHandler struct {
	service *service.WigleService
}

func NewWigleHandler(service *service.WigleService) *WigleHandler {
	return &WigleHandler{
		service: service,
	}
}

func (h *WigleHandler) Search(w http.ResponseWriter, r *http.Request) {
	var input service.WigleSearchInput
	if !decodeJSON(w, r, &input) {
		return
	}

	out, err := h.service.Search(r.Context(), input, optionalUser(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, out)
}

func (h *WigleHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Statistics(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}
