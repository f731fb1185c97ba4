package handler

import (
	"net/http"
	"strconv"

	"github.com/dangerclosesec/apmap/internal/service"
)

const accessPointNotFound = "Access point not found"

type AccessPointHandler struct {
	service *service.AccessPointService
}

func NewAccessPointHandler(service *service.AccessPointService) *AccessPointHandler {
	return &AccessPointHandler{
		service: service,
	}
}

// Nearby handles GET /access-points/nearby?lat=&lng=&radius=
func (h *AccessPointHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	var input service.NearbyInput
	for _, p := range []struct {
		name string
		dst  **float64
	}{
		{"lat", &input.Latitude},
		{"lng", &input.Longitude},
		{"radius", &input.RadiusKm},
	} {
		raw := r.URL.Query().Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, p.name+" must be a number")
			return
		}
		*p.dst = &v
	}

	aps, err := h.service.Nearby(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, aps)
}

func (h *AccessPointHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id", accessPointNotFound)
	if !ok {
		return
	}

	detail, err := h.service.Get(r.Context(), id, optionalUser(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, detail)
}

func (h *AccessPointHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var input service.CreateAccessPointInput
	if !decodeJSON(w, r, &input) {
		return
	}

	ap, err := h.service.Create(r.Context(), userID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, ap)
}

func (h *AccessPointHandler) SetPassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", accessPointNotFound)
	if !ok {
		return
	}

	var input service.SetPasswordInput
	if !decodeJSON(w, r, &input) {
		return
	}

	password, err := h.service.SetPassword(r.Context(), id, userID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, password)
}

func (h *AccessPointHandler) Rate(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", accessPointNotFound)
	if !ok {
		return
	}

	var input service.RatingInput
	if !decodeJSON(w, r, &input) {
		return
	}

	rating, err := h.service.Rate(r.Context(), id, userID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, rating)
}

func (h *AccessPointHandler) ReportServiceBlock(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", accessPointNotFound)
	if !ok {
		return
	}

	var input service.ServiceBlockInput
	if !decodeJSON(w, r, &input) {
		return
	}

	block, err := h.service.ReportServiceBlock(r.Context(), id, userID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, block)
}

func (h *AccessPointHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id", accessPointNotFound)
	if !ok {
		return
	}

	out, err := h.service.QRCode(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, out)
}
