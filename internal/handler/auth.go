// internal/handler/auth.go
package handler

import (
	"net/http"

	"github.com/dangerclosesec/apmap/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterInput
	if !decodeJSON(w, r, &input) {
		return
	}

	output, err := h.authService.Register(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, output)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input service.LoginInput
	if !decodeJSON(w, r, &input) {
		return
	}

	output, err := h.authService.Login(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, output)
}
