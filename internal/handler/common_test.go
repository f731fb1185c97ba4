package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/dangerclosesec/apmap/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
		known  bool
	}{
		{domain.New(domain.ErrValidation, "bad"), http.StatusBadRequest, true},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, true},
		{domain.ErrNotOrganizationMember, http.StatusForbidden, true},
		{domain.ErrAccessPointNotFound, http.StatusNotFound, true},
		{domain.ErrSlugTaken, http.StatusBadRequest, true},
		{fmt.Errorf("%w: timeout", domain.ErrImportUnavailable), http.StatusInternalServerError, true},
		{fmt.Errorf("saving: %w", domain.ErrUserExists), http.StatusBadRequest, true},
		{errors.New("boom"), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			status, known := statusFor(tt.err)
			assert.Equal(t, tt.known, known)
			assert.Equal(t, tt.status, status)
		})
	}
}
