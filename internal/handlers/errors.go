package handlers

import (
	"errors"
	"log"
	"net/http"

	"forge-backend/internal/billing"
	"forge-backend/internal/render"
	"forge-backend/internal/repositories"
	"forge-backend/internal/services"

	"forge-backend/pkg/utils"
)

// writeError maps service and repository errors onto HTTP status codes
func writeError(w http.ResponseWriter, err error) {
	var verr *billing.ValidationError
	if errors.As(err, &verr) {
		utils.Error(w, http.StatusBadRequest, verr.Msg)
		return
	}

	switch {
	case errors.Is(err, repositories.ErrNotFound):
		utils.Error(w, http.StatusNotFound, "not found")
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.Error(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, services.ErrEmailTaken):
		utils.Error(w, http.StatusConflict, "email already registered")
	case errors.Is(err, services.ErrAIUnavailable):
		utils.Error(w, http.StatusServiceUnavailable, "ai assistance not configured")
	default:
		var berr *render.BackendError
		if errors.As(err, &berr) {
			log.Printf("[Handlers] PDF backend failure: %v", berr)
			utils.Error(w, http.StatusInternalServerError, "pdf generation failed")
			return
		}
		log.Printf("[Handlers] Internal error: %v", err)
		utils.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
