package handlers

import (
	"encoding/json"
	"net/http"

	"forge-backend/internal/middleware"
	"forge-backend/internal/services"
	"forge-backend/pkg/utils"
)

type AIHandler struct {
	Service *services.AIService
}

func NewAIHandler(s *services.AIService) *AIHandler {
	return &AIHandler{Service: s}
}

type improveRequest struct {
	Description string `json:"description"`
}

type improveResponse struct {
	Description string `json:"description"`
}

func (h *AIHandler) ImproveLineItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req improveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	improved, err := h.Service.ImproveLineItem(r.Context(), userID, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, improveResponse{Description: improved})
}

func (h *AIHandler) LastLineItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	last, err := h.Service.LastLineItem(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, improveResponse{Description: last})
}
