package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"forge-backend/internal/middleware"
	"forge-backend/internal/models"
	"forge-backend/internal/repositories"
	"forge-backend/pkg/utils"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type TemplateHandler struct {
	Repo *repositories.TemplateRepository
}

func NewTemplateHandler(repo *repositories.TemplateRepository) *TemplateHandler {
	return &TemplateHandler{Repo: repo}
}

func (h *TemplateHandler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.CreateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		utils.Error(w, http.StatusBadRequest, "template name required")
		return
	}
	if strings.TrimSpace(req.HTML) == "" {
		utils.Error(w, http.StatusBadRequest, "template html required")
		return
	}

	tpl := &models.InvoiceTemplate{
		ID:     uuid.New(),
		UserID: userID,
		Name:   req.Name,
		HTML:   req.HTML,
	}
	if err := h.Repo.Create(r.Context(), tpl); err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, tpl)
}

func (h *TemplateHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	templates, err := h.Repo.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if templates == nil {
		templates = []models.InvoiceTemplate{}
	}
	utils.JSON(w, http.StatusOK, templates)
}

func (h *TemplateHandler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid template id")
		return
	}

	tpl, err := h.Repo.Get(r.Context(), id, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, tpl)
}

func (h *TemplateHandler) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid template id")
		return
	}

	var req models.UpdateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tpl, err := h.Repo.Get(r.Context(), id, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			utils.Error(w, http.StatusBadRequest, "template name required")
			return
		}
		tpl.Name = *req.Name
	}
	if req.HTML != nil {
		if strings.TrimSpace(*req.HTML) == "" {
			utils.Error(w, http.StatusBadRequest, "template html required")
			return
		}
		tpl.HTML = *req.HTML
	}

	if err := h.Repo.Update(r.Context(), tpl); err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, tpl)
}

func (h *TemplateHandler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid template id")
		return
	}

	if err := h.Repo.Delete(r.Context(), id, userID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
