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
)

type CompanyHandler struct {
	CompanyRepo *repositories.CompanyRepository
	UserRepo    *repositories.UserRepository
}

func NewCompanyHandler(companyRepo *repositories.CompanyRepository, userRepo *repositories.UserRepository) *CompanyHandler {
	return &CompanyHandler{CompanyRepo: companyRepo, UserRepo: userRepo}
}

// CreateCompany creates the caller's company and links it to their account
func (h *CompanyHandler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	if user.CompanyID != nil {
		utils.Error(w, http.StatusConflict, "company already exists")
		return
	}

	var req models.CreateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		utils.Error(w, http.StatusBadRequest, "company name required")
		return
	}
	if strings.TrimSpace(req.Address) == "" {
		utils.Error(w, http.StatusBadRequest, "company address required")
		return
	}
	if strings.TrimSpace(req.RegistrationNumber) == "" {
		utils.Error(w, http.StatusBadRequest, "company registration number required")
		return
	}

	company := &models.Company{
		ID:                 uuid.New(),
		Name:               req.Name,
		Address:            req.Address,
		RegistrationNumber: req.RegistrationNumber,
	}
	if err := h.CompanyRepo.Create(r.Context(), company); err != nil {
		writeError(w, err)
		return
	}
	if err := h.UserRepo.SetCompany(r.Context(), user.ID, company.ID); err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, company)
}

func (h *CompanyHandler) GetCompany(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	if user.CompanyID == nil {
		utils.Error(w, http.StatusNotFound, "not found")
		return
	}

	company, err := h.CompanyRepo.Get(r.Context(), *user.CompanyID)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, company)
}

func (h *CompanyHandler) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	if user.CompanyID == nil {
		utils.Error(w, http.StatusNotFound, "not found")
		return
	}

	var req models.UpdateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	company, err := h.CompanyRepo.Get(r.Context(), *user.CompanyID)
	if err != nil {
		writeError(w, err)
		return
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			utils.Error(w, http.StatusBadRequest, "company name required")
			return
		}
		company.Name = *req.Name
	}
	if req.Address != nil {
		company.Address = *req.Address
	}
	if req.RegistrationNumber != nil {
		company.RegistrationNumber = *req.RegistrationNumber
	}

	if err := h.CompanyRepo.Update(r.Context(), company); err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, company)
}
