package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"forge-backend/internal/middleware"
	"forge-backend/internal/models"
	"forge-backend/internal/repositories"
	"forge-backend/internal/services"
	"forge-backend/pkg/utils"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ExpenseHandler struct {
	Repo     *repositories.ExpenseRepository
	Receipts *services.ReceiptService
}

// NewExpenseHandler wires expense CRUD. receipts may be nil when receipt
// storage is not configured; the receipt-url endpoint then returns 503.
func NewExpenseHandler(repo *repositories.ExpenseRepository, receipts *services.ReceiptService) *ExpenseHandler {
	return &ExpenseHandler{Repo: repo, Receipts: receipts}
}

func (h *ExpenseHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Vendor) == "" {
		utils.Error(w, http.StatusBadRequest, "vendor required")
		return
	}
	if req.Amount <= 0 {
		utils.Error(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	date, err := parseExpenseDate(req.Date)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "EUR"
	}

	expense := &models.Expense{
		ID:          uuid.New(),
		UserID:      userID,
		Vendor:      req.Vendor,
		Description: req.Description,
		Amount:      req.Amount,
		Currency:    currency,
		Date:        date,
		Category:    req.Category,
		ReceiptURL:  req.ReceiptURL,
	}
	if err := h.Repo.Create(r.Context(), expense); err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, expense)
}

func (h *ExpenseHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	expenses, err := h.Repo.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}
	utils.JSON(w, http.StatusOK, expenses)
}

func (h *ExpenseHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid expense id")
		return
	}

	var req models.UpdateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	expense, err := h.Repo.Get(r.Context(), id, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	if req.Vendor != nil {
		if strings.TrimSpace(*req.Vendor) == "" {
			utils.Error(w, http.StatusBadRequest, "vendor required")
			return
		}
		expense.Vendor = *req.Vendor
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			utils.Error(w, http.StatusBadRequest, "amount must be positive")
			return
		}
		expense.Amount = *req.Amount
	}
	if req.Currency != nil {
		expense.Currency = strings.ToUpper(strings.TrimSpace(*req.Currency))
	}
	if req.Date != nil {
		date, err := parseExpenseDate(*req.Date)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		expense.Date = date
	}
	if req.Category != nil {
		expense.Category = req.Category
	}
	if req.ReceiptURL != nil {
		expense.ReceiptURL = req.ReceiptURL
	}

	if err := h.Repo.Update(r.Context(), expense); err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, expense)
}

func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid expense id")
		return
	}

	if err := h.Repo.Delete(r.Context(), id, userID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReceiptUploadURL issues a presigned PUT URL for a receipt file
func (h *ExpenseHandler) ReceiptUploadURL(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	if h.Receipts == nil {
		utils.Error(w, http.StatusServiceUnavailable, "receipt storage not configured")
		return
	}

	var req models.ReceiptUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Filename == "" {
		utils.Error(w, http.StatusBadRequest, "filename required")
		return
	}

	upload, err := h.Receipts.PresignUpload(r.Context(), userID, req.Filename, req.ContentType)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, upload)
}

func parseExpenseDate(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01-02", raw)
}
