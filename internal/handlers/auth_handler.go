package handlers

import (
	"encoding/json"
	"net/http"

	"forge-backend/internal/middleware"
	"forge-backend/internal/models"
	"forge-backend/internal/services"
	"forge-backend/pkg/utils"

	"github.com/google/uuid"
)

type AuthHandler struct {
	Service      *services.UserService
	SecureCookie bool
}

func NewAuthHandler(s *services.UserService, secureCookie bool) *AuthHandler {
	return &AuthHandler{Service: s, SecureCookie: secureCookie}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, session, err := h.Service.Register(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	h.setSessionCookie(w, session)
	utils.JSON(w, http.StatusCreated, models.SessionResponse{User: user})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, session, err := h.Service.Login(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	h.setSessionCookie(w, session)
	utils.JSON(w, http.StatusOK, models.SessionResponse{User: user})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		if sessionID, err := uuid.Parse(cookie.Value); err == nil {
			if err := h.Service.Logout(r.Context(), sessionID); err != nil {
				writeError(w, err)
				return
			}
		}
	}

	h.clearSessionCookie(w)
	utils.JSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	utils.JSON(w, http.StatusOK, models.SessionResponse{User: user})
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.Service.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, models.SessionResponse{User: user})
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, session *models.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    session.ID.String(),
		Path:     "/",
		MaxAge:   int(h.Service.SessionDuration().Seconds()),
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
