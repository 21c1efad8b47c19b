package middleware

import (
	"context"
	"log"
	"net/http"
	"time"

	"forge-backend/internal/models"
	"forge-backend/internal/repositories"

	"github.com/google/uuid"
)

type contextKey string

const UserIDKey contextKey = "user_id"
const UserKey contextKey = "user"

// SessionCookieName is the cookie carrying the session ID
const SessionCookieName = "session_id"

type AuthMiddleware struct {
	sessionRepo *repositories.SessionRepository
	userRepo    *repositories.UserRepository
}

func NewAuthMiddleware(sessionRepo *repositories.SessionRepository, userRepo *repositories.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
	}
}

// Authenticate validates the session cookie and loads the current user into
// the request context. Expired sessions are deleted on sight.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		sessionID, err := uuid.Parse(cookie.Value)
		if err != nil {
			http.Error(w, "Invalid session", http.StatusUnauthorized)
			return
		}

		session, err := m.sessionRepo.Get(r.Context(), sessionID)
		if err != nil {
			http.Error(w, "Invalid or expired session", http.StatusUnauthorized)
			return
		}

		if time.Now().After(session.ExpiresAt) {
			if err := m.sessionRepo.Delete(r.Context(), session.ID); err != nil {
				log.Printf("[Auth] Failed to delete expired session %s: %v", session.ID, err)
			}
			http.Error(w, "Invalid or expired session", http.StatusUnauthorized)
			return
		}

		user, err := m.userRepo.Get(r.Context(), session.UserID)
		if err != nil {
			http.Error(w, "User not found", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
		ctx = context.WithValue(ctx, UserKey, user)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserIDFromContext extracts the authenticated user ID from request context
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// GetUserFromContext extracts the authenticated user from request context
func GetUserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserKey).(*models.User)
	return user, ok
}
