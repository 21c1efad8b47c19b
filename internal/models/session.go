package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is a server-side login session. The session ID doubles as the
// cookie value.
type Session struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
