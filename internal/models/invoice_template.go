package models

import (
	"time"

	"github.com/google/uuid"
)

// InvoiceTemplate is a user-authored HTML fragment or document used to lay
// out invoices for PDF conversion
type InvoiceTemplate struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"-"`
	Name      string    `json:"name"`
	HTML      string    `json:"html"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateTemplateRequest represents the template creation payload
type CreateTemplateRequest struct {
	Name string `json:"name"`
	HTML string `json:"html"`
}

// UpdateTemplateRequest represents a partial template update
type UpdateTemplateRequest struct {
	Name *string `json:"name"`
	HTML *string `json:"html"`
}
