package models

import (
	"time"

	"github.com/google/uuid"
)

// Expense represents one business expense, optionally linked to an uploaded
// receipt
type Expense struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"-"`
	Vendor      string    `json:"vendor"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	Date        time.Time `json:"date"`
	Category    *string   `json:"category"`
	ReceiptURL  *string   `json:"receipt_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateExpenseRequest represents the expense creation payload
type CreateExpenseRequest struct {
	Vendor      string  `json:"vendor"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Date        string  `json:"date"`
	Category    *string `json:"category"`
	ReceiptURL  *string `json:"receipt_url"`
}

// UpdateExpenseRequest represents a partial expense update
type UpdateExpenseRequest struct {
	Vendor      *string  `json:"vendor"`
	Description *string  `json:"description"`
	Amount      *float64 `json:"amount"`
	Currency    *string  `json:"currency"`
	Date        *string  `json:"date"`
	Category    *string  `json:"category"`
	ReceiptURL  *string  `json:"receipt_url"`
}

// ReceiptUploadRequest asks for a presigned upload URL
type ReceiptUploadRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}
