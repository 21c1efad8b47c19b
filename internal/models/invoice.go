package models

import (
	"time"

	"github.com/google/uuid"
)

// Invoice represents one issued invoice. Amount and TotalAmount are kept
// equal; both columns survive for compatibility with rows written before
// line items existed.
type Invoice struct {
	ID            uuid.UUID  `json:"id"`
	InvoiceNumber string     `json:"invoice_number"`
	UserID        uuid.UUID  `json:"-"`
	CompanyID     *uuid.UUID `json:"company_id"`
	TemplateID    *uuid.UUID `json:"template_id"`
	ClientName    string     `json:"client_name"`
	ClientAddress string     `json:"client_address"`
	IssuerAddress string     `json:"issuer_address"`
	Currency      string     `json:"currency"`
	Amount        float64    `json:"amount"`
	TotalAmount   float64    `json:"total_amount"`
	Date          time.Time  `json:"date"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// LineItem represents one billable row of an invoice. LineTotal is derived:
// quantity*unit_price when UseQuantity is set, otherwise the flat unit price.
type LineItem struct {
	ID          uuid.UUID `json:"id"`
	InvoiceID   uuid.UUID `json:"invoice_id"`
	Description string    `json:"description"`
	Quantity    float64   `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	UseQuantity bool      `json:"use_quantity"`
	LineTotal   float64   `json:"line_total"`
	Position    int       `json:"-"`
}

// LineItemInput is a line item as submitted by the client. UseQuantity is a
// pointer so an absent flag defaults to true.
type LineItemInput struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	UseQuantity *bool   `json:"use_quantity"`
}

// CreateInvoiceRequest represents the invoice creation payload
type CreateInvoiceRequest struct {
	ClientName    string          `json:"client_name"`
	ClientAddress string          `json:"client_address"`
	Currency      string          `json:"currency"`
	Date          string          `json:"date"`
	TemplateID    *uuid.UUID      `json:"template_id"`
	Items         []LineItemInput `json:"items"`
}

// UpdateInvoiceRequest represents an invoice update. Items, when present,
// fully replace the stored line items.
type UpdateInvoiceRequest struct {
	ClientName    *string         `json:"client_name"`
	ClientAddress *string         `json:"client_address"`
	Currency      *string         `json:"currency"`
	Date          *string         `json:"date"`
	TemplateID    *uuid.UUID      `json:"template_id"`
	Items         []LineItemInput `json:"items"`
}

// InvoiceWithItems bundles an invoice with its ordered line items
type InvoiceWithItems struct {
	Invoice
	Items []LineItem `json:"items"`
}
